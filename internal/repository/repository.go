package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) inside this directory.
