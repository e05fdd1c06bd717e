// Package pdftest writes small, valid, text-only PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Build returns a PDF with one page per element of pages. Each page holds the
// given lines in 12pt Helvetica. An empty page has no text at all.
func Build(pages ...[]string) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, lines := range pages {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i))
		content := contentStream(lines)
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

// Write stores Build(pages...) as name inside dir and returns the path.
func Write(tb testing.TB, dir, name string, pages ...[]string) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(pages...), 0o600); err != nil {
		tb.Fatalf("write pdf: %v", err)
	}
	return path
}

// Words returns n space-separated words ("w1 w2 ... wn").
func Words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = fmt.Sprintf("w%d", i+1)
	}
	return strings.Join(w, " ")
}

func contentStream(lines []string) string {
	if len(lines) == 0 {
		return "BT ET"
	}
	var b strings.Builder
	b.WriteString("BT /F1 12 Tf 72 720 Td")
	for i, line := range lines {
		if i > 0 {
			b.WriteString(" 0 -14 Td")
		}
		fmt.Fprintf(&b, " (%s) Tj", escape(line))
	}
	b.WriteString(" ET")
	return b.String()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
