package model

import "time"

// Upload is a PDF received over HTTP and parked in the transient workspace.
// It never outlives the request that created it.
type Upload struct {
	OriginalName string    `json:"original_name"`
	Extension    string    `json:"extension"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	Path         string    `json:"-"`
	ReceivedAt   time.Time `json:"received_at"`
}

// Artifact is a generated Word document waiting to be streamed to the client.
type Artifact struct {
	Key         string // workspace key
	Filename    string // download name offered to the client
	ContentType string
	Size        int64
}
