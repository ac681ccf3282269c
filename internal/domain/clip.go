package domain

import "time"

// Clip is one entry of the clipboard history.
//
// Clips are append-only: they are never edited, only created and deleted.
// The history is kept newest first and holds at most one clip per
// distinct content.
type Clip struct {
	ID        ID        `json:"id" yaml:"id"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// RecordID returns the clip identifier.
func (c Clip) RecordID() string { return string(c.ID) }
