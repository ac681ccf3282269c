package domain

import "time"

// Note is a free-text entry of the notepad.
type Note struct {
	ID        ID         `json:"id" yaml:"id"`
	Content   string     `json:"content" yaml:"content"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// RecordID returns the note identifier.
func (n Note) RecordID() string { return string(n.ID) }
