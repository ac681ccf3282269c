package domain

import "time"

// Snippet is a titled piece of code.
type Snippet struct {
	ID    ID     `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`

	// Code is arbitrary text, kept exactly as submitted.
	Code string `json:"code" yaml:"code"`

	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// RecordID returns the snippet identifier.
func (s Snippet) RecordID() string { return string(s.ID) }
