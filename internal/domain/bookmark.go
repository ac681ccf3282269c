package domain

import "time"

// Bookmark is a saved terminal command.
// The label is what the user searches and reads; the command is what
// gets copied to the clipboard.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the unique identifier within the bookmarks collection.
	ID ID `json:"id" yaml:"id"`

	// ─────────────────────────────
	// Content (editable)
	// ─────────────────────────────

	// Label is the human readable description.
	// Example: "list files"
	Label string `json:"label" yaml:"label"`

	// Command is the shell command, stored verbatim.
	// Example: "ls -la"
	Command string `json:"command" yaml:"command"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is set once when the bookmark is created.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is set on every edit and absent until the first one.
	UpdatedAt *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// RecordID returns the bookmark identifier.
func (b Bookmark) RecordID() string { return string(b.ID) }
