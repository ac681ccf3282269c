package domain

// Storage keys, one per panel. They match the keys used by the browser
// version of the toolkit so existing exports load unchanged.
const (
	KeySnippets  = "dev-toolkit-snippets"
	KeyBookmarks = "dev-toolkit-bookmarks"
	KeyNotes     = "dev-toolkit-notes"
	KeyClips     = "dev-toolkit-clips"
)

// Preview lengths used when listing long text.
const (
	NotePreviewLen = 100
	ClipPreviewLen = 150
)
