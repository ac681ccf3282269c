// Package clipboard abstracts the system clipboard.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard utility is present
// (headless servers, missing xclip/xsel/wl-clipboard).
var ErrUnavailable = errors.New("system clipboard is unavailable")

// Clipboard reads and writes plain text.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// System uses the operating system clipboard.
type System struct{}

func (System) Write(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

func (System) Read() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnavailable
	}
	return clipboard.ReadAll()
}

// Memory is a process-local clipboard, used by the server when it runs
// without a desktop session and by tests. Setting Err makes every call fail.
type Memory struct {
	mu   sync.Mutex
	text string
	Err  error
}

func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.text = text
	return nil
}

func (m *Memory) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	return m.text, nil
}

// New returns the clipboard named by kind: "system" or "memory".
func New(kind string) (Clipboard, error) {
	switch kind {
	case "", "system":
		return System{}, nil
	case "memory":
		return &Memory{}, nil
	default:
		return nil, errors.New("unknown clipboard kind: " + kind)
	}
}
