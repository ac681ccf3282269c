package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/devkit/internal/logger"
	"github.com/MrSnakeDoc/devkit/internal/toolkit"
	"github.com/MrSnakeDoc/devkit/internal/transfer"
)

// DefaultBackupInterval is used when no interval is configured.
const DefaultBackupInterval = time.Hour

// Backup periodically writes a YAML snapshot of every panel to a file.
type Backup struct {
	toolkit       *toolkit.Toolkit
	path          string
	logger        logger.Logger
	interval      time.Duration
	now           func() time.Time
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewBackup creates a backup job. Sends on manualTrigger request an
// immediate snapshot; it may be nil.
func NewBackup(
	tk *toolkit.Toolkit,
	path string,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Backup {
	if interval <= 0 {
		interval = DefaultBackupInterval
	}
	return &Backup{
		toolkit:       tk,
		path:          path,
		logger:        log,
		interval:      interval,
		now:           time.Now,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start writes a first snapshot and then one per interval until Stop
// is called or ctx is cancelled.
func (b *Backup) Start(ctx context.Context) error {
	if err := b.Run(ctx); err != nil {
		return fmt.Errorf("initial backup failed: %w", err)
	}

	ticker := time.NewTicker(b.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := b.Run(ctx); err != nil {
					b.logger.Error("failed to write backup", logger.Error(err))
				}
			case <-b.manualTrigger:
				b.logger.Info("manual backup triggered")
				if err := b.Run(ctx); err != nil {
					b.logger.Error("failed to write backup", logger.Error(err))
				}
			case <-b.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (b *Backup) Stop() {
	close(b.stopCh)
}

// Run writes one snapshot.
func (b *Backup) Run(ctx context.Context) error {
	start := b.now()

	doc, err := transfer.Export(ctx, b.toolkit, start)
	if err != nil {
		return err
	}
	if len(doc.Unavailable) > 0 {
		b.keepPrevious(doc)
	}
	if err := transfer.WriteFile(b.path, doc); err != nil {
		return err
	}

	b.logger.Info("backup written",
		logger.String("path", b.path),
		logger.Int("snippets", len(doc.Snippets)),
		logger.Int("bookmarks", len(doc.Bookmarks)),
		logger.Int("notes", len(doc.Notes)),
		logger.Int("clips", len(doc.Clips)),
		logger.Duration("took", b.now().Sub(start)))
	return nil
}

// keepPrevious fills the corrupt panels of doc from the last backup on
// disk. Without one they stay empty.
func (b *Backup) keepPrevious(doc *transfer.Document) {
	prev, err := transfer.ReadFile(b.path)
	if err != nil {
		b.logger.Warn("corrupt panels left out of backup",
			logger.String("panels", strings.Join(doc.Unavailable, ",")),
			logger.Error(err))
		return
	}
	doc.KeepFrom(prev)
	b.logger.Warn("corrupt panels kept from previous backup",
		logger.String("panels", strings.Join(doc.Unavailable, ",")))
}
