package tasks

import (
	"context"
	"log"
	"time"

	"negochat/internal/repository"

	"github.com/robfig/cron/v3"
)

const archiveRetention = 30 * 24 * time.Hour

// ArchiveCleaner purges old archived messages nightly. It only runs when
// a database is configured; chat delivery never depends on it.
type ArchiveCleaner struct {
	archive repository.MessageArchive
}

func NewArchiveCleaner(archive repository.MessageArchive) *ArchiveCleaner {
	return &ArchiveCleaner{
		archive: archive,
	}
}

func (t *ArchiveCleaner) Start() {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		cutoff := time.Now().Add(-archiveRetention)
		if err := t.archive.DeleteOlderThan(ctx, cutoff); err != nil {
			log.Printf("[WORKER] Archive cleanup failed: %v", err)
			return
		}
	})
	if err != nil {
		log.Printf("[WORKER] Error scheduling cron: %v", err)
		return
	}

	c.Start()
}
