// Package scheduler runs the periodic data-directory snapshot job. Every
// collection lives in a single JSON file, so a backup is just a copy of the
// directory into a timestamped folder.
package scheduler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler handles periodic background jobs for the data directory.
type Scheduler struct {
	cron       *cron.Cron
	dataDir    string
	backupDir  string
	instanceID string
}

// New creates a new scheduler instance.
func New(dataDir, backupDir string) *Scheduler {
	// Heroku sets DYNO to "web.1", "web.2", etc.
	instanceID := os.Getenv("DYNO")
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		dataDir:    dataDir,
		backupDir:  backupDir,
		instanceID: instanceID,
	}
}

// Start registers the snapshot job on the given cron schedule and begins the
// scheduler.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.Snapshot(); err != nil {
			zap.S().Errorw("data snapshot failed",
				"instanceId", s.instanceID,
				"error", err,
			)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	zap.S().Infow("scheduler started",
		"instanceId", s.instanceID,
		"schedule", schedule,
	)
	return nil
}

// Stop halts the scheduler, letting a running job finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Snapshot copies every collection file into a timestamped directory under
// the backup dir.
func (s *Scheduler) Snapshot() error {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return err
	}

	dest := filepath.Join(s.backupDir, time.Now().UTC().Format("20060102T150405Z"))
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}

	copied := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(s.dataDir, entry.Name()))
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dest, entry.Name()), b, 0o644); err != nil {
			return err
		}
		copied++
	}

	zap.S().Infow("data snapshot written",
		"instanceId", s.instanceID,
		"dir", dest,
		"files", copied,
	)
	return nil
}
