// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/stratanote/internal/app/store/kvstore"
	"go.uber.org/zap"
)

// backupRetention is how many snapshot files BackupJob keeps before pruning
// the oldest.
const backupRetention = 20

// BackupJob creates a job that snapshots the persisted note collection into
// timestamped JSON files under dir. The snapshot is the provider's stored
// value, not the in-memory state, so a backup never captures a half-typed
// edit that has not survived the debounce window yet.
func BackupJob(kv kvstore.Provider, dir string, interval time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "collection-backup",
		Interval: interval,
		Run: func(ctx context.Context) error {
			var raw json.RawMessage
			found, err := kv.Get(ctx, kvstore.KeyFiles, &raw)
			if err != nil {
				return fmt.Errorf("read persisted files: %w", err)
			}
			if !found {
				// Nothing persisted yet; skip quietly.
				return nil
			}

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create backup dir: %w", err)
			}

			name := fmt.Sprintf("notes-%s.json", time.Now().UTC().Format("20060102-150405"))
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, raw, 0o644); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}

			pruned, err := pruneBackups(dir, backupRetention)
			if err != nil {
				logger.Warn("failed to prune old backups", zap.Error(err))
			}

			logger.Info("collection backup written",
				zap.String("path", path),
				zap.Int("pruned", pruned))
			return nil
		},
	}
}

// pruneBackups deletes the oldest snapshot files beyond keep and reports how
// many were removed. Backup names embed a UTC timestamp, so lexical order is
// chronological order.
func pruneBackups(dir string, keep int) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), "notes-") && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return 0, nil
	}

	sort.Strings(names)
	pruned := 0
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return pruned, err
		}
		pruned++
	}
	return pruned, nil
}

// StoreHealthJob creates a job that pings the persistence provider so a
// backend outage shows up in the logs before the next save silently fails.
func StoreHealthJob(kv kvstore.Provider, logger *zap.Logger) Job {
	return Job{
		Name:     "store-health",
		Interval: 5 * time.Minute,
		Run: func(ctx context.Context) error {
			if err := kv.Ping(ctx); err != nil {
				logger.Warn("persistence provider unreachable", zap.Error(err))
				return err
			}
			return nil
		},
	}
}
