package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"guardrail-quote/metrics"
	"guardrail-quote/types"

	"go.uber.org/zap"
)

type activityEntry struct {
	username string
	action   string
	detail   string
}

// ActivityLogger writes the activity log in the background. Log never
// blocks the caller: entries that do not fit in the buffer are dropped.
type ActivityLogger struct {
	db      *sql.DB
	logger  *zap.Logger
	entries chan activityEntry
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
}

func NewActivityLogger(db *sql.DB, bufferSize int, logger *zap.Logger) *ActivityLogger {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	a := &ActivityLogger{
		db:      db,
		logger:  logger,
		entries: make(chan activityEntry, bufferSize),
	}
	a.wg.Add(1)
	go a.run()
	return a
}

func (a *ActivityLogger) run() {
	defer a.wg.Done()
	for e := range a.entries {
		_, err := a.db.Exec("INSERT INTO activity_logs (username, action, detail) VALUES (?, ?, ?)", e.username, e.action, e.detail)
		if err != nil {
			a.logger.Warn("Failed to write activity log",
				zap.String("action", e.action),
				zap.Error(err),
			)
		}
	}
}

func (a *ActivityLogger) Log(username, action, detail string) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return
	}
	select {
	case a.entries <- activityEntry{username: username, action: action, detail: detail}:
	default:
		metrics.ActivityDropped.Inc()
		a.logger.Warn("Activity log buffer full, dropping entry",
			zap.String("username", username),
			zap.String("action", action),
		)
	}
}

// Close flushes queued entries and stops the worker.
func (a *ActivityLogger) Close() {
	a.once.Do(func() {
		a.mu.Lock()
		a.closed = true
		close(a.entries)
		a.mu.Unlock()
		a.wg.Wait()
	})
}

func ListActivity(ctx context.Context, limit int) ([]types.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := DB.QueryContext(ctx, "SELECT id, username, action, detail, created_at FROM activity_logs ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	items := []types.Activity{}
	for rows.Next() {
		var it types.Activity
		var detail sql.NullString
		if err := rows.Scan(&it.ID, &it.Username, &it.Action, &detail, &it.CreatedAt); err != nil {
			return nil, err
		}
		it.Detail = detail.String
		items = append(items, it)
	}
	return items, rows.Err()
}
