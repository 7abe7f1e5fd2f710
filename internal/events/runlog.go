// Package events provides the append-only run log: one JSONL record per
// scheduling run, with size-based rotation into an archive directory.
package events

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultMaxLogSize caps the active log file at 10MB before rotation.
	DefaultMaxLogSize = 10 * 1024 * 1024
	logFileExtension  = ".jsonl"
	archiveDir        = "archive"
)

// RunRecord summarizes one scheduling run.
type RunRecord struct {
	RunID               string    `json:"run_id"`
	Timestamp           time.Time `json:"timestamp"`
	Trigger             string    `json:"trigger"` // cli|watch
	Success             bool      `json:"success"`
	ScheduledCount      int       `json:"scheduled_count"`
	UnscheduledCount    int       `json:"unscheduled_count"`
	ConflictCount       int       `json:"conflict_count"`
	TotalFocusedHours   float64   `json:"total_focused_hours"`
	TotalAdminHours     float64   `json:"total_admin_hours"`
	TotalWorkDays       int       `json:"total_work_days"`
	ProjectedCompletion time.Time `json:"projected_completion"`
	Warnings            []string  `json:"warnings,omitempty"`
}

// RunLogger appends run records to a JSONL file, rotating when the file
// exceeds maxSize.
type RunLogger struct {
	mu          sync.Mutex
	file        *os.File
	currentSize int64
	maxSize     int64
	logPath     string
}

func NewRunLogger(logPath string, maxSize int64) (*RunLogger, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxLogSize
	}

	l := &RunLogger{logPath: logPath, maxSize: maxSize}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if err := l.openLogFile(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *RunLogger) openLogFile() error {
	file, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	l.file = file
	l.currentSize = stat.Size()
	return nil
}

// Record appends a run record. A missing RunID or Timestamp is filled in.
func (l *RunLogger) Record(rec RunRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec.RunID == "" {
		rec.RunID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal run record: %w", err)
	}
	data = append(data, '\n')

	if l.currentSize+int64(len(data)) > l.maxSize {
		if err := l.rotate(); err != nil {
			return fmt.Errorf("rotate run log: %w", err)
		}
	}

	n, err := l.file.Write(data)
	if err != nil {
		return fmt.Errorf("write run record: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync run log: %w", err)
	}
	l.currentSize += int64(n)
	return nil
}

func (l *RunLogger) rotate() error {
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close current log file: %w", err)
	}

	dir := filepath.Join(filepath.Dir(l.logPath), archiveDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}

	base := filepath.Base(l.logPath)
	name := fmt.Sprintf("%s.%s%s",
		base[:len(base)-len(logFileExtension)],
		time.Now().UTC().Format("20060102_150405"),
		logFileExtension)
	if err := os.Rename(l.logPath, filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("archive log file: %w", err)
	}

	return l.openLogFile()
}

// ReadAll parses every record in a run log file, skipping malformed lines.
func ReadAll(logPath string) ([]RunRecord, error) {
	file, err := os.Open(logPath)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	defer file.Close()

	var records []RunRecord
	decoder := json.NewDecoder(file)
	for decoder.More() {
		var rec RunRecord
		if err := decoder.Decode(&rec); err != nil {
			break
		}
		records = append(records, rec)
	}
	return records, nil
}

func (l *RunLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		return err
	}
	return l.file.Close()
}
