// Package journal keeps an on-disk audit trail of ingestion cycles.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const maxNameAttempts = 1000

// CycleRecord captures the outcome of one ingestion cycle.
type CycleRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	CycleNumber  int       `json:"cycle_number"`
	Source       string    `json:"source,omitempty"`
	Success      bool      `json:"success"`
	Attempts     int       `json:"attempts"`
	Rows         int       `json:"rows"`
	Stored       int       `json:"stored"`
	Skipped      int       `json:"skipped"`
	NullPrices   int       `json:"null_prices"`
	CapturedAt   time.Time `json:"captured_at"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Writer persists cycle records to a directory as JSON files.
type Writer struct {
	dir   string
	mu    sync.Mutex
	seq   int
	nowFn func() time.Time
}

// NewWriter constructs a journal writer, creating dir when missing.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		dir = "journal"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal: create %s: %w", dir, err)
	}
	return &Writer{dir: dir, nowFn: time.Now}, nil
}

// Dir returns the directory records are written to.
func (w *Writer) Dir() string { return w.dir }

// WriteCycle writes rec to a timestamped JSON file and returns its path.
func (w *Writer) WriteCycle(rec *CycleRecord) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("journal: nil record")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if rec.Timestamp.IsZero() {
		rec.Timestamp = w.nowFn()
	}
	stamp := rec.Timestamp.UTC().Format("20060102_150405")
	// Several processes may share dir; never overwrite another writer's record.
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		w.seq++
		rec.CycleNumber = w.seq
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return "", err
		}
		path := filepath.Join(w.dir, fmt.Sprintf("cycle_%s_%05d.json", stamp, w.seq))
		err = writeExclusive(path, data)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		return path, nil
	}
	return "", fmt.Errorf("journal: no free file name for %s in %s", stamp, w.dir)
}

func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
