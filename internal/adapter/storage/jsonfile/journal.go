package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/avior/infuser/internal/domain"
	"github.com/avior/infuser/internal/port"
)

// FailedEntry is one line of the failed submission journal.
type FailedEntry struct {
	Time    time.Time            `json:"time"`
	Request domain.SubmitRequest `json:"request"`
	Kind    domain.Kind          `json:"kind"`
	Reason  string               `json:"reason"`
}

// Journal appends failed submissions to a JSON lines file.
type Journal struct {
	mu   sync.Mutex
	path string
}

func NewJournal(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	return &Journal{path: path}, nil
}

func (j *Journal) RecordFailure(req domain.SubmitRequest, out domain.Outcome) error {
	line, err := json.Marshal(FailedEntry{
		Time:    time.Now().UTC(),
		Request: req,
		Kind:    out.Kind,
		Reason:  out.Reason,
	})
	if err != nil {
		return err
	}
	line = append(line, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Entries reads the journal back in write order.
func (j *Journal) Entries() ([]FailedEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(j.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var entries []FailedEntry
	dec := json.NewDecoder(f)
	for dec.More() {
		var e FailedEntry
		if err := dec.Decode(&e); err != nil {
			return entries, fmt.Errorf("decode journal entry %d: %w", len(entries)+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

var _ port.SubmissionJournal = (*Journal)(nil)
