package event

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/ndifor/vitrine/internal/logger"
)

// DeadLetterSchemaVersion stamps each entry so a future replay tool can
// tell old lines from new ones. Bump when DeadLetterEntry changes shape.
const DeadLetterSchemaVersion = "1.0"

// DeadLetterWriter appends exhausted events to a JSONL file, one entry per
// line. The file is the last stop: anything here was retried and still
// failed, and waits for manual replay.
type DeadLetterWriter struct {
	file *os.File
	mu   sync.Mutex
}

// DeadLetterEntry is one line of the dead-letter file.
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, err
	}
	return &DeadLetterWriter{file: f}, nil
}

// Write records an event that exhausted its retries. Serialized under the
// mutex so concurrent writers cannot interleave lines.
func (dlw *DeadLetterWriter) Write(event Event, attempts int, lastError error) error {
	dlw.mu.Lock()
	defer dlw.mu.Unlock()

	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now(),
		Event:         event,
		Attempts:      attempts,
	}
	if lastError != nil {
		entry.LastError = lastError.Error()
	}

	log := logger.FromContext(context.Background())
	log.Warn("event_dead_lettered",
		"event_type", event.Type,
		"attempts", attempts,
		"error", entry.LastError)

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = dlw.file.Write(append(data, '\n'))
	return err
}

func (dlw *DeadLetterWriter) Close() error {
	return dlw.file.Close()
}
