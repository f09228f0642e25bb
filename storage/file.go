package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	currency "github.com/malusev998/currency-archive"
)

type (
	fileStorage struct {
		mutex sync.Mutex
		path  string
		file  *os.File
	}

	fileRecord struct {
		ID         string          `json:"id"`
		URL        string          `json:"url"`
		Date       string          `json:"date"`
		ReceivedAt time.Time       `json:"receivedAt"`
		Payload    json.RawMessage `json:"payload"`
	}
)

// NewFileStorage appends one JSON document per line to config.Path.
func NewFileStorage(config FileConfig) (currency.Storage, error) {
	st := &fileStorage{path: config.Path}

	if config.Migrate {
		if err := st.Migrate(); err != nil {
			return nil, err
		}
	}

	file, err := os.OpenFile(config.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)

	if err != nil {
		return nil, err
	}

	st.file = file

	return st, nil
}

func (f *fileStorage) Append(_ context.Context, entry currency.AuditEntry) (currency.AuditEntryWithID, error) {
	if entry.ReceivedAt.IsZero() {
		entry.ReceivedAt = time.Now()
	}

	id := uuid.New()
	payload := json.RawMessage(entry.Payload)

	if !json.Valid(payload) {
		quoted, err := json.Marshal(string(entry.Payload))
		if err != nil {
			return currency.AuditEntryWithID{}, err
		}

		payload = quoted
	}

	line, err := json.Marshal(fileRecord{
		ID:         id.String(),
		URL:        entry.URL,
		Date:       entry.Date,
		ReceivedAt: entry.ReceivedAt,
		Payload:    payload,
	})

	if err != nil {
		return currency.AuditEntryWithID{}, err
	}

	line = append(line, '\n')

	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.file == nil {
		return currency.AuditEntryWithID{}, os.ErrClosed
	}

	if _, err := f.file.Write(line); err != nil {
		return currency.AuditEntryWithID{}, err
	}

	return currency.AuditEntryWithID{
		AuditEntry: entry,
		ID:         id,
	}, nil
}

func (f *fileStorage) GetStorageProviderName() string {
	return "File"
}

func (f *fileStorage) Migrate() error {
	dir := filepath.Dir(f.path)

	return os.MkdirAll(dir, 0o755)
}

func (f *fileStorage) Drop() error {
	if err := f.Close(); err != nil {
		return err
	}

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

func (f *fileStorage) Close() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.file == nil {
		return nil
	}

	err := f.file.Close()
	f.file = nil

	return err
}
