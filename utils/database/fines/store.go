package fines

import (
	"encoding/json"
	"errors"
	"fine-bot/model"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	ErrRecordNotFound = errors.New("fine record not found")
	ErrAlreadyClosed  = errors.New("fine record already closed")
)

// Store keeps every fine record in a single JSON array on disk.
// Each operation reads and writes the whole file; mu serializes them within the process.
type Store struct {
	path string
	mu   sync.Mutex
}

// Open prepares the fines file at path, creating it with an empty array if it does not exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating directory for %s: %w", path, err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]\n"), 0644); err != nil {
			return nil, fmt.Errorf("error creating fines file %s: %w", path, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("error checking fines file %s: %w", path, err)
	}
	return &Store{path: path}, nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// All returns every stored record in insertion order.
func (s *Store) All() ([]model.FineRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Append adds a new record to the end of the file.
func (s *Store) Append(record model.FineRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	records = append(records, record)
	return s.save(records)
}

// FindByNumber returns all records carrying fineNumber. Fine numbers are random and not
// checked for uniqueness, so more than one record may match.
func (s *Store) FindByNumber(fineNumber int64) ([]model.FineRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	var matches []model.FineRecord
	for _, r := range records {
		if r.FineNumber == fineNumber {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

// MarkClosed moves the open record identified by fineNumber to closed and persists the full set.
// When several records share the number, the one created for channelID decides; only when
// no record carries channelID is the first open one used.
func (s *Store) MarkClosed(fineNumber int64, channelID, closedBy string, at time.Time) (*model.FineRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	idx := pickForClose(records, fineNumber, channelID)
	if idx < 0 {
		return nil, fmt.Errorf("fine %d: %w", fineNumber, ErrRecordNotFound)
	}
	if !records[idx].IsOpen() {
		return nil, fmt.Errorf("fine %d: %w", fineNumber, ErrAlreadyClosed)
	}

	records[idx].Status = model.FineStatusClosed
	records[idx].ClosedBy = closedBy
	records[idx].ClosedAt = at.UTC().Format(time.RFC3339)

	if err := s.save(records); err != nil {
		return nil, err
	}
	closed := records[idx]
	return &closed, nil
}

// pickForClose returns the index of the record to close, or -1 when none carries the number.
// A record bound to channelID decides alone, open or not. Without one, the first open record
// with the number is used, then the first closed one so the caller can report it.
func pickForClose(records []model.FineRecord, fineNumber int64, channelID string) int {
	firstMatch, firstOpen, channelMatch := -1, -1, -1
	for i, r := range records {
		if r.FineNumber != fineNumber {
			continue
		}
		if channelID != "" && r.ChannelID == channelID {
			if r.IsOpen() {
				return i
			}
			if channelMatch < 0 {
				channelMatch = i
			}
		}
		if firstMatch < 0 {
			firstMatch = i
		}
		if firstOpen < 0 && r.IsOpen() {
			firstOpen = i
		}
	}
	if channelMatch >= 0 {
		return channelMatch
	}
	if firstOpen >= 0 {
		return firstOpen
	}
	return firstMatch
}

func (s *Store) load() ([]model.FineRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.FineRecord{}, nil
		}
		return nil, fmt.Errorf("error reading fines file %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return []model.FineRecord{}, nil
	}
	var records []model.FineRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("error unmarshalling fines from %s: %w", s.path, err)
	}
	if records == nil {
		records = []model.FineRecord{}
	}
	return records, nil
}

// save writes records to a temp file next to the target and renames it into place.
func (s *Store) save(records []model.FineRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling fines to JSON: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".fines-*.json")
	if err != nil {
		return fmt.Errorf("error creating temp file for %s: %w", s.path, err)
	}
	tmpName := tmp.Name()
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("error setting mode on %s: %w", tmpName, err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("error writing fines to %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error closing temp file %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error replacing fines file %s: %w", s.path, err)
	}
	return nil
}
