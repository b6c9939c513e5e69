// Package history keeps a local, time-ordered record of finished
// transcriptions. Entries expire after a retention window so the store
// never needs manual cleanup.
package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// DefaultTTL is how long entries are retained when no retention is
// configured.
const DefaultTTL = 30 * 24 * time.Hour

// Entry is one finished transcription.
type Entry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Language  string    `json:"language,omitempty"`
	Duration  float64   `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists transcription history in a badger database.
type Store struct {
	db  *badger.DB
	ttl time.Duration
	now func() time.Time
}

// Open opens (or creates) a history store at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	return &Store{
		db:  db,
		ttl: DefaultTTL,
		now: time.Now,
	}, nil
}

// SetTTL changes the retention applied to entries added from now on.
// Non-positive values are ignored.
func (s *Store) SetTTL(ttl time.Duration) {
	if ttl > 0 {
		s.ttl = ttl
	}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add stores a transcription and returns the created entry.
func (s *Store) Add(text, language string, duration float64) (*Entry, error) {
	entry := &Entry{
		ID:        uuid.NewString(),
		Text:      text,
		Language:  language,
		Duration:  duration,
		CreatedAt: s.now(),
	}

	value, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("marshal history entry: %w", err)
	}

	// Zero-padded nanosecond prefix keeps lexical key order temporal.
	key := fmt.Sprintf("%020d-%s", entry.CreatedAt.UnixNano(), entry.ID)

	err = s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), value).WithTTL(s.ttl)
		return txn.SetEntry(e)
	})
	if err != nil {
		return nil, fmt.Errorf("store history entry: %w", err)
	}

	return entry, nil
}

// Recent returns up to n entries, newest first. Corrupt values are
// skipped with a warning rather than failing the whole read.
func (s *Store) Recent(n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}

	var entries []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid() && len(entries) < n; it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var e Entry
				if err := json.Unmarshal(val, &e); err != nil {
					slog.Warn("skip corrupt history entry", "key", string(item.Key()), "error", err)
					return nil
				}
				entries = append(entries, e)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	return entries, nil
}
