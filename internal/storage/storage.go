package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyTable      = "magic/table/v1"
	keyBuildStats = "magic/stats"
)

// ErrNotFound is returned by Load when no table has been stored.
var ErrNotFound = errors.New("storage: table not found")

// BuildStats records how the stored table came to be.
type BuildStats struct {
	Generations   int           `json:"generations"`
	Loads         int           `json:"loads"`
	LastTableID   string        `json:"last_table_id"`
	LastSeed      uint64        `json:"last_seed"`
	LastBuildTime time.Duration `json:"last_build_time"`
	LastBuilt     time.Time     `json:"last_built"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the default data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens a database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the stored table bytes, or ErrNotFound.
func (s *Storage) Load() ([]byte, error) {
	var data []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyTable))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err = item.ValueCopy(nil)
		return err
	})

	return data, err
}

// Save stores the table bytes, replacing any previous table.
func (s *Storage) Save(data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyTable), data)
	})
}

// SaveBuildStats saves build statistics
func (s *Storage) SaveBuildStats(stats *BuildStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyBuildStats), data)
	})
}

// LoadBuildStats loads build statistics, returns empty stats if not found
func (s *Storage) LoadBuildStats() (*BuildStats, error) {
	stats := &BuildStats{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyBuildStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordGeneration records a freshly generated table.
func (s *Storage) RecordGeneration(tableID string, seed uint64, took time.Duration) error {
	stats, err := s.LoadBuildStats()
	if err != nil {
		return err
	}

	stats.Generations++
	stats.LastTableID = tableID
	stats.LastSeed = seed
	stats.LastBuildTime = took
	stats.LastBuilt = time.Now()

	return s.SaveBuildStats(stats)
}

// RecordLoad records that a stored table was reused.
func (s *Storage) RecordLoad(tableID string) error {
	stats, err := s.LoadBuildStats()
	if err != nil {
		return err
	}

	stats.Loads++
	stats.LastTableID = tableID

	return s.SaveBuildStats(stats)
}
