package magic

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/fgantt/yse-sub003/internal/storage"
)

// DefaultFileName is the table file name inside the magic data directory.
const DefaultFileName = "sliders.magic"

// Store persists a serialized table.
type Store interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// FileStore keeps the table in a single file.
type FileStore struct {
	Path string
}

// Load reads the table file.
func (fs FileStore) Load() ([]byte, error) {
	return os.ReadFile(fs.Path)
}

// Save writes the table file through a temporary file and a rename, so a
// concurrent reader never sees a partial table.
func (fs FileStore) Save(data []byte) error {
	dir := filepath.Dir(fs.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, filepath.Base(fs.Path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, fs.Path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// DefaultPath returns the conventional table location in the platform
// data directory.
func DefaultPath() (string, error) {
	dir, err := storage.GetMagicDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultFileName), nil
}

// LoadOrGenerate loads the table at path, or generates one when the file
// is missing or unusable and allowGenerate is set. A generated table is
// saved back to path on a best-effort basis. An empty path skips the disk.
func LoadOrGenerate(path string, allowGenerate bool) (*Table, error) {
	opts := Options{
		Path:          path,
		AllowGenerate: allowGenerate,
		Seed:          DefaultSeed,
		RetryBudget:   DefaultRetryBudget,
	}
	return LoadOrGenerateFrom(FileStore{Path: path}, opts)
}

// LoadOrGenerateFrom is LoadOrGenerate over an arbitrary store. A nil
// store, or a FileStore with an empty path, is treated as always empty.
func LoadOrGenerateFrom(store Store, opts Options) (*Table, error) {
	if fs, ok := store.(FileStore); ok && fs.Path == "" {
		store = nil
	}

	miss := errors.New("no store configured")
	if store != nil {
		t, err := load(store)
		if err == nil {
			return t, nil
		}
		miss = err
		if !errors.Is(err, os.ErrNotExist) && !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Warning: stored magic table unusable: %v", err)
		}
	}

	if !opts.AllowGenerate {
		return nil, fmt.Errorf("%w: %w", ErrNoTable, miss)
	}

	start := time.Now()
	t, err := Generate(opts)
	if err != nil {
		return nil, err
	}
	log.Printf("Generated magic table %s (%s, %d slots) in %v",
		t.ID, humanize.IBytes(t.SizeBytes()), t.Len(), time.Since(start).Round(time.Millisecond))

	if store != nil {
		if err := Save(store, t); err != nil {
			log.Printf("Warning: failed to save magic table: %v", err)
		}
	}
	return t, nil
}

// load reads, decodes and exhaustively validates a stored table.
func load(store Store) (*Table, error) {
	data, err := store.Load()
	if err != nil {
		return nil, err
	}
	t, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(t); err != nil {
		return nil, err
	}
	log.Printf("Loaded magic table %s (%s on disk)", t.ID, humanize.IBytes(uint64(len(data))))
	return t, nil
}

// Save serializes t into store.
func Save(store Store, t *Table) error {
	data, err := Encode(t)
	if err != nil {
		return err
	}
	return store.Save(data)
}
