package magic

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fgantt/yse-sub003/internal/storage"
)

// savedFixture writes the fixture table to a fresh file.
func savedFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := Save(FileStore{Path: path}, testTable(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	return path
}

func TestLoadOrGenerateLoadsSavedTable(t *testing.T) {
	path := savedFixture(t)

	tbl, err := LoadOrGenerate(path, false)
	if err != nil {
		t.Fatalf("LoadOrGenerate failed: %v", err)
	}
	if !tbl.Equal(testTable(t)) {
		t.Error("Loaded table differs from the saved one")
	}
}

func TestLoadOrGenerateWithoutGeneration(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing", func(t *testing.T) {
		_, err := LoadOrGenerate(filepath.Join(dir, "missing.magic"), false)
		if !errors.Is(err, ErrNoTable) {
			t.Errorf("Expected ErrNoTable, got %v", err)
		}
	})

	t.Run("Corrupt", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.magic")
		if err := os.WriteFile(path, []byte("YSEMAGIC garbage garbage"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadOrGenerate(path, false)
		if !errors.Is(err, ErrNoTable) || !errors.Is(err, ErrCorrupt) {
			t.Errorf("Expected ErrNoTable wrapping ErrCorrupt, got %v", err)
		}
	})

	t.Run("NoPath", func(t *testing.T) {
		if _, err := LoadOrGenerate("", false); !errors.Is(err, ErrNoTable) {
			t.Errorf("Expected ErrNoTable, got %v", err)
		}
	})
}

func TestLoadOrGenerateGeneratesAndSaves(t *testing.T) {
	if testing.Short() {
		t.Skip("generates a full table")
	}

	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)
	generated, err := LoadOrGenerate(path, true)
	if err != nil {
		t.Fatalf("LoadOrGenerate failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Generated table was not saved: %v", err)
	}

	reloaded, err := LoadOrGenerate(path, false)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if !reloaded.Equal(generated) {
		t.Error("Reloaded table differs from the generated one")
	}
}

func TestStorageBackedStore(t *testing.T) {
	s, err := storage.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory failed: %v", err)
	}
	defer s.Close()

	opts := Options{AllowGenerate: false}
	if _, err := LoadOrGenerateFrom(s, opts); !errors.Is(err, ErrNoTable) || !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNoTable wrapping storage.ErrNotFound, got %v", err)
	}

	if err := Save(s, testTable(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	tbl, err := LoadOrGenerateFrom(s, opts)
	if err != nil {
		t.Fatalf("LoadOrGenerateFrom failed: %v", err)
	}
	if !tbl.Equal(testTable(t)) {
		t.Error("Table loaded from storage differs")
	}
}

func TestFileStoreSaveReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.bin")
	fs := FileStore{Path: path}
	for _, content := range []string{"first", "second"} {
		if err := fs.Save([]byte(content)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := fs.Load()
		if err != nil || string(got) != content {
			t.Errorf("Load = %q, %v; want %q", got, err, content)
		}
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("Expected only the table file, found %d entries", len(entries))
	}
}

func TestProviderImplicit(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		p := NewProvider(Options{Disabled: true})
		first := p.Shared()
		if first.Available() {
			t.Error("Disabled provider should yield an empty table")
		}
		if p.Shared() != first {
			t.Error("Second Shared call returned a different table")
		}
	})

	t.Run("MissingTableDegrades", func(t *testing.T) {
		p := NewProvider(Options{Path: filepath.Join(t.TempDir(), "none.magic")})
		if p.Shared().Available() {
			t.Error("Expected empty table when nothing can be loaded or generated")
		}
	})

	t.Run("LoadsSharedTable", func(t *testing.T) {
		p := NewProvider(Options{Path: savedFixture(t)})
		first := p.Shared()
		if !first.Available() || !first.Equal(testTable(t)) {
			t.Fatal("Expected the saved table")
		}
		second := p.Shared()
		if second != first {
			t.Error("Implicit accesses should return the same table")
		}
		if _, err := p.Init(savedFixture(t), false); !errors.Is(err, ErrAlreadyInitialized) {
			t.Errorf("Expected ErrAlreadyInitialized after implicit init, got %v", err)
		}
	})
}

func TestProviderExplicit(t *testing.T) {
	p := NewProvider(Options{})

	if _, err := p.Init(filepath.Join(t.TempDir(), "none.magic"), false); !errors.Is(err, ErrNoTable) {
		t.Fatalf("Expected ErrNoTable, got %v", err)
	}
	if p.Initialized() {
		t.Fatal("Failed Init should leave the slot empty")
	}

	tbl, err := p.Init(savedFixture(t), false)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if p.Shared() != tbl {
		t.Error("Shared should return the explicitly initialized table")
	}
	if _, err := p.Init(savedFixture(t), false); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("Expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestProviderConcurrentFirstUse(t *testing.T) {
	p := NewProvider(Options{Path: savedFixture(t)})

	const workers = 16
	tables := make([]*Table, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tables[i] = p.Shared()
		}()
	}
	wg.Wait()

	for i, tbl := range tables {
		if tbl != tables[0] {
			t.Fatalf("Worker %d saw a different table", i)
		}
	}
	if !tables[0].Available() {
		t.Error("Expected the saved table")
	}
}
