package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStorage(t *testing.T) {
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	defer s.Close()

	t.Run("MissingTable", func(t *testing.T) {
		if _, err := s.Load(); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SaveLoad", func(t *testing.T) {
		data := []byte("table bytes")
		if err := s.Save(data); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := s.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if string(got) != string(data) {
			t.Errorf("Expected %q, got %q", data, got)
		}
	})

	t.Run("EmptyStats", func(t *testing.T) {
		stats, err := s.LoadBuildStats()
		if err != nil {
			t.Fatalf("LoadBuildStats failed: %v", err)
		}
		if stats.Generations != 0 || stats.Loads != 0 {
			t.Errorf("Expected empty stats, got %+v", stats)
		}
	})

	t.Run("RecordBuilds", func(t *testing.T) {
		if err := s.RecordGeneration("first", 7, time.Second); err != nil {
			t.Fatalf("RecordGeneration failed: %v", err)
		}
		if err := s.RecordLoad("first"); err != nil {
			t.Fatalf("RecordLoad failed: %v", err)
		}
		if err := s.RecordGeneration("second", 9, 2*time.Second); err != nil {
			t.Fatalf("RecordGeneration failed: %v", err)
		}

		stats, err := s.LoadBuildStats()
		if err != nil {
			t.Fatalf("LoadBuildStats failed: %v", err)
		}
		if stats.Generations != 2 || stats.Loads != 1 {
			t.Errorf("Expected 2 generations and 1 load, got %+v", stats)
		}
		if stats.LastTableID != "second" || stats.LastSeed != 9 || stats.LastBuildTime != 2*time.Second {
			t.Errorf("Unexpected last build: %+v", stats)
		}
	})
}

func TestStorageOnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	if err := s.Save([]byte{1, 2, 3}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("Failed to reopen storage: %v", err)
	}
	defer s.Close()
	got, err := s.Load()
	if err != nil || len(got) != 3 || got[2] != 3 {
		t.Errorf("Reopened Load = %v, %v", got, err)
	}
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}

	magicDir, err := GetMagicDir()
	if err != nil {
		t.Fatalf("GetMagicDir failed: %v", err)
	}
	if _, err := os.Stat(magicDir); os.IsNotExist(err) {
		t.Errorf("Magic directory was not created: %s", magicDir)
	}

	t.Logf("Data directory: %s", dataDir)
}
