// Command magicgen builds, verifies and stores the sliding-piece magic table.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/fgantt/yse-sub003/internal/attack"
	"github.com/fgantt/yse-sub003/internal/batch"
	"github.com/fgantt/yse-sub003/internal/board"
	"github.com/fgantt/yse-sub003/internal/magic"
	"github.com/fgantt/yse-sub003/internal/storage"
	"github.com/fgantt/yse-sub003/internal/telemetry"
)

var (
	out        = flag.String("out", "", "table file (default: platform data directory)")
	dbDir      = flag.String("db", "", `store the table in a badger database at this directory instead of a file ("default" for the data directory)`)
	seed       = flag.Uint64("seed", magic.DefaultSeed, "seed for the magic search")
	budget     = flag.Int("budget", magic.DefaultRetryBudget, "search attempts per square")
	verify     = flag.Bool("verify", false, "load and validate the stored table without generating")
	force      = flag.Bool("force", false, "regenerate even if a valid table is stored")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	if err := run(); err != nil {
		pprof.StopCPUProfile()
		log.Fatal(err)
	}
}

func run() error {
	store, db, err := openStore()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	opts := magic.Options{Seed: *seed, RetryBudget: *budget}

	var t *magic.Table
	generated := false
	if !*force {
		t, err = magic.LoadOrGenerateFrom(store, opts)
		if err != nil && (*verify || !errors.Is(err, magic.ErrNoTable)) {
			return err
		}
	} else if *verify {
		return errors.New("-verify and -force are mutually exclusive")
	}

	if t == nil {
		start := time.Now()
		t, err = magic.Generate(opts)
		if err != nil {
			return err
		}
		if err := magic.Save(store, t); err != nil {
			return fmt.Errorf("saving table: %w", err)
		}
		generated = true
		if db != nil {
			if err := db.RecordGeneration(t.ID.String(), t.Seed, time.Since(start)); err != nil {
				log.Printf("Warning: failed to record build stats: %v", err)
			}
		}
	} else if db != nil {
		if err := db.RecordLoad(t.ID.String()); err != nil {
			log.Printf("Warning: failed to record build stats: %v", err)
		}
	}

	report(t, generated)
	if db != nil {
		if stats, err := db.LoadBuildStats(); err == nil {
			fmt.Printf("builds:    %d generated, %d loaded (last %v)\n",
				stats.Generations, stats.Loads, stats.LastBuildTime.Round(time.Millisecond))
		}
	}
	return nil
}

// openStore returns the badger store when -db is set, else the table file.
func openStore() (magic.Store, *storage.Storage, error) {
	if *dbDir != "" {
		var db *storage.Storage
		var err error
		if *dbDir == "default" {
			db, err = storage.NewStorage()
		} else {
			db, err = storage.Open(*dbDir)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return db, db, nil
	}

	path := *out
	if path == "" {
		var err error
		if path, err = magic.DefaultPath(); err != nil {
			return nil, nil, err
		}
	}
	return magic.FileStore{Path: path}, nil, nil
}

func report(t *magic.Table, generated bool) {
	source := "loaded"
	if generated {
		source = "generated"
	}

	rooks, bishops := 0, 0
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		r, b := t.Entry(board.SliderRook, sq), t.Entry(board.SliderBishop, sq)
		rooks += r.Size()
		bishops += b.Size()
	}

	// One query per slider and square through the regular query path.
	var counters telemetry.Counters
	q := attack.NewQuerier(t).WithCounters(&counters)
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		q.Attacks(sq, board.Rook, board.Empty)
		q.Attacks(sq, board.Bishop, board.Empty)
	}

	fmt.Printf("table:     %s (%s)\n", t.ID, source)
	fmt.Printf("seed:      %#x\n", t.Seed)
	fmt.Printf("slots:     %d rook, %d bishop, %d total\n", rooks, bishops, t.Len())
	fmt.Printf("size:      %s\n", humanize.IBytes(t.SizeBytes()))
	fmt.Printf("kernel:    %s (detected %s)\n", batch.Active(), batch.Detected())
	fmt.Printf("queries:   %s\n", counters.Snapshot())
}
