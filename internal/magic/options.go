package magic

import (
	"log"
	"os"
	"strconv"
)

// Defaults
const (
	DefaultSeed        uint64 = 0x5EED5EED
	DefaultRetryBudget        = 1 << 20
)

// Environment variables read by OptionsFromEnv.
const (
	EnvPath    = "YSE_MAGIC_PATH"
	EnvDisable = "YSE_MAGIC_DISABLE"
	EnvSeed    = "YSE_MAGIC_SEED"
)

// Options configures how a table is obtained.
type Options struct {
	Path          string // Table file; empty skips the disk entirely
	AllowGenerate bool   // Search new magics when no valid table is stored
	Disabled      bool   // Never build a table; queries ray-cast
	Seed          uint64 // Seed for the magic search
	RetryBudget   int    // Attempts per square before giving up
}

// DefaultOptions returns options using the default table path with
// generation allowed.
func DefaultOptions() Options {
	return Options{
		Path:          defaultPathOrEmpty(),
		AllowGenerate: true,
		Seed:          DefaultSeed,
		RetryBudget:   DefaultRetryBudget,
	}
}

// defaultPathOrEmpty resolves DefaultPath, which creates the data
// directory, and falls back to no path.
func defaultPathOrEmpty() string {
	path, err := DefaultPath()
	if err != nil {
		log.Printf("Warning: no data directory for magic table: %v", err)
		return ""
	}
	return path
}

// OptionsFromEnv returns DefaultOptions overridden by the environment.
// The default path is only resolved when lookups are enabled and no path
// is given, so a disabled configuration never touches the data directory.
func OptionsFromEnv() Options {
	opts := Options{
		AllowGenerate: true,
		Seed:          DefaultSeed,
		RetryBudget:   DefaultRetryBudget,
	}
	if v := os.Getenv(EnvDisable); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("Warning: ignoring %s=%q: %v", EnvDisable, v, err)
		} else {
			opts.Disabled = disabled
		}
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			log.Printf("Warning: ignoring %s=%q: %v", EnvSeed, v, err)
		} else {
			opts.Seed = seed
		}
	}
	switch p := os.Getenv(EnvPath); {
	case p != "":
		opts.Path = p
	case !opts.Disabled:
		opts.Path = defaultPathOrEmpty()
	}
	return opts
}
