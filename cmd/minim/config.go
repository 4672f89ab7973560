package main

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/mmLang/minim/pkg/village"
)

// config is the resolved game configuration.
type config struct {
	Counts  village.Counts
	Seed    int64
	HasSeed bool
}

// defaultConfig mirrors the classic village: enough villagers to
// search, one murderer to find.
func defaultConfig() config {
	return config{
		Counts: village.Counts{Normal: 4, Strong: 2, Afraid: 1, Murderers: 1},
	}
}

type fileConfig struct {
	Normal    int   `toml:"normal"`
	Strong    int   `toml:"strong"`
	Afraid    int   `toml:"afraid"`
	Murderers int   `toml:"murderers"`
	Seed      int64 `toml:"seed"`
}

// loadConfig merges a TOML config file over the defaults. Keys absent
// from the file keep their default values.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("normal") {
		cfg.Counts.Normal = raw.Normal
	}
	if meta.IsDefined("strong") {
		cfg.Counts.Strong = raw.Strong
	}
	if meta.IsDefined("afraid") {
		cfg.Counts.Afraid = raw.Afraid
	}
	if meta.IsDefined("murderers") {
		cfg.Counts.Murderers = raw.Murderers
	}
	if meta.IsDefined("seed") {
		cfg.Seed = raw.Seed
		cfg.HasSeed = true
	}

	if err := validateCounts(cfg.Counts); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func validateCounts(c village.Counts) error {
	for _, n := range []int{c.Normal, c.Strong, c.Afraid, c.Murderers} {
		if n < 0 {
			return fmt.Errorf("villager counts must be non-negative")
		}
	}
	return nil
}

// newSeed generates a random seed using crypto/rand.
func newSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
