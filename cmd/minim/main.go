// minim is the interactive village game. The player writes .mm
// programs, picks a starting villager, and the game alternates mini
// runs with murderer nights until one side wins.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mmLang/minim/pkg/game"
	"github.com/mmLang/minim/pkg/mini"
	"github.com/mmLang/minim/pkg/parser"
	"github.com/mmLang/minim/pkg/village"
)

func main() {
	configPath := flag.String("config", "", "TOML config file with village composition")
	seed := flag.Int64("seed", 0, "deterministic RNG seed (0 = random)")
	verbose := flag.Bool("verbose", false, "log every game event")
	flag.Parse()

	if err := run(*configPath, *seed, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "minim: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, seedFlag int64, verbose bool) error {
	cfg := defaultConfig()
	if configPath != "" {
		loaded, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	seed := seedFlag
	if seed == 0 && cfg.HasSeed {
		seed = cfg.Seed
	}
	if seed == 0 {
		s, err := newSeed()
		if err != nil {
			return err
		}
		seed = s
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	v, err := village.New(cfg.Counts, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	g := game.New(v, log)
	in := bufio.NewScanner(os.Stdin)

	fmt.Printf("A village of %d. Somewhere among them: %d murderer(s).\n",
		cfg.Counts.Total(), cfg.Counts.Murderers)

	for !g.Over() {
		program, ok := promptProgram(in)
		if !ok {
			return errors.New("input closed")
		}
		start, ok := promptStart(in, v)
		if !ok {
			return errors.New("input closed")
		}

		result, err := g.PlayDay(start, program)
		if err != nil {
			return err
		}
		printDay(result)
	}

	printReport(g.Report())
	return nil
}

// promptProgram asks for a .mm file path until one parses. Every
// error in the parser's taxonomy is recoverable by trying again.
func promptProgram(in *bufio.Scanner) ([]mini.Instruction, bool) {
	for {
		fmt.Print("Program file (.mm): ")
		if !in.Scan() {
			return nil, false
		}
		path := strings.TrimSpace(in.Text())
		if path == "" {
			continue
		}

		program, err := parser.ParseFile(path)
		switch {
		case err == nil:
			return program, true
		case errors.Is(err, fs.ErrNotExist):
			fmt.Println("no such file, try again")
		case errors.Is(err, parser.ErrNotText):
			fmt.Println("that file is not a text program, try again")
		default:
			fmt.Printf("parse error: %v\n", err)
		}
	}
}

// promptStart asks for a starting label until it names a villager
// that was generated.
func promptStart(in *bufio.Scanner, v *village.Village) (village.Label, bool) {
	for {
		fmt.Print("Starting villager: ")
		if !in.Scan() {
			return 0, false
		}
		n, err := strconv.ParseUint(strings.TrimSpace(in.Text()), 10, 8)
		if err != nil {
			fmt.Println("enter a villager number, try again")
			continue
		}
		label := village.Label(n)
		if !v.Exists(label) {
			fmt.Println("there is no villager at that location")
			continue
		}
		return label, true
	}
}

func printDay(result game.DayResult) {
	fmt.Printf("--- day %d ---\n", result.Day)
	for _, ev := range result.Events {
		fmt.Printf("  mini: %s\n", ev)
	}
	fmt.Printf("  mini ended: %s\n", result.MiniStatus)

	deaths := result.Night.Deaths()
	switch len(deaths) {
	case 0:
		fmt.Println("  the night passes quietly")
	default:
		for _, label := range deaths {
			fmt.Printf("  villager %d was found dead this morning\n", label)
		}
	}
}

func printReport(report game.Report) {
	fmt.Printf("=== %s after %d day(s) ===\n", report.Status, report.Days)
	for _, entry := range report.Layout {
		fmt.Printf("  %3d  %s\n", entry.Label, entry.Kind)
	}
}
