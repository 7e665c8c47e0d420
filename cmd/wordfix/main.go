// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordfix spelling correction server and its
companion tools.

wordfix finds the dictionary words closest to a possibly misspelled input. It
indexes every word together with the strings that result from deleting up to
max_edit_distance characters, and answers a query by deleting characters from
the query in the same way, so both sides meet in the middle. Candidates are
scored with a weighted Damerau-Levenshtein distance and, with the community
strategy, reranked by phonetic, prefix and bigram similarity.

# Usage

Start the msgpack IPC server with a word list:

	wordfix -dict words.txt

Try corrections interactively:

	wordfix -c -dict words.txt -limit 5

Compare the engine with the reference backends on a test corpus:

	wordfix -compare corpus.txt -failures

Measure latency at 10000 queries per second for five seconds:

	wordfix -bench corpus.txt -rate 10000 -duration 5s

Split a frequency sorted word list into chunk files:

	wordfix -dict words.txt -chunk-out data/ -chunk 10000

# Word lists

-dict accepts a text file with one word per line, optionally followed by a
tab and a count, a single dict_NNNN.bin chunk file, or a directory of chunk
files. Chunk words are indexed with a count derived from their rank.

# Test corpus

Corpus lines hold a correct word, true or false, and a comma separated list
of variants, separated by colons:

	kitten:true:kittn,kiten
	sun:false:sin,son

Variants of true lines are misspellings that should be corrected to the word.
Variants of false lines are real words that should be left alone.

# Configuration

Settings are read from [UserConfigDir]/wordfix/config.toml, which is created
with defaults on first start. -config points to another file.

	[engine]
	max_edit_distance = 2
	accuracy_level = "maximum"
	top_k = 6

	[scoring]
	strategy = "community"
	keyboard = "qwertz"

See pkg/config for all keys.

# IPC Protocol

The server reads msgpack requests from stdin and writes one msgpack response
per request to stdout. Logs go to stderr.

	{"id": "q1", "w": "kittn", "l": 3}
	{"id": "q1", "s": [{"w": "kitten", "d": 1, "p": 0.66, "n": 1}], "c": 1, "t": 35}

See pkg/server for the index, stats and health actions.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/bastiangx/wordfix/internal/cli"
	"github.com/bastiangx/wordfix/internal/logger"
	"github.com/bastiangx/wordfix/pkg/bench"
	"github.com/bastiangx/wordfix/pkg/compare"
	"github.com/bastiangx/wordfix/pkg/config"
	"github.com/bastiangx/wordfix/pkg/corpus"
	"github.com/bastiangx/wordfix/pkg/dictionary"
	"github.com/bastiangx/wordfix/pkg/search"
	"github.com/bastiangx/wordfix/pkg/server"
)

const (
	Version = "0.1.0"
	AppName = "wordfix"
	gh      = "https://github.com/bastiangx/wordfix"
)

// sigHandler cancels the run on the first signal. Blocking modes exit right
// away, a second signal always does.
func sigHandler(cancel context.CancelFunc, exitNow bool) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		cancel()
		if !exitNow {
			<-c
		}
		os.Exit(0)
	}()
}

// main only manages the flow, the work is done by the packages.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive CLI instead of the server")
	configPath := flag.String("config", "", "Path to a config.toml")
	rebuildConfig := flag.Bool("rebuild-config", false, "Write a fresh default config and exit")
	dictPath := flag.String("dict", "", "Word list: text file, chunk file or directory of chunk files")
	wordLimit := flag.Int("words", 0, "Maximum number of words to load (0 for all)")
	strategy := flag.String("strategy", "", "Scoring strategy, overrides the config (noop, community)")
	limit := flag.Int("limit", 0, "Number of corrections to print in the CLI (default from config)")
	noFilter := flag.Bool("no-filter", false, "Disable CLI input filtering (or set no_filter in the config)")
	cacheSize := flag.Int("cache", 1024, "Number of query results the server caches (0 disables)")
	comparePath := flag.String("compare", "", "Run the accuracy comparison on this corpus")
	backends := flag.String("backends", strings.Join(search.Names(), ","), "Backends to compare or benchmark")
	acceptSecond := flag.Bool("accept-second", false, "Count a correction in second place as success")
	failures := flag.Bool("failures", false, "List every failed search of the comparison")
	benchPath := flag.String("bench", "", "Run the latency benchmark on this corpus")
	rateFlag := flag.Int("rate", -1, "Benchmark queries per second, 0 = unthrottled (default from config)")
	durationFlag := flag.Duration("duration", -1, "Benchmark duration, 0 = one pass (default from config)")
	workers := flag.Int("workers", 0, "Benchmark workers (default GOMAXPROCS)")
	chunkOut := flag.String("chunk-out", "", "Write the -dict text list as chunk files into this directory")
	chunkSize := flag.Int("chunk", 10000, "Words per chunk file for -chunk-out")

	flag.Parse()
	logger.Setup(*debugMode)

	if *showVersion {
		printVersion()
		return
	}
	if *rebuildConfig {
		path, err := config.RebuildConfigFile()
		if err != nil {
			log.Fatal("Failed to rebuild config", "err", err)
		}
		fmt.Println(path)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serverMode := !*cliMode && *comparePath == "" && *benchPath == "" && *chunkOut == ""
	sigHandler(cancel, serverMode || *cliMode)

	cfg, usedPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatal("Failed to load config", "err", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(usedPath))
	if *strategy != "" {
		cfg.Scoring.Strategy = *strategy
	}

	switch {
	case *chunkOut != "":
		err = writeChunks(ctx, *dictPath, *chunkOut, *chunkSize, *wordLimit)
	case *comparePath != "":
		err = runCompare(ctx, cfg, *comparePath, splitList(*backends), compare.Options{AcceptSecondHit: *acceptSecond}, *failures)
	case *benchPath != "":
		opts := bench.Options{
			Rate:     cfg.Bench.Rate,
			Duration: time.Duration(cfg.Bench.DurationMs) * time.Millisecond,
			Workers:  *workers,
		}
		if *rateFlag >= 0 {
			opts.Rate = *rateFlag
		}
		if *durationFlag >= 0 {
			opts.Duration = *durationFlag
		}
		err = runBench(ctx, cfg, *benchPath, splitList(*backends), opts)
	default:
		err = runEngine(ctx, cfg, *dictPath, *wordLimit, *cliMode, *limit, *noFilter, *cacheSize)
	}
	if err != nil {
		log.Fatal("wordfix failed", "err", err)
	}
}

func runEngine(ctx context.Context, cfg *config.Config, dictPath string, wordLimit int, cliMode bool, limit int, noFilter bool, cacheSize int) error {
	engine, err := cfg.NewEngine()
	if err != nil {
		return err
	}
	if dictPath != "" {
		start := time.Now()
		stats, err := dictionary.Load(ctx, dictPath, engine, wordLimit)
		if err != nil {
			return err
		}
		log.Debugf("Loaded %d words from %s in %v", stats.Words, dictPath, time.Since(start))
	} else {
		log.Warn("No word list given, starting with an empty dictionary")
	}

	if cliMode {
		if limit <= 0 {
			limit = cfg.CLI.DefaultLimit
		}
		noFilter = noFilter || cfg.CLI.NoFilter
		log.Debug("Input info:", "minLen", cfg.CLI.MinLen, "maxLen", cfg.CLI.MaxLen, "limit", limit, "noFilter", noFilter)
		return cli.NewInputHandler(engine, cfg.CLI.MinLen, cfg.CLI.MaxLen, limit, noFilter).Start(os.Stdin, os.Stdout)
	}

	srv, err := server.New(engine, server.Options{MaxQueryLen: cfg.Server.MaxQueryLen, CacheSize: cacheSize})
	if err != nil {
		return err
	}
	showStartupInfo(engine.String(), engine.Stats().Words)
	return srv.Serve(ctx, os.Stdin, os.Stdout)
}

func backendOptions(cfg *config.Config) search.Options {
	return search.Options{
		MaxDistance: cfg.Engine.MaxEditDistance,
		TopK:        cfg.Engine.TopK,
		NewEngine:   cfg.NewEngine,
	}
}

func runCompare(ctx context.Context, cfg *config.Config, corpusPath string, names []string, opts compare.Options, withFailures bool) error {
	c, err := corpus.ReadFile(corpusPath)
	if err != nil {
		return err
	}
	for _, name := range names {
		ws, err := search.New(name, backendOptions(cfg))
		if err != nil {
			return err
		}
		report, err := compare.Run(ctx, ws, c, opts)
		if err != nil {
			return err
		}
		if err := report.Write(os.Stdout, withFailures); err != nil {
			return err
		}
	}
	return nil
}

func runBench(ctx context.Context, cfg *config.Config, corpusPath string, names []string, opts bench.Options) error {
	c, err := corpus.ReadFile(corpusPath)
	if err != nil {
		return err
	}
	for _, name := range names {
		ws, err := search.New(name, backendOptions(cfg))
		if err != nil {
			return err
		}
		result, err := bench.Run(ctx, ws, c, opts)
		if err != nil {
			return err
		}
		if err := result.Write(os.Stdout); err != nil {
			return err
		}
		fmt.Println()
	}
	return nil
}

// wordList keeps words in the order they were read. Counts are dropped, the
// position is the rank.
type wordList []string

func (l *wordList) Index(word string) (bool, error) {
	*l = append(*l, word)
	return true, nil
}

func (l *wordList) IndexCount(word string, _ int) (bool, error) {
	return l.Index(word)
}

func writeChunks(ctx context.Context, dictPath, outDir string, chunkSize, wordLimit int) error {
	if dictPath == "" {
		return errors.New("-chunk-out needs a text word list in -dict")
	}
	var words wordList
	if _, err := dictionary.LoadTextFile(ctx, dictPath, &words, wordLimit); err != nil {
		return err
	}
	files, err := dictionary.WriteChunks(outDir, words, chunkSize)
	if err != nil {
		return err
	}
	log.Infof("Wrote %d words into %d chunk files in %s", len(words), len(files), outDir)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ " + AppName + " ] Fuzzy spelling correction")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(engine string, words int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("=========")
	println(" wordfix ")
	println("=========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("engine: %s, %d words", engine, words)
	log.Info("status: ready")
	println("=========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
