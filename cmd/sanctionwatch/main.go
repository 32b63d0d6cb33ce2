package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/pedrohavay/sanctionwatch/watch"
)

// Screening CLI over the three public watchlists (ONU, OFAC, UE).
// Usage:
//   sanctionwatch check -name "Jon" -last "Doe" -ref 123 -mode smart
//   sanctionwatch serve -listen :3000
//   sanctionwatch export -out records.msgpack

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		check(os.Args[2:])
	case "serve":
		serve(os.Args[2:])
	case "export":
		export(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "sanctionwatch commands: check | serve | export\n")
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

var chip = color.New(color.FgCyan).FprintlnFunc()

func newLoader(cfg watch.Config, store *watch.Store, status *watch.StatusLog, log zerolog.Logger) *watch.Loader {
	return &watch.Loader{
		Fetcher: cfg.Fetcher(),
		Store:   store,
		Paths:   cfg.Sources,
		Log:     log,
		Notify: func(msg string) {
			status.Add(msg)
			chip(os.Stderr, msg)
		},
	}
}

func check(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML config file")
	name := fs.String("name", "", "first/given name to screen")
	last := fs.String("last", "", "last name to screen")
	ref := fs.String("ref", "", "identifying document or reference")
	mode := fs.String("mode", "smart", "match mode: strict | smart | fuzzy")
	verbose := fs.Bool("v", false, "verbose logging")
	_ = fs.Parse(args)

	cfg, err := watch.LoadConfig(*configPath)
	if err != nil {
		fatal(err)
	}
	m, err := watch.ParseMode(*mode)
	if err != nil {
		fatal(err)
	}

	store := watch.NewStore()
	status := &watch.StatusLog{}
	loader := newLoader(cfg, store, status, newLogger(*verbose))
	loader.LoadAll(context.Background())

	queryName := *name
	if *last != "" {
		queryName = queryName + " " + *last
	}
	out, err := store.Search(queryName, *ref, m)
	if err != nil {
		fatal(err)
	}
	if out.Total == 0 {
		chip(os.Stderr, "Sin coincidencias relevantes (>=85). Revisa modo de busqueda.")
		return
	}
	for _, res := range out.Results {
		fmt.Printf("%-5s %-50s %-20s %-15s %s\n", res.Source, res.Name, res.Program, res.Ref, res.MatchText)
	}
	chip(os.Stderr, fmt.Sprintf("Coincidencias: %d", out.Total))
}

func serve(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML config file")
	listen := fs.String("listen", "", "listen address (overrides config)")
	verbose := fs.Bool("v", false, "verbose logging")
	_ = fs.Parse(args)

	cfg, err := watch.LoadConfig(*configPath)
	if err != nil {
		fatal(err)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	log := newLogger(*verbose)
	store := watch.NewStore()
	status := &watch.StatusLog{}
	loader := newLoader(cfg, store, status, log)
	// Load in the background so queries against already-loaded sources
	// work while slower feeds are still in flight.
	go loader.LoadAll(context.Background())

	srv := &watch.Server{Store: store, Status: status, DataDir: cfg.DataDir, Log: log}
	log.Info().Str("listen", cfg.Listen).Msg("serving")
	if err := http.ListenAndServe(cfg.Listen, srv.Routes()); err != nil {
		fatal(err)
	}
}

func export(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML config file")
	out := fs.String("out", "", "output file (default stdout)")
	verbose := fs.Bool("v", false, "verbose logging")
	_ = fs.Parse(args)

	cfg, err := watch.LoadConfig(*configPath)
	if err != nil {
		fatal(err)
	}
	store := watch.NewStore()
	status := &watch.StatusLog{}
	loader := newLoader(cfg, store, status, newLogger(*verbose))
	loader.LoadAll(context.Background())

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		w = f
	}
	if err := watch.WriteRecordsMsgpack(w, store.All()); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
