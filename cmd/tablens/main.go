package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tablens/internal/cache"
	"github.com/jask/tablens/internal/config"
	"github.com/jask/tablens/internal/source"
	"github.com/jask/tablens/internal/tui"
	"github.com/jask/tablens/internal/view"
)

func main() {
	table := flag.String("table", "", "browse a table of a sqlite database instead of a CSV file")
	delimiter := flag.String("delimiter", "", "CSV field delimiter (overrides config)")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tablens [-table name] [-delimiter char] <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *delimiter != "" {
		cfg.CSV.Delimiter = *delimiter
	}

	if *table != "" {
		src, err := source.OpenSQLite(path, *table)
		if err != nil {
			log.Fatalf("open: %v", err)
		}
		defer src.Close()
		run(cfg, src, fmt.Sprintf("%s:%s", filepath.Base(path), *table))
		return
	}

	src, err := source.OpenCSV(path, cfg.Delimiter())
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	defer src.Close()

	store := openCache(cfg)
	if store != nil {
		defer store.Close()
		seedIndex(store, src)
	}

	run(cfg, src, filepath.Base(path))

	if store != nil {
		persistIndex(cfg, store, src)
	}
}

func run(cfg config.Config, src source.Source, title string) {
	v, err := view.New(src, cfg.UI.NumRows)
	if err != nil {
		log.Fatalf("load: %v", err)
	}
	app := tui.New(cfg, src, v, title)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("tablens: %v", err)
	}
}

func openCache(cfg config.Config) *cache.Store {
	if !cfg.Cache.Enabled {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Cache.Path), 0o755); err != nil {
		log.Printf("index cache disabled: %v", err)
		return nil
	}
	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		log.Printf("index cache disabled: %v", err)
		return nil
	}
	return store
}

func seedIndex(store *cache.Store, src *source.CSVSource) {
	offsets, ok, err := store.Load(src.Path(), src.Size(), src.ModTime())
	if err != nil || !ok {
		return
	}
	src.SeedIndex(offsets)
}

func persistIndex(cfg config.Config, store *cache.Store, src *source.CSVSource) {
	offsets, complete := src.Index()
	if !complete {
		return
	}
	if err := store.Save(src.Path(), src.Size(), src.ModTime(), offsets); err != nil {
		log.Printf("index cache: %v", err)
		return
	}
	if err := store.Prune(cfg.Cache.Keep); err != nil {
		log.Printf("index cache: %v", err)
	}
}
