// Command seed loads documents into the analytics store from a JSON file shaped
// as {"quests": [{...}], "submissions": [...], "users": [...], ...}.
// A document's "id" field is used as its key when present.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"analytics-service/internal/config"
	"analytics-service/internal/store"
)

func main() {
	file := flag.String("file", "seed.json", "JSON file with collections of documents")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	cfg.LogFile = ""
	logger := config.SetupLogger(cfg)

	if err := run(*file, cfg); err != nil {
		logger.Fatal().Err(err).Str("file", *file).Msg("seed failed")
	}
	logger.Info().Str("file", *file).Msg("seed done")
}

func run(path string, cfg config.Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var collections map[string][]store.Document
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&collections); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	st, err := store.Open(ctx, cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		return err
	}
	defer st.Close()

	names := make([]string, 0, len(collections))
	for name := range collections {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, doc := range collections[name] {
			id, _ := doc["id"].(string)
			if id == "" {
				id = uuid.NewString()
			}
			if err := st.Put(ctx, name, id, doc); err != nil {
				return err
			}
		}
		fmt.Printf("%s: %d documents\n", name, len(collections[name]))
	}
	return nil
}
