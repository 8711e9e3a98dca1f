// Package store is the document store the analytics summary reads from.
// Documents are schemaless JSON objects grouped into named collections.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	Users       = "users"
	Outlets     = "outlets"
	Rewards     = "rewards"
	Quests      = "quests"
	Submissions = "submissions"
)

// Document is one decoded JSON object. Numbers are json.Number.
type Document map[string]any

// Store is implemented by the sqlite and postgres backends. The caller owns
// the value and must Close it on shutdown.
type Store interface {
	Count(ctx context.Context, collection string) (int64, error)
	Documents(ctx context.Context, collection string) ([]Document, error)
	Put(ctx context.Context, collection, id string, doc Document) error
	Close() error
}

// Open picks a backend by driver name: "sqlite" (dsn is a file path) or
// "postgres" (dsn is a connection URL).
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		s, err := OpenSQLite(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres", "postgresql", "pg":
		s, err := OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

func decodeDocument(raw []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var d Document
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}
	return d, nil
}

func encodeDocument(doc Document) (string, error) {
	if doc == nil {
		doc = Document{}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func checkCollection(c string) error {
	if strings.TrimSpace(c) == "" {
		return fmt.Errorf("empty collection name")
	}
	return nil
}
