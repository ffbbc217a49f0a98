package dictionary

import (
	"bytes"
	"context"
	"encoding/gob"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Store persists dictionary verdicts between runs.
type Store interface {
	Load(ctx context.Context) (known, unknown []string, err error)
	Save(ctx context.Context, known, unknown []string) error
}

const keyPrefix = "word:"

type verdict struct {
	Known bool
}

// BadgerStore keeps one key per word, "word:<lowercase word>", with a gob
// encoded verdict as its value.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a verdict cache in dir. An empty dir
// gives a store that lives only in memory.
func OpenBadgerStore(dir string) (BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return BadgerStore{}, err
	}
	return BadgerStore{db: db}, nil
}

func NewBadgerStore(db *badger.DB) BadgerStore {
	return BadgerStore{db: db}
}

func (s BadgerStore) Close() error {
	return s.db.Close()
}

func (s BadgerStore) Load(ctx context.Context) ([]string, []string, error) {
	_, span := tracer.Start(ctx, "store:load")
	defer span.End()

	var known, unknown []string
	err := s.db.View(func(tx *badger.Txn) error {
		it := tx.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			word := strings.TrimPrefix(string(item.Key()), keyPrefix)

			serialized, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			var v verdict
			err = gob.NewDecoder(bytes.NewBuffer(serialized)).Decode(&v)
			if err != nil {
				return err
			}

			if v.Known {
				known = append(known, word)
				continue
			}
			unknown = append(unknown, word)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read verdicts from badger")
		return nil, nil, err
	}

	span.SetAttributes(
		attribute.Int("known", len(known)),
		attribute.Int("unknown", len(unknown)),
	)
	return known, unknown, nil
}

// Save replaces every stored verdict with the given sets.
func (s BadgerStore) Save(ctx context.Context, known, unknown []string) error {
	_, span := tracer.Start(ctx, "store:save")
	defer span.End()

	err := s.db.DropPrefix([]byte(keyPrefix))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to clear old verdicts")
		return err
	}

	batch := s.db.NewWriteBatch()
	defer batch.Cancel()

	write := func(words []string, isKnown bool) error {
		for _, w := range words {
			serialized := bytes.NewBuffer(nil)
			err := gob.NewEncoder(serialized).Encode(verdict{Known: isKnown})
			if err != nil {
				return err
			}
			err = batch.Set([]byte(keyPrefix+strings.ToLower(w)), serialized.Bytes())
			if err != nil {
				return err
			}
		}
		return nil
	}

	err = write(unknown, false)
	if err == nil {
		err = write(known, true)
	}
	if err == nil {
		err = batch.Flush()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write verdicts to badger")
		return err
	}
	return nil
}
