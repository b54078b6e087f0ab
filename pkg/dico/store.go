package dico

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.attrkit.dev/pkg/elems"
	"src.attrkit.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[dico] ")

// ErrNoDoc is returned by (*Store).Load when there is no such document.
var ErrNoDoc = errors.New("no such document")

const bucketDoc = "doc"

var initDB = map[string]func(*bolt.Tx) error{
	"initialize document table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketDoc))
		return err
	},
}

// Store keeps named documents in a bbolt database. Each document is a nested
// bucket whose keys are entry names and whose values are the textual form of
// element sequences. It is safe for concurrent use.
type Store struct {
	db *bolt.DB
}

// NewStore opens or creates the database file at path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	st, err := NewStoreFromDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (*Store, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")
	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Save replaces the named document with the entries of m.
func (s *Store) Save(doc string, m *Map) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		docs := tx.Bucket([]byte(bucketDoc))
		if docs.Bucket([]byte(doc)) != nil {
			if err := docs.DeleteBucket([]byte(doc)); err != nil {
				return err
			}
		}
		b, err := docs.CreateBucket([]byte(doc))
		if err != nil {
			return err
		}
		for _, name := range m.Names() {
			if err := b.Put([]byte(name), []byte(m.Get(name).String())); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load reads the named document. It returns ErrNoDoc if there is no such
// document.
func (s *Store) Load(doc string) (*Map, error) {
	m := NewMap()
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketDoc)).Bucket([]byte(doc))
		if b == nil {
			return ErrNoDoc
		}
		return b.ForEach(func(k, v []byte) error {
			es, err := elems.Parse(string(v))
			if err != nil {
				return fmt.Errorf("entry %q: %w", k, err)
			}
			m.Set(string(k), es)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes the named document. Deleting a missing document is not an
// error.
func (s *Store) Delete(doc string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		err := tx.Bucket([]byte(bucketDoc)).DeleteBucket([]byte(doc))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}

// Docs lists the names of stored documents, in byte order.
func (s *Store) Docs() ([]string, error) {
	var docs []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDoc)).ForEach(func(k, v []byte) error {
			// Nested buckets have nil values.
			if v == nil {
				docs = append(docs, string(k))
			}
			return nil
		})
	})
	return docs, err
}
