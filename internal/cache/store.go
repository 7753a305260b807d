// Package cache implements the persistent fingerprint cache (spec.md
// component C2): a single bbolt file mapping a file path to its last-known
// digest, size, and modification time, consulted by the fingerprinter
// before it re-hashes a file. bbolt is grounded on the other_examples
// containers-image boltdb.go blob-info cache, which uses the same
// single-writer, open-close-per-transaction BoltDB pattern for a
// content-addressed lookup cache; unlike that cache (opened and closed per
// operation), this store stays open for the run's duration since exactly
// one process owns it at a time.
package cache

import (
	"bytes"
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/morroware/DupeFInder/internal/model"
	"github.com/morroware/DupeFInder/internal/runerr"
)

var (
	fingerprintsBucket = []byte("fingerprints")
	metaBucket         = []byte("meta")
	metaAlgorithmKey   = []byte("algorithm")
)

// Store is the bbolt-backed fingerprint cache. A Store is safe for
// concurrent use by multiple goroutines within one process; bbolt itself
// serializes writers and allows concurrent readers via MVCC snapshots.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if absent) the cache file at path. If the cache was
// last written under a different digest algorithm than algo, every row is
// evicted: cached digests are never compared across algorithms (spec.md
// Open Question: "no retention across an algorithm change"), so keeping
// stale rows would only waste space. Rows older than retention are also
// evicted at open.
func Open(path string, algo model.Algorithm, retention time.Duration) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		if err == bolt.ErrTimeout {
			return nil, runerr.Wrap(runerr.CodeCacheLocked, "cache file locked by another process: "+path, err)
		}
		return nil, runerr.Wrap(runerr.CodeCacheLocked, "open cache file "+path, err)
	}

	s := &Store{db: db}
	if err := s.init(algo, retention); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(algo model.Algorithm, retention time.Duration) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(metaBucket)
		if err != nil {
			return runerr.Wrap(runerr.CodeCacheLocked, "create meta bucket", err)
		}

		prevAlgo := meta.Get(metaAlgorithmKey)
		mismatch := prevAlgo != nil && !bytes.Equal(prevAlgo, []byte(algo))

		if mismatch {
			if err := tx.DeleteBucket(fingerprintsBucket); err != nil && err != bolt.ErrBucketNotFound {
				return runerr.Wrap(runerr.CodeCacheLocked, "evict cache on algorithm change", err)
			}
		}
		if err := meta.Put(metaAlgorithmKey, []byte(algo)); err != nil {
			return runerr.Wrap(runerr.CodeCacheLocked, "record cache algorithm", err)
		}

		fp, err := tx.CreateBucketIfNotExists(fingerprintsBucket)
		if err != nil {
			return runerr.Wrap(runerr.CodeCacheLocked, "create fingerprints bucket", err)
		}

		if retention > 0 {
			cutoff := time.Now().Add(-retention).Unix()
			var stale [][]byte
			_ = fp.ForEach(func(k, v []byte) error {
				var row model.CachedDigest
				if err := json.Unmarshal(v, &row); err != nil {
					stale = append(stale, append([]byte(nil), k...))
					return nil
				}
				if row.LastScanUTC < cutoff {
					stale = append(stale, append([]byte(nil), k...))
				}
				return nil
			})
			for _, k := range stale {
				_ = fp.Delete(k)
			}
		}

		return nil
	})
}

// Lookup returns the cached digest for path, if present.
func (s *Store) Lookup(path string) (model.CachedDigest, bool, error) {
	var row model.CachedDigest
	var found bool

	err := s.db.View(func(tx *bolt.Tx) error {
		fp := tx.Bucket(fingerprintsBucket)
		if fp == nil {
			return nil
		}
		v := fp.Get([]byte(path))
		if v == nil {
			return nil
		}
		if err := json.Unmarshal(v, &row); err != nil {
			return runerr.Wrap(runerr.CodeCacheLocked, "decode cache row for "+path, err)
		}
		found = true
		return nil
	})
	if err != nil {
		return model.CachedDigest{}, false, err
	}
	return row, found, nil
}

// Put writes or overwrites the cached digest for row.Path.
func (s *Store) Put(row model.CachedDigest) error {
	encoded, err := json.Marshal(row)
	if err != nil {
		return runerr.Wrap(runerr.CodeCacheLocked, "encode cache row for "+row.Path, err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		fp := tx.Bucket(fingerprintsBucket)
		if fp == nil {
			return runerr.New(runerr.CodeCacheLocked, "fingerprints bucket missing")
		}
		if err := fp.Put([]byte(row.Path), encoded); err != nil {
			return runerr.Wrap(runerr.CodeCacheLocked, "write cache row for "+row.Path, err)
		}
		return nil
	})
}

// Close releases the underlying bbolt file lock.
func (s *Store) Close() error {
	return s.db.Close()
}
