package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

var bucketDocs = []byte("doc_comments")

// DocCache stores generated doc comments by key.
type DocCache interface {
	Get(key string) (string, bool, error)
	Put(key, comment string) error
	Close() error
}

// CacheKey derives the cache key for a generation request.
func CacheKey(provider, model, code string) string {
	h := sha256.New()
	for _, part := range []string{provider, model, code} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}

// BoltDocCache is a DocCache backed by a bbolt file.
type BoltDocCache struct {
	db *bbolt.DB
}

type cacheEntry struct {
	Comment   string `json:"comment"`
	CreatedAt int64  `json:"created_at"`
}

// NewBoltDocCache opens (or creates) the cache database at path.
func NewBoltDocCache(path string) (*BoltDocCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketDocs); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketDocs, err)
		}

		return nil
	})
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	return &BoltDocCache{db: db}, nil
}

// Get returns the cached comment for key.
func (c *BoltDocCache) Get(key string) (string, bool, error) {
	var (
		entry cacheEntry
		found bool
	)

	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocs).Get([]byte(key))
		if data == nil {
			return nil
		}

		found = true

		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		return "", false, err
	}

	return entry.Comment, found, nil
}

// Put stores comment under key.
func (c *BoltDocCache) Put(key, comment string) error {
	data, err := json.Marshal(cacheEntry{Comment: comment, CreatedAt: time.Now().Unix()})
	if err != nil {
		return err
	}

	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocs).Put([]byte(key), data)
	})
}

// Close closes the database.
func (c *BoltDocCache) Close() error {
	return c.db.Close()
}

// CachedGenerator serves repeated requests from a DocCache. Cache errors
// never fail a request.
type CachedGenerator struct {
	next     DocGenerator
	cache    DocCache
	provider string
	model    string
}

// NewCachedGenerator wraps next with cache.
func NewCachedGenerator(next DocGenerator, cache DocCache, provider, model string) *CachedGenerator {
	return &CachedGenerator{next: next, cache: cache, provider: provider, model: model}
}

// Generate returns a cached comment or asks the wrapped generator.
func (g *CachedGenerator) Generate(ctx context.Context, code string) (string, error) {
	key := CacheKey(g.provider, g.model, code)

	if comment, ok, err := g.cache.Get(key); err == nil && ok {
		return comment, nil
	}

	comment, err := g.next.Generate(ctx, code)
	if err != nil {
		return "", err
	}

	// Only responses holding a doc block are cached.
	if strings.Contains(comment, "/**") {
		_ = g.cache.Put(key, comment)
	}

	return comment, nil
}
