// Package pagecache persists prerendered pages in a bbolt database.
package pagecache

import (
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no page is stored for a route.
var ErrNotFound = errors.New("pagecache: page not found")

const bucketPages = "pages"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Entry is a stored page.
type Entry struct {
	Route      string    `json:"route"`
	HTML       string    `json:"html"`
	ETag       string    `json:"etag"`
	RenderedAt time.Time `json:"rendered_at"`
}

// Cache stores pages keyed by route.
type Cache struct {
	db     *bolt.DB
	logger *zap.Logger
}

// Open opens or creates the cache database at path.
func Open(path string, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("pagecache: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPages))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("pagecache: initialize %s: %w", path, err)
	}
	return &Cache{db: db, logger: logger.Named("pagecache")}, nil
}

// Put stores e under its route.
func (c *Cache) Put(e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("pagecache: encode %s: %w", e.Route, err)
	}
	err = c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPages)).Put([]byte(e.Route), data)
	})
	if err != nil {
		return fmt.Errorf("pagecache: store %s: %w", e.Route, err)
	}
	c.logger.Debug("page stored", zap.String("route", e.Route), zap.Int("bytes", len(e.HTML)))
	return nil
}

// Get returns the page stored for route.
func (c *Cache) Get(route string) (Entry, error) {
	var e Entry
	err := c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucketPages)).Get([]byte(route))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, route)
		}
		return json.Unmarshal(data, &e)
	})
	return e, err
}

// Delete removes the page stored for route.
func (c *Cache) Delete(route string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPages)).Delete([]byte(route))
	})
}

// Routes lists the stored routes in key order.
func (c *Cache) Routes() ([]string, error) {
	var routes []string
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPages)).ForEach(func(k, _ []byte) error {
			routes = append(routes, string(k))
			return nil
		})
	})
	return routes, err
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}
