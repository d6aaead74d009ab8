// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/gogpu/scalerfx/digest"
	"github.com/gogpu/scalerfx/effect"
	"github.com/gogpu/scalerfx/internal/logging"
)

// FormatVersion is the version of the on-disk encoding. Files written with a
// different version are ignored.
const FormatVersion = 1

const (
	// DefaultMaxEntries is the default in-memory table ceiling.
	DefaultMaxEntries = 128

	// DefaultSuffix is the default cache file extension.
	DefaultSuffix = ".sfxc"
)

// ErrMiss is returned by Load when no entry exists for the key.
var ErrMiss = errors.New("cache miss")

// Options configures a Cache.
type Options struct {
	// Dir is the cache directory. It is created if missing. An empty Dir
	// disables the on-disk tier.
	Dir string

	// MaxEntries bounds the in-memory table. When exceeded, the oldest half of
	// the entries is dropped. Zero means DefaultMaxEntries.
	MaxEntries int

	// Suffix is the cache file extension. Empty means DefaultSuffix.
	Suffix string
}

// Key identifies a compiled effect.
type Key struct {
	Identity string
	Hash     digest.Digest
}

// Entry is an in-memory cache entry.
type Entry struct {
	Identity   string
	Hash       digest.Digest
	Desc       *effect.Desc
	LastAccess time.Time

	seq uint64
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of in-memory entries.
	Len int
	// Capacity is the in-memory ceiling.
	Capacity int
	// Hits counts loads answered by either tier.
	Hits uint64
	// DiskHits counts loads answered by the on-disk tier.
	DiskHits uint64
	// Misses counts loads that found nothing usable.
	Misses uint64
}

// Cache is a two-tier content-addressed effect cache.
type Cache struct {
	mu      sync.Mutex
	opts    Options
	entries map[Key]*Entry
	seq     uint64
	stats   Stats
	now     func() time.Time
}

// New creates a cache.
func New(opts Options) (*Cache, error) {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.Suffix == "" {
		opts.Suffix = DefaultSuffix
	}
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, effect.WrapError(effect.KindIO, err, "create cache directory")
		}
	}
	return &Cache{
		opts:    opts,
		entries: make(map[Key]*Entry),
		now:     time.Now,
	}, nil
}

// Dir returns the cache directory, empty for a memory-only cache.
func (c *Cache) Dir() string {
	return c.opts.Dir
}

// sanitize maps a source identity to a file name stem.
func sanitize(identity string) string {
	var sb strings.Builder
	for _, r := range identity {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// fileStem maps an identity to the file name prefix shared by all of its
// variants. The short digest of the raw identity keeps identities that
// sanitize to the same text apart.
func fileStem(identity string) string {
	return sanitize(identity) + "-" + digest.SumString(identity).String()[:8] + "_"
}

// FileName returns the cache file name for a key, relative to the cache
// directory.
func (c *Cache) FileName(identity string, hash digest.Digest) string {
	return fileStem(identity) + hash.String() + c.opts.Suffix
}

// Load returns the descriptor stored for (identity, hash). It returns an
// error wrapping ErrMiss when there is no entry, and a CacheIntegrityError
// when the on-disk file fails verification. The caller owns the returned
// descriptor.
func (c *Cache) Load(identity string, hash digest.Digest) (*effect.Desc, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key{Identity: identity, Hash: hash}
	if e, ok := c.entries[key]; ok {
		e.LastAccess = c.now()
		c.stats.Hits++
		return e.Desc.Clone(), nil
	}

	if c.opts.Dir == "" {
		c.stats.Misses++
		return nil, fmt.Errorf("%s: %w", identity, ErrMiss)
	}

	path := filepath.Join(c.opts.Dir, c.FileName(identity, hash))
	d, err := c.readFile(path)
	if err != nil {
		c.stats.Misses++
		if effect.IsKind(err, effect.KindCacheIntegrity) {
			logging.L().Warn("discarding cache file", zap.String("path", path), zap.Error(err))
			_ = os.Remove(path)
		}
		return nil, err
	}

	c.stats.Hits++
	c.stats.DiskHits++
	c.insert(key, d)
	return d.Clone(), nil
}

// readFile reads and verifies one cache file.
func (c *Cache) readFile(path string) (*effect.Desc, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrMiss)
	}
	if err != nil {
		return nil, effect.WrapError(effect.KindIO, err, "read cache file")
	}

	if len(data) < digest.Size {
		return nil, effect.NewError(effect.KindCacheIntegrity, "cache file %s is truncated", filepath.Base(path))
	}
	var stored digest.Digest
	copy(stored[:], data[:digest.Size])
	payload := data[digest.Size:]
	if digest.Sum(payload) != stored {
		return nil, effect.NewError(effect.KindCacheIntegrity, "cache file %s digest mismatch", filepath.Base(path))
	}

	version, n := protowire.ConsumeVarint(payload)
	if n < 0 {
		return nil, effect.WrapError(effect.KindCacheIntegrity, protowire.ParseError(n), "cache file %s has no version", filepath.Base(path))
	}
	if version != FormatVersion {
		return nil, effect.NewError(effect.KindCacheIntegrity, "cache file %s has version %d, want %d", filepath.Base(path), version, FormatVersion)
	}

	d, err := Unmarshal(payload[n:])
	if err != nil {
		return nil, effect.WrapError(effect.KindCacheIntegrity, err, "cache file %s", filepath.Base(path))
	}
	return d, nil
}

// Save stores d for (identity, hash) in both tiers. Files of other hashes of
// the same identity are removed. The cache keeps its own copy of d.
func (c *Cache) Save(identity string, hash digest.Digest, d *effect.Desc) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.insert(Key{Identity: identity, Hash: hash}, d.Clone())
	if c.opts.Dir == "" {
		return nil
	}

	c.removeStale(identity, hash)

	payload := protowire.AppendVarint(nil, FormatVersion)
	payload = append(payload, Marshal(d)...)
	sum := digest.Sum(payload)

	data := make([]byte, 0, digest.Size+len(payload))
	data = append(data, sum[:]...)
	data = append(data, payload...)

	return c.writeFile(c.FileName(identity, hash), data)
}

// writeFile writes data under name through a temporary file so that readers
// never observe a partial file.
func (c *Cache) writeFile(name string, data []byte) error {
	tmp, err := os.CreateTemp(c.opts.Dir, ".tmp-*")
	if err != nil {
		return effect.WrapError(effect.KindIO, err, "create cache file")
	}
	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), filepath.Join(c.opts.Dir, name))
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return effect.WrapError(effect.KindIO, err, "write cache file %s", name)
	}
	return nil
}

// removeStale deletes on-disk files of identity whose hash differs from keep.
// Caller must hold c.mu.
func (c *Cache) removeStale(identity string, keep digest.Digest) {
	stem := fileStem(identity)
	matches, err := filepath.Glob(filepath.Join(c.opts.Dir, stem+"*"+c.opts.Suffix))
	if err != nil {
		return
	}
	for _, path := range matches {
		name := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(path), stem), c.opts.Suffix)
		h, ok := digest.Parse(name)
		if !ok || h == keep {
			// Either the file being replaced or a foreign name.
			continue
		}
		if err := os.Remove(path); err != nil {
			logging.L().Warn("remove stale cache file", zap.String("path", path), zap.Error(err))
			continue
		}
		logging.L().Debug("removed stale cache file", zap.String("path", path))
	}
}

// insert adds an entry to the memory table, evicting the oldest half of the
// table when it grows past the ceiling. Caller must hold c.mu.
func (c *Cache) insert(key Key, d *effect.Desc) {
	c.seq++
	c.entries[key] = &Entry{
		Identity:   key.Identity,
		Hash:       key.Hash,
		Desc:       d,
		LastAccess: c.now(),
		seq:        c.seq,
	}
	if len(c.entries) > c.opts.MaxEntries {
		c.evictOldest()
	}
}

// evictOldest drops the older half of the memory table by insertion order.
// Caller must hold c.mu.
func (c *Cache) evictOldest() {
	order := make([]*Entry, 0, len(c.entries))
	for _, e := range c.entries {
		order = append(order, e)
	}
	slices.SortFunc(order, func(a, b *Entry) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})

	drop := len(order) / 2
	for _, e := range order[:drop] {
		delete(c.entries, Key{Identity: e.Identity, Hash: e.Hash})
	}
	logging.L().Debug("evicted cache entries", zap.Int("count", drop), zap.Int("remaining", len(c.entries)))
}

// Len returns the number of in-memory entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Len = len(c.entries)
	s.Capacity = c.opts.MaxEntries
	return s
}

// Prune empties both tiers and returns the number of files removed.
func (c *Cache) Prune() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[Key]*Entry)
	if c.opts.Dir == "" {
		return 0, nil
	}

	matches, err := filepath.Glob(filepath.Join(c.opts.Dir, "*"+c.opts.Suffix))
	if err != nil {
		return 0, err
	}
	removed := 0
	var errs []error
	for _, path := range matches {
		if err := os.Remove(path); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	if len(errs) > 0 {
		return removed, effect.WrapError(effect.KindIO, errors.Join(errs...), "prune cache")
	}
	return removed, nil
}
