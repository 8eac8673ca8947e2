package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"fxsema/internal/model"
)

// Current schema version - increment when CachePayload format changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores serialized analysis models keyed by a digest of the
// input plus run options. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is the on-disk record for one analyzed document.
type CachePayload struct {
	Schema uint16

	Profile string
	Entry   string

	// ModelJSON is the serialized output model; caching the encoded
	// form keeps the payload independent of internal struct changes.
	ModelJSON []byte
}

// OpenDiskCache initializes a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey digests the input document together with the options that
// influence the produced model.
func CacheKey(data []byte, opts Options) [32]byte {
	h := sha256.New()
	h.Write(data)
	h.Write([]byte{0})
	h.Write([]byte(opts.Profile))
	h.Write([]byte{0})
	h.Write([]byte(opts.Entry))
	if opts.Policy.StrictWidths {
		h.Write([]byte{1})
	}
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "models", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload, replacing atomically.
func (c *DiskCache) Put(key [32]byte, m *model.Model, opts Options) error {
	if c == nil {
		return nil
	}
	encoded, err := json.Marshal(m)
	if err != nil {
		return err
	}
	payload := &CachePayload{
		Schema:    diskCacheSchemaVersion,
		Profile:   opts.Profile,
		Entry:     opts.Entry,
		ModelJSON: encoded,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a cached model. The boolean reports a usable hit.
func (c *DiskCache) Get(key [32]byte) ([]byte, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload CachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, nil // corrupt entry, treat as miss
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return payload.ModelJSON, true, nil
}
