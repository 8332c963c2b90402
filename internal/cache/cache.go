package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the injected caching dependency. The trust scorer's probe uses
// it to remember reachability results between requests; evicting at any
// time is safe, a miss simply re-probes.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
}

// Key generates a stable cache key from a source URL or authority name
func Key(source string) string {
	hash := sha256.Sum256([]byte(source))
	return "wayfinder:v1:" + hex.EncodeToString(hash[:])
}
