package badger

import (
	"github.com/poiesic/smartfind/core"
	"github.com/poiesic/smartfind/storage"
)

// Key prefixes for different data types
const (
	expansionPrefix = "expans:"
)

// makeExpansionKey generates a key for a cached expansion.
// Format: prefix + 8 byte big-endian key, so that iteration follows key order.
func makeExpansionKey(key core.ID) []byte {
	buf := make([]byte, 0, len(expansionPrefix)+8)
	buf = append(buf, expansionPrefix...)
	return append(buf, storage.MarshalID(key)...)
}
