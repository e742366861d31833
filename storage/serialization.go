package storage

import (
	"errors"
	"fmt"

	"github.com/mus-format/mus-go"
	"github.com/poiesic/smartfind/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, decodeError("id", err)
	}
	return id, nil
}

// MarshalExpansion serializes an Expansion to bytes.
func MarshalExpansion(expansion *core.Expansion) []byte {
	buf := make([]byte, core.ExpansionMUS.Size(*expansion))
	core.ExpansionMUS.Marshal(*expansion, buf)
	return buf
}

// UnmarshalExpansion deserializes an Expansion from bytes.
func UnmarshalExpansion(data []byte) (*core.Expansion, error) {
	expansion, _, err := core.ExpansionMUS.Unmarshal(data)
	if err != nil {
		return nil, decodeError("expansion", err)
	}
	return &expansion, nil
}

func decodeError(what string, err error) error {
	if errors.Is(err, mus.ErrTooSmallByteSlice) {
		return fmt.Errorf("%w: %s: %w", ErrTruncatedData, what, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrSerializationFailed, what, err)
}
