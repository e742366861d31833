package storage

import (
	"testing"
	"time"

	"github.com/poiesic/smartfind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.Len(t, data, 8)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"short data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalID(tt.data)
			assert.ErrorIs(t, err, ErrTruncatedData)
		})
	}
}

func TestMarshalUnmarshalExpansion(t *testing.T) {
	fetched := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name      string
		expansion *core.Expansion
	}{
		{
			name:      "chat backend",
			expansion: core.NewExpansion("openai", "qwen2.5:3b", "cat", []string{"kitten", "feline", "tom cat"}, fetched),
		},
		{
			name:      "no model",
			expansion: core.NewExpansion("datamuse", "", "river", []string{"stream"}, fetched),
		},
		{
			name:      "empty answer",
			expansion: core.NewExpansion("openai", "m", "zzyzx", []string{}, fetched),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalExpansion(tt.expansion)

			decoded, err := UnmarshalExpansion(data)
			require.NoError(t, err)
			assert.Equal(t, tt.expansion.Key, decoded.Key)
			assert.Equal(t, tt.expansion.Provider, decoded.Provider)
			assert.Equal(t, tt.expansion.Model, decoded.Model)
			assert.Equal(t, tt.expansion.Query, decoded.Query)
			assert.Equal(t, tt.expansion.Terms, decoded.Terms)
			assert.True(t, tt.expansion.FetchedAt.Equal(decoded.FetchedAt))
		})
	}
}

func TestMarshalExpansion_ZeroTime(t *testing.T) {
	expansion := core.NewExpansion("openai", "m", "cat", []string{"kitten"}, time.Time{})

	decoded, err := UnmarshalExpansion(MarshalExpansion(expansion))
	require.NoError(t, err)
	assert.True(t, decoded.FetchedAt.IsZero())
}

func TestUnmarshalExpansion_Invalid(t *testing.T) {
	fetched := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	data := MarshalExpansion(core.NewExpansion("openai", "m", "cat", []string{"kitten", "feline"}, fetched))

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty data", nil, ErrTruncatedData},
		{"key only", data[:8], ErrTruncatedData},
		{"cut inside timestamp", data[:len(data)-4], ErrTruncatedData},
		{
			name:    "varint overflow",
			data:    append(MarshalID(1), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff),
			wantErr: ErrSerializationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalExpansion(tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUnmarshalExpansion_TooManyTerms(t *testing.T) {
	terms := make([]string, core.MaxCachedTerms+1)
	for i := range terms {
		terms[i] = "w"
	}
	data := MarshalExpansion(core.NewExpansion("datamuse", "", "cat", terms, time.Time{}))

	_, err := UnmarshalExpansion(data)
	assert.ErrorIs(t, err, ErrSerializationFailed)
	assert.ErrorIs(t, err, core.ErrTooManyTerms)
}

func TestUnmarshalExpansion_EmptyTerms(t *testing.T) {
	data := MarshalExpansion(&core.Expansion{Key: 1, Provider: "openai", Query: "cat"})

	decoded, err := UnmarshalExpansion(data)
	require.NoError(t, err)
	assert.Equal(t, []string{}, decoded.Terms)
	assert.Equal(t, core.ID(1), decoded.Key)
}
