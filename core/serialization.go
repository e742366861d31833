package core

import (
	"time"

	com "github.com/mus-format/common-go"
	"github.com/mus-format/mus-go"
	slops "github.com/mus-format/mus-go/options/slice"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// IDMUS serializes an ID as a fixed 8-byte value.
var IDMUS = idMUS{}

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return raw.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := raw.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return raw.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return raw.Uint64.Skip(bs)
}

// timeMUS writes a time as varint unix nanoseconds. The zero Time is written
// as 0 and read back as the zero Time.
var timeMUS = timeNanoMUS{}

type timeNanoMUS struct{}

func (s timeNanoMUS) Marshal(v time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(unixNano(v), bs)
}

func (s timeNanoMUS) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	nano, n, err := varint.Int64.Unmarshal(bs)
	if err != nil || nano == 0 {
		return
	}
	return time.Unix(0, nano).UTC(), n, nil
}

func (s timeNanoMUS) Size(v time.Time) (size int) {
	return varint.Int64.Size(unixNano(v))
}

func (s timeNanoMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

// MaxCachedTerms bounds the term list read back from an encoded Expansion.
const MaxCachedTerms = 1000

var termsMUS = ord.NewValidSliceSer[string](ord.String,
	slops.WithLenValidator[string](com.ValidatorFn[int](func(n int) error {
		if n > MaxCachedTerms {
			return ErrTooManyTerms
		}
		return nil
	})),
)

// ExpansionMUS serializes an Expansion field by field in declaration order.
var ExpansionMUS mus.Serializer[Expansion] = expansionMUS{}

type expansionMUS struct{}

func (s expansionMUS) Marshal(v Expansion, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Key, bs)
	n += ord.String.Marshal(v.Provider, bs[n:])
	n += ord.String.Marshal(v.Model, bs[n:])
	n += ord.String.Marshal(v.Query, bs[n:])
	n += termsMUS.Marshal(v.Terms, bs[n:])
	return n + timeMUS.Marshal(v.FetchedAt, bs[n:])
}

func (s expansionMUS) Unmarshal(bs []byte) (v Expansion, n int, err error) {
	var n1 int
	if v.Key, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Provider, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Model, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Query, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Terms, n1, err = termsMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	v.FetchedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s expansionMUS) Size(v Expansion) (size int) {
	size = IDMUS.Size(v.Key)
	size += ord.String.Size(v.Provider)
	size += ord.String.Size(v.Model)
	size += ord.String.Size(v.Query)
	size += termsMUS.Size(v.Terms)
	return size + timeMUS.Size(v.FetchedAt)
}

func (s expansionMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = IDMUS.Skip(bs); err != nil {
		return
	}
	for range 3 {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	if n1, err = termsMUS.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	n1, err = timeMUS.Skip(bs[n:])
	n += n1
	return
}
