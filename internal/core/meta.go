package core

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Metadata keys recorded by the query pipeline.
const (
	MetaKeyHasImage         = "has_image"
	MetaKeyContextRetrieved = "context_retrieved"
	MetaKeyScopeChecked     = "scope_checked"
	MetaKeyScopeReason      = "scope_reason"
	MetaKeyRoute            = "route"
	MetaKeyError            = "error"
	MetaKeyTimestamp        = "timestamp"
)

// MetaKind discriminates the variants a MetaValue can hold.
type MetaKind int

const (
	MetaKindString MetaKind = iota
	MetaKindBool
	MetaKindInt
)

// MetaValue is a closed scalar variant: string, bool or int. Keeping the
// value set closed keeps interaction metadata trivially serializable and
// comparable in tests, unlike an open any-typed mapping.
type MetaValue struct {
	kind MetaKind
	s    string
	b    bool
	i    int
}

func MetaString(s string) MetaValue { return MetaValue{kind: MetaKindString, s: s} }
func MetaBool(b bool) MetaValue     { return MetaValue{kind: MetaKindBool, b: b} }
func MetaInt(i int) MetaValue       { return MetaValue{kind: MetaKindInt, i: i} }

func (v MetaValue) Kind() MetaKind { return v.kind }

// Text returns the string payload; ok is false for non-string variants.
func (v MetaValue) Text() (string, bool) { return v.s, v.kind == MetaKindString }

// Bool returns the bool payload; ok is false for non-bool variants.
func (v MetaValue) Bool() (bool, bool) { return v.b, v.kind == MetaKindBool }

// Int returns the int payload; ok is false for non-int variants.
func (v MetaValue) Int() (int, bool) { return v.i, v.kind == MetaKindInt }

// String renders the payload for logs and exports.
func (v MetaValue) String() string {
	switch v.kind {
	case MetaKindBool:
		return strconv.FormatBool(v.b)
	case MetaKindInt:
		return strconv.Itoa(v.i)
	default:
		return v.s
	}
}

func (v MetaValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case MetaKindBool:
		return json.Marshal(v.b)
	case MetaKindInt:
		return json.Marshal(v.i)
	default:
		return json.Marshal(v.s)
	}
}

func (v *MetaValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = MetaBool(b)
		return nil
	}
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*v = MetaInt(i)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = MetaString(s)
		return nil
	}
	return fmt.Errorf("metadata value %s is not a string, bool or int", data)
}

// Metadata is the per-interaction fact mapping.
type Metadata map[string]MetaValue

// Clone returns an independent copy. A nil map clones to nil.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
