// Package assetid implements the identity primitives asset records key
// on: AssetId, AssetType, and the process-local TypeId used to check
// loader/consumer type agreement without runtime type information.
package assetid

import "hash/fnv"

// Hash64 is an FNV-1a 64-bit digest over s, as used by AssetId and
// AssetType for their content-independent hash component.
func Hash64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// AssetId is a stable, content-independent identifier: a 64-bit FNV-1a
// hash of the original id string, plus the original string retained for
// diagnostics and collision detection. A zero hash denotes invalid.
type AssetId struct {
	hash     uint64
	original string
}

func NewAssetId(original string) AssetId {
	return AssetId{hash: Hash64(original), original: original}
}

// InvalidAssetId returns the zero-hash sentinel invalid id.
func InvalidAssetId() AssetId { return AssetId{} }

func (a AssetId) Hash() uint64     { return a.hash }
func (a AssetId) Original() string { return a.original }
func (a AssetId) IsValid() bool    { return a.hash != 0 }

// Equal prefers comparing original strings when both sides carry one
// (catching a hash collision); otherwise it falls back to hash equality.
func (a AssetId) Equal(b AssetId) bool {
	if a.original != "" && b.original != "" {
		return a.original == b.original
	}
	return a.hash == b.hash
}

// Less orders by hash, for use in sorted containers.
func (a AssetId) Less(b AssetId) bool { return a.hash < b.hash }

func (a AssetId) String() string {
	if a.original != "" {
		return a.original
	}
	return ""
}

// AssetType has the same shape and rules as AssetId, keyed on a type
// name instead of an asset id.
type AssetType struct {
	hash     uint64
	original string
}

func NewAssetType(name string) AssetType {
	return AssetType{hash: Hash64(name), original: name}
}

func InvalidAssetType() AssetType { return AssetType{} }

func (t AssetType) Hash() uint64     { return t.hash }
func (t AssetType) Original() string { return t.original }
func (t AssetType) IsValid() bool    { return t.hash != 0 }

func (t AssetType) Equal(o AssetType) bool {
	if t.original != "" && o.original != "" {
		return t.original == o.original
	}
	return t.hash == o.hash
}

func (t AssetType) Less(o AssetType) bool { return t.hash < o.hash }

func (t AssetType) String() string {
	if t.original != "" {
		return t.original
	}
	return ""
}

// Recognized built-in asset types.
var (
	TypeTexture = NewAssetType("texture")
	TypeSound   = NewAssetType("sound")
	TypeFont    = NewAssetType("font")
	TypeText    = NewAssetType("text")
	TypeBinary  = NewAssetType("binary")
	TypeData    = NewAssetType("data")
	TypeInvalid = NewAssetType("invalid")
)

// TypeId is an opaque, process-unique token identifying a language-level
// type. It is never serialized and must never be compared across
// processes; a loader tags its AnyAsset output with one, and a consumer
// compares it before casting.
type TypeId struct {
	sentinel *int
}

// NewTypeId allocates a fresh token, distinct from every other token
// this process has allocated. Callers typically call this once per Go
// type, in a package-level var, and reuse the result.
func NewTypeId() TypeId {
	return TypeId{sentinel: new(int)}
}

func (t TypeId) IsValid() bool { return t.sentinel != nil }

func (t TypeId) Equal(o TypeId) bool { return t.sentinel == o.sentinel }
