// Package anyasset implements the type-erased, shared payload handle a
// loader's decoded output is boxed into.
package anyasset

import "github.com/spaghettifunk/animavault/engine/asset/assetid"

// AnyAsset is a type-erased owning handle to a decoded resource, tagged
// with the loader's TypeId. Ownership is shared through the boxed
// payload pointer: copying an AnyAsset shares the same underlying value,
// and Go's garbage collector releases it once the last reference drops.
type AnyAsset struct {
	typ     assetid.TypeId
	payload interface{}
}

// New boxes value, tagged with typ.
func New(typ assetid.TypeId, value interface{}) AnyAsset {
	return AnyAsset{typ: typ, payload: value}
}

func (a AnyAsset) IsValid() bool { return a.typ.IsValid() }

func (a AnyAsset) TypeId() assetid.TypeId { return a.typ }

// Get attempts a typed read-back via want, yielding (zero, false) on a
// type-tag mismatch rather than panicking.
func Get[T any](a AnyAsset, want assetid.TypeId) (T, bool) {
	var zero T
	if !a.typ.Equal(want) {
		return zero, false
	}
	v, ok := a.payload.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
