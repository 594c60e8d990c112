package unionfind

import (
	"errors"
	"fmt"
)

// ErrUnknownVariant is returned by ParseVariant for unrecognized names.
var ErrUnknownVariant = errors.New("unknown union-find variant")

// Variant selects a union-find algorithm at construction time.
type Variant string

const (
	// VariantQuickFind relabels a whole component on every union.
	VariantQuickFind Variant = "quick-find"

	// VariantQuickUnion links roots unconditionally.
	VariantQuickUnion Variant = "quick-union"

	// VariantWeighted links the smaller tree (by size) under the larger.
	VariantWeighted Variant = "weighted"

	// VariantWeightedHeight links the shorter tree (by height) under the taller.
	VariantWeightedHeight Variant = "weighted-height"

	// VariantHWQUPC is height-weighted with full path compression.
	VariantHWQUPC Variant = "hwqupc"

	// VariantWQUPC is size-weighted with path halving.
	VariantWQUPC Variant = "wqupc"
)

var variantDescriptions = map[Variant]string{
	VariantQuickFind:      "Quick find",
	VariantQuickUnion:     "Quick union",
	VariantWeighted:       "Weighted quick union",
	VariantWeightedHeight: "Weighted quick union by height without path compression",
	VariantHWQUPC:         "Weighted quick union with path compression",
	VariantWQUPC:          "Weighted quick union with path halving",
}

// Variants returns every supported variant, baselines first.
func Variants() []Variant {
	return []Variant{
		VariantQuickFind,
		VariantQuickUnion,
		VariantWeighted,
		VariantWeightedHeight,
		VariantHWQUPC,
		VariantWQUPC,
	}
}

// Valid returns true if the variant is a recognized value.
func (v Variant) Valid() bool {
	_, ok := variantDescriptions[v]
	return ok
}

// String returns the string representation of the variant.
func (v Variant) String() string {
	return string(v)
}

// Description returns a human-readable name for reports.
func (v Variant) Description() string {
	if d, ok := variantDescriptions[v]; ok {
		return d
	}
	return string(v)
}

// ParseVariant converts a name such as "hwqupc" into a Variant.
func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
	return v, nil
}

// New constructs an engine of the given variant with n singleton components.
func New(v Variant, n int) (Engine, error) {
	switch v {
	case VariantQuickFind:
		return engine(NewQuickFind(n))
	case VariantQuickUnion:
		return engine(NewQuickUnion(n))
	case VariantWeighted:
		return engine(NewWeighted(n))
	case VariantWeightedHeight:
		return engine(NewWeightedByHeight(n))
	case VariantHWQUPC:
		return engine(NewHWQUPC(n))
	case VariantWQUPC:
		return engine(NewWQUPC(n))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
	}
}

// engine avoids handing back a typed nil inside a non-nil Engine.
func engine[E Engine](e E, err error) (Engine, error) {
	if err != nil {
		return nil, err
	}
	return e, nil
}
