package instance

import (
	"math"
)

// MissingValue is the in-memory representation of a missing attribute value.
// NaN never compares equal to itself, so all missing checks must go through
// IsMissing rather than ==.
var MissingValue = math.NaN()

// Instance represents a single labeled example: a fixed-length vector of
// attribute values (numeric values as-is, nominal values as label indices)
// plus a scalar weight. The attribute schema, including which position holds
// the class, lives on the owning dataset, not on the instance.
type Instance struct {
	Values []float64 // Attribute values, one per schema attribute
	Weight float64   // Instance weight
}

// New creates an instance with the given attribute values and weight 1.
func New(values []float64) *Instance {
	return &Instance{
		Values: values,
		Weight: 1.0,
	}
}

// NewWeighted creates an instance with the given attribute values and weight.
func NewWeighted(values []float64, weight float64) *Instance {
	return &Instance{
		Values: values,
		Weight: weight,
	}
}

// Copy creates a deep copy of the instance.
func (in *Instance) Copy() *Instance {
	values := make([]float64, len(in.Values))
	copy(values, in.Values)
	return &Instance{
		Values: values,
		Weight: in.Weight,
	}
}

// NumAttributes returns the number of attribute values stored on the instance.
func (in *Instance) NumAttributes() int {
	return len(in.Values)
}

// Value returns the attribute value at position i.
func (in *Instance) Value(i int) float64 {
	return in.Values[i]
}

// SetValue sets the attribute value at position i.
func (in *Instance) SetValue(i int, v float64) {
	in.Values[i] = v
}

// IsMissing reports whether the attribute value at position i is missing.
func (in *Instance) IsMissing(i int) bool {
	return math.IsNaN(in.Values[i])
}

// Equal reports semantic value-equality between two instances: same number of
// attributes, equal weight, and for every attribute except the class either
// both values missing or both values equal. Identity plays no role; two
// distinct rows with the same values are equal. Pass classIndex < 0 to compare
// every attribute.
func Equal(a, b *Instance, classIndex int) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Values) != len(b.Values) {
		return false
	}
	if a.Weight != b.Weight {
		return false
	}
	for i := range a.Values {
		if i == classIndex {
			continue
		}
		aMissing, bMissing := a.IsMissing(i), b.IsMissing(i)
		if aMissing != bMissing {
			return false
		}
		if !aMissing && a.Values[i] != b.Values[i] {
			return false
		}
	}
	return true
}
