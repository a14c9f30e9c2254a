package selection

// eulerMascheroni is ψ(1), the negated Euler–Mascheroni constant.
const eulerMascheroni = -0.5772156649015328606

// Digamma is a memoized generator for the digamma function ψ over positive
// integers, computed by the recurrence ψ(k) = ψ(k-1) + 1/(k-1). Values are
// cached on first use, so repeated calls with the same or a smaller argument
// cost nothing.
type Digamma struct {
	values []float64 // values[i] holds ψ(i+1)
}

// NewDigamma creates a generator with the first k values precomputed.
func NewDigamma(k int) *Digamma {
	d := &Digamma{values: make([]float64, 0, k)}
	d.extend(k)
	return d
}

// Value returns ψ(k) for k >= 1. ψ(0) is mathematically undefined and is
// returned as 0 here; this is a convenience for entropy-estimator callers
// counting empty neighborhoods, not an analytic value.
func (d *Digamma) Value(k int) float64 {
	if k == 0 {
		return 0
	}
	if len(d.values) < k {
		d.extend(k)
	}
	return d.values[k-1]
}

// extend grows the cache to hold ψ(1)..ψ(k).
func (d *Digamma) extend(k int) {
	for i := len(d.values); i < k; i++ {
		if i == 0 {
			d.values = append(d.values, eulerMascheroni)
		} else {
			d.values = append(d.values, d.values[i-1]+1.0/float64(i))
		}
	}
}
