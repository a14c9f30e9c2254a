package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mathext"
)

func TestDigammaValueOne(t *testing.T) {
	d := NewDigamma(1)
	assert.InDelta(t, -0.5772156649015328606, d.Value(1), 1e-15)
}

func TestDigammaZeroConvention(t *testing.T) {
	d := NewDigamma(4)
	assert.Equal(t, 0.0, d.Value(0))
}

func TestDigammaMatchesGonum(t *testing.T) {
	d := NewDigamma(1)
	for k := 1; k <= 50; k++ {
		assert.InDelta(t, mathext.Digamma(float64(k)), d.Value(k), 1e-10, "psi(%d)", k)
	}
}

func TestDigammaCacheGrowsOnDemand(t *testing.T) {
	small := NewDigamma(2)
	large := NewDigamma(20)

	// Values do not depend on the precomputed cache size.
	for k := 1; k <= 20; k++ {
		assert.Equal(t, large.Value(k), small.Value(k), "psi(%d)", k)
	}
}
