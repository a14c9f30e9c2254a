package selection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ken/instance_selection/pkg/core/instance"
)

func TestENNRegDefaults(t *testing.T) {
	alg := NewENNReg()
	assert.Equal(t, 1, alg.K())
	assert.Equal(t, DefaultRegAlpha, alg.Alpha())
}

func TestENNRegSetAlpha(t *testing.T) {
	alg := NewENNReg()

	assert.ErrorIs(t, alg.SetAlpha(-0.1), ErrInvalidAlpha)
	assert.ErrorIs(t, alg.SetAlpha(100.1), ErrInvalidAlpha)

	// The bounds themselves are admissible.
	require.NoError(t, alg.SetAlpha(MinRegAlpha))
	require.NoError(t, alg.SetAlpha(MaxRegAlpha))
	require.NoError(t, alg.SetAlpha(0.5))
	assert.Equal(t, 0.5, alg.Alpha())
}

func TestThetaSingleNeighborReturnsAlpha(t *testing.T) {
	neighbors := regressionSet(t, [][]float64{{0.0, 3.0}})
	assert.Equal(t, 0.25, Theta(neighbors, 0.25))

	empty := regressionSet(t, nil)
	assert.Equal(t, 0.25, Theta(empty, 0.25))
}

func TestThetaNonNumericClass(t *testing.T) {
	neighbors := classificationSet(t, [][]float64{{0.0, 0.0}, {1.0, 1.0}})
	assert.Equal(t, 0.0, Theta(neighbors, 0.25))
}

func TestThetaScalesSampleStdDev(t *testing.T) {
	// Class values 1 and 3 have sample standard deviation sqrt(2).
	neighbors := regressionSet(t, [][]float64{{0.0, 1.0}, {1.0, 3.0}})
	assert.InDelta(t, 0.5*math.Sqrt2, Theta(neighbors, 0.5), 1e-12)
}

func TestPredictKNN(t *testing.T) {
	pool := regressionSet(t, [][]float64{
		{0.0, 1.0},
		{1.0, 2.0},
		{2.0, 3.0},
	})
	target := instance.New([]float64{-1.0, 0.0})

	predicted, err := PredictKNN(pool, target, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, predicted, 1e-12)

	// With k at the pool size the prediction is the pool-wide mean.
	predicted, err = PredictKNN(pool, target, pool.Len())
	require.NoError(t, err)
	assert.InDelta(t, 2.0, predicted, 1e-12)
}

func TestPredictKNNEmptyPool(t *testing.T) {
	pool := regressionSet(t, nil)
	predicted, err := PredictKNN(pool, instance.New([]float64{0.0, 0.0}), 1)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(predicted))
}

func TestENNRegRemovesOutlier(t *testing.T) {
	// Three rows with class values near 1 and one far outlier. With a
	// generous alpha the tight rows tolerate the outlier's pull on the pool
	// mean, while the outlier itself deviates far beyond its theta.
	train := regressionSet(t, [][]float64{
		{0.0, 0.9},
		{1.0, 1.1},
		{2.0, 1.0},
		{10.0, 5.0},
	})

	alg := NewENNReg()
	require.NoError(t, alg.SetK(2))
	require.NoError(t, alg.SetAlpha(25.0))
	require.NoError(t, alg.Reset(train))
	require.NoError(t, AllSteps(alg))

	assert.Equal(t, 3, alg.SolutionSet().Len())
	assert.Equal(t, []int{0, 1, 2}, alg.OutputIndex())
}

func TestENNRegSingleRowSurvives(t *testing.T) {
	// With one row the neighbor pool is empty, the prediction is undefined
	// and the row is kept.
	train := regressionSet(t, [][]float64{{0.0, 1.0}})

	alg := NewENNReg()
	require.NoError(t, alg.Reset(train))
	require.NoError(t, AllSteps(alg))

	assert.Equal(t, 1, alg.SolutionSet().Len())
	assert.Equal(t, []int{0}, alg.OutputIndex())
}
