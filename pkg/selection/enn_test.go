package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestENNDefaults(t *testing.T) {
	alg := NewENN()
	assert.Equal(t, 1, alg.K())
}

func TestENNSetK(t *testing.T) {
	alg := NewENN()
	assert.ErrorIs(t, alg.SetK(0), ErrInvalidK)
	assert.ErrorIs(t, alg.SetK(-1), ErrInvalidK)
	require.NoError(t, alg.SetK(3))
	assert.Equal(t, 3, alg.K())
}

func TestENNSingleClassKeepsAll(t *testing.T) {
	train := classificationSet(t, [][]float64{
		{0.0, 0.0},
		{1.0, 0.0},
		{2.0, 0.0},
		{5.0, 0.0},
		{9.0, 0.0},
	})

	alg := NewENN()
	require.NoError(t, alg.Reset(train))
	require.NoError(t, AllSteps(alg))

	assert.Equal(t, train.Len(), alg.SolutionSet().Len())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, alg.OutputIndex())
}

func TestENNRemovesIsolatedRow(t *testing.T) {
	// The lone b row's nearest neighbor is an a row, and every a row's nearest
	// neighbor is another a row, so exactly the b row goes.
	train := classificationSet(t, [][]float64{
		{0.0, 0.0},
		{1.0, 0.0},
		{9.0, 1.0},
		{2.5, 0.0},
	})

	alg := NewENN()
	require.NoError(t, alg.Reset(train))
	require.NoError(t, AllSteps(alg))

	solution := alg.SolutionSet()
	require.Equal(t, 3, solution.Len())
	assert.Equal(t, []int{0, 1, 3}, alg.OutputIndex())
	assert.NotContains(t, alg.OutputIndex(), 2)

	for i := 0; i < solution.Len(); i++ {
		origin := alg.OutputIndex()[i]
		assert.Equal(t, train.Instance(origin).Value(0), solution.Instance(i).Value(0))
	}
}

func TestENNTrainingSetUntouched(t *testing.T) {
	train := classificationSet(t, [][]float64{
		{0.0, 0.0},
		{1.0, 0.0},
		{9.0, 1.0},
		{2.5, 0.0},
	})

	alg := NewENN()
	require.NoError(t, alg.Reset(train))
	require.NoError(t, AllSteps(alg))

	assert.Equal(t, 4, train.Len())
	assert.Equal(t, 4, alg.TrainSet().Len())
}

func TestENNResetWithIndexChains(t *testing.T) {
	train := classificationSet(t, [][]float64{
		{0.0, 0.0},
		{1.0, 0.0},
		{9.0, 1.0},
		{2.5, 0.0},
	})

	// Origin positions from an earlier selection stage pass through.
	alg := NewENN()
	require.NoError(t, alg.ResetWithIndex(train, []int{10, 11, 12, 13}))
	require.NoError(t, AllSteps(alg))

	assert.Equal(t, []int{10, 11, 13}, alg.OutputIndex())
}

func TestENNStepCount(t *testing.T) {
	train := classificationSet(t, [][]float64{
		{0.0, 0.0},
		{1.0, 0.0},
		{2.0, 1.0},
	})

	alg := NewENN()
	require.NoError(t, alg.Reset(train))

	steps := 0
	for {
		steps++
		more, err := alg.Step()
		require.NoError(t, err)
		if !more {
			break
		}
	}

	// One decision per training row.
	assert.Equal(t, train.Len(), steps)
}

func TestENNReRunAfterReset(t *testing.T) {
	train := classificationSet(t, [][]float64{
		{0.0, 0.0},
		{1.0, 0.0},
		{9.0, 1.0},
		{2.5, 0.0},
	})

	alg := NewENN()
	require.NoError(t, alg.Reset(train))
	require.NoError(t, AllSteps(alg))
	first := alg.OutputIndex()

	require.NoError(t, alg.Reset(train))
	require.NoError(t, AllSteps(alg))

	assert.Equal(t, first, alg.OutputIndex())
}
