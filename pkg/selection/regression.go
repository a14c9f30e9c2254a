package selection

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ken/instance_selection/pkg/core/dataset"
	"github.com/ken/instance_selection/pkg/core/distance"
	"github.com/ken/instance_selection/pkg/core/instance"
	"github.com/ken/instance_selection/pkg/search"
)

// Theta returns the regression editing threshold θ = alpha · std(Y(neighbors)),
// where std is the sample standard deviation (n-1 denominator) of the
// neighbors' class values. With one neighbor or none there is no spread to
// estimate and alpha itself is returned; with a non-numeric class the
// regression threshold is undefined and 0 is returned.
func Theta(neighbors *dataset.Dataset, alpha float64) float64 {
	if neighbors.Len() <= 1 {
		return alpha
	}

	if !neighbors.Schema().ClassAttribute().IsNumeric() {
		return 0.0
	}

	return alpha * stat.StdDev(neighbors.ClassValues(), nil)
}

// PredictKNN predicts the class value of target as the unweighted mean of
// the class values of its k nearest neighbors within pool. With k at or
// above the pool size this degenerates to the pool-wide mean.
func PredictKNN(pool *dataset.Dataset, target *instance.Instance, k int) (float64, error) {
	if pool.Len() == 0 {
		return math.NaN(), nil
	}

	searcher := search.NewLinearSearch(pool, &distance.EuclideanDistance{})

	neighbors, err := searcher.KNearestNeighbors(target, k)
	if err != nil {
		return 0, err
	}

	return stat.Mean(neighbors.ClassValues(), nil), nil
}

// regMisclassified reports whether target's class value disagrees with a
// k-nearest-neighbor regression over pool by more than theta.
func regMisclassified(pool *dataset.Dataset, target *instance.Instance, theta float64, k int) (bool, error) {
	predicted, err := PredictKNN(pool, target, k)
	if err != nil {
		return false, err
	}

	return math.Abs(predicted-pool.ClassValueOf(target)) > theta, nil
}
