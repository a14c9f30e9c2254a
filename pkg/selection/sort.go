package selection

import (
	"math"
	"sort"

	"github.com/ken/instance_selection/pkg/core/dataset"
	"github.com/ken/instance_selection/pkg/core/distance"
	"github.com/ken/instance_selection/pkg/core/instance"
)

// DistanceSorter orders a dataset by each row's distance to its nearest
// enemy, keeping an origin-index vector permuted in lockstep so every sorted
// row still maps back to its position in the unsorted input. Sibling
// selection algorithms use this as a preprocessing pass.
type DistanceSorter struct {
	toSort         *dataset.Dataset
	sorted         *dataset.Dataset
	enemyDistances []float64
	metric         distance.Metric
	inputIndex     []int
	outputIndex    []int
}

// NewDistanceSorter creates a sorter over the given dataset using Euclidean
// distance and the identity origin index.
func NewDistanceSorter(data *dataset.Dataset) *DistanceSorter {
	return NewDistanceSorterWithMetric(data, &distance.EuclideanDistance{}, nil)
}

// NewDistanceSorterWithMetric creates a sorter with an explicit metric and,
// optionally, an origin-index vector carried over from an earlier stage.
func NewDistanceSorterWithMetric(data *dataset.Dataset, metric distance.Metric, originIndex []int) *DistanceSorter {
	if originIndex == nil {
		originIndex = indexRange(data.Len())
	}
	input := make([]int, len(originIndex))
	copy(input, originIndex)

	return &DistanceSorter{
		toSort:         data,
		enemyDistances: make([]float64, data.Len()),
		metric:         metric,
		inputIndex:     input,
	}
}

// SortedSet returns the sorted dataset, nil before a sort has run.
func (s *DistanceSorter) SortedSet() *dataset.Dataset {
	return s.sorted
}

// OutputIndex returns the origin-index vector parallel to SortedSet.
func (s *DistanceSorter) OutputIndex() []int {
	return s.outputIndex
}

// EnemyDistances returns each row's nearest-enemy distance in pre-sort row
// order.
func (s *DistanceSorter) EnemyDistances() []float64 {
	return s.enemyDistances
}

// SortByNearestEnemy computes every row's distance to its nearest enemy (the
// closest row of a different class) and sorts by it, ascending or
// descending.
func (s *DistanceSorter) SortByNearestEnemy(ascending bool) error {
	for i := 0; i < s.toSort.Len(); i++ {
		d, err := NearestEnemyDistance(s.toSort, s.toSort.Instance(i), s.metric)
		if err != nil {
			return err
		}
		s.enemyDistances[i] = d
	}

	s.applyOrder(ascending)

	return nil
}

// SortByNearestEnemyReg is the regression variant: a row's enemies are rows
// whose class value differs by more than a theta radius derived from the
// row's own neighbor list. The neighbors argument holds one list per
// pre-sort row, each of length k+1 with the last entry ignored.
func (s *DistanceSorter) SortByNearestEnemyReg(neighbors [][]*instance.Instance, alpha float64, ascending bool) error {
	for i := 0; i < s.toSort.Len(); i++ {
		d, err := NearestEnemyDistanceReg(s.toSort, s.toSort.Instance(i), neighbors[i], s.metric, alpha)
		if err != nil {
			return err
		}
		s.enemyDistances[i] = d
	}

	s.applyOrder(ascending)

	return nil
}

// applyOrder builds the sorted dataset and the parallel output index from
// the computed enemy distances. The sort is stable, so rows at equal
// distance keep their input order and the row/index pairing is deterministic
// for a given input.
func (s *DistanceSorter) applyOrder(ascending bool) {
	perm := indexRange(s.toSort.Len())

	sort.SliceStable(perm, func(i, j int) bool {
		if ascending {
			return s.enemyDistances[perm[i]] < s.enemyDistances[perm[j]]
		}
		return s.enemyDistances[perm[i]] > s.enemyDistances[perm[j]]
	})

	s.sorted = dataset.NewWithCapacity(s.toSort.Schema(), s.toSort.Len())
	s.outputIndex = make([]int, 0, s.toSort.Len())

	for _, p := range perm {
		// Appending cannot fail: rows already conform to the schema.
		_ = s.sorted.Append(s.toSort.Instance(p))
		s.outputIndex = append(s.outputIndex, s.inputIndex[p])
	}
}

// NearestEnemyDistance returns the minimum distance from target to any pool
// row of a different class, or +Inf when no enemy exists.
func NearestEnemyDistance(pool *dataset.Dataset, target *instance.Instance, metric distance.Metric) (float64, error) {
	nearest := math.Inf(1)
	targetClass := pool.ClassValueOf(target)

	for j := 0; j < pool.Len(); j++ {
		row := pool.Instance(j)
		if pool.ClassValueOf(row) == targetClass {
			continue
		}

		d, err := metric.Distance(pool.Schema(), target, row)
		if err != nil {
			return 0, err
		}
		if d < nearest {
			nearest = d
		}
	}

	return nearest, nil
}

// NearestEnemyDistanceReg returns the minimum distance from target to any
// pool row whose class value differs by more than theta, where theta is
// computed from target's neighbor list (length k+1, last entry ignored) as
// alpha times the neighbors' class-value dispersion.
func NearestEnemyDistanceReg(pool *dataset.Dataset, target *instance.Instance, neighbors []*instance.Instance, metric distance.Metric, alpha float64) (float64, error) {
	trimmed := dataset.NewWithCapacity(pool.Schema(), len(neighbors))
	for i := 0; i+1 < len(neighbors); i++ {
		if err := trimmed.Append(neighbors[i]); err != nil {
			return 0, err
		}
	}

	theta := Theta(trimmed, alpha)

	nearest := math.Inf(1)
	targetClass := pool.ClassValueOf(target)

	for j := 0; j < pool.Len(); j++ {
		row := pool.Instance(j)
		if math.Abs(targetClass-pool.ClassValueOf(row)) <= theta {
			continue
		}

		d, err := metric.Distance(pool.Schema(), target, row)
		if err != nil {
			return 0, err
		}
		if d < nearest {
			nearest = d
		}
	}

	return nearest, nil
}
