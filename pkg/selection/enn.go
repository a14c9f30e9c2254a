package selection

import (
	"github.com/ken/instance_selection/pkg/core/dataset"
	"github.com/ken/instance_selection/pkg/core/distance"
	"github.com/ken/instance_selection/pkg/search"
)

// ENNAlgorithm implements Wilson's Edited Nearest Neighbor for
// classification. The solution set starts as the full training set; each
// step looks up the current row's k nearest neighbors in the training set
// and deletes the row when the neighbor majority disagrees with its class.
type ENNAlgorithm struct {
	base
	k        int
	searcher *search.LinearSearch
}

// NewENN creates an ENN algorithm with the default of 1 nearest neighbor.
func NewENN() *ENNAlgorithm {
	return &ENNAlgorithm{k: 1}
}

// K returns the number of nearest neighbors in use.
func (a *ENNAlgorithm) K() int {
	return a.k
}

// SetK sets the number of nearest neighbors. Values below 1 are rejected.
func (a *ENNAlgorithm) SetK(k int) error {
	if k < 1 {
		return ErrInvalidK
	}
	a.k = k
	return nil
}

// Reset starts a new run over the given training set.
func (a *ENNAlgorithm) Reset(train *dataset.Dataset) error {
	return a.ResetWithIndex(train, nil)
}

// ResetWithIndex starts a new run with an explicit origin-index vector.
func (a *ENNAlgorithm) ResetWithIndex(train *dataset.Dataset, originIndex []int) error {
	if err := a.reset(train, originIndex); err != nil {
		return err
	}
	a.current = a.solutionSet.Instance(0)
	a.searcher = search.NewLinearSearch(a.trainSet, &distance.EuclideanDistance{})
	return nil
}

// Step decides the fate of the current solution row. On deletion the cursor
// stays put, since the next row shifts into the vacated position. The run
// finishes after exactly one decision per training row.
func (a *ENNAlgorithm) Step() (bool, error) {
	if a.searcher == nil {
		return false, ErrNotReset
	}

	a.iterations++

	neighbors, err := a.searcher.KNearestNeighbors(a.current, a.k)
	if err != nil {
		return false, err
	}

	if isMisclassified(a.trainSet, a.current, neighbors) {
		if err := a.deleteSolutionRow(a.cursor); err != nil {
			return false, err
		}
	} else {
		a.cursor++
	}

	if a.iterations == a.trainSet.Len() {
		return false, nil
	}

	a.current = a.solutionSet.Instance(a.cursor)

	return true, nil
}
