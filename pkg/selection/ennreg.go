package selection

import (
	"github.com/ken/instance_selection/pkg/core/dataset"
	"github.com/ken/instance_selection/pkg/core/distance"
	"github.com/ken/instance_selection/pkg/search"
)

const (
	// DefaultRegAlpha is the default dispersion coefficient of ENNRegAlgorithm
	DefaultRegAlpha = 0.05

	// MinRegAlpha is the lower bound of the ENNReg alpha range
	MinRegAlpha = 0.0

	// MaxRegAlpha is the upper bound of the ENNReg alpha range
	MaxRegAlpha = 100.0
)

// ENNRegAlgorithm is the regression analogue of ENN. Each step compares the
// current row's class value against a nearest-neighbor regression over the
// rest of the solution set; rows whose value deviates by more than the
// dispersion threshold theta are deleted.
type ENNRegAlgorithm struct {
	base
	k     int
	alpha float64
	ready bool
}

// NewENNReg creates an ENNReg algorithm with defaults k=1 and alpha=0.05.
func NewENNReg() *ENNRegAlgorithm {
	return &ENNRegAlgorithm{k: 1, alpha: DefaultRegAlpha}
}

// K returns the number of nearest neighbors in use.
func (a *ENNRegAlgorithm) K() int {
	return a.k
}

// SetK sets the number of nearest neighbors. Values below 1 are rejected.
func (a *ENNRegAlgorithm) SetK(k int) error {
	if k < 1 {
		return ErrInvalidK
	}
	a.k = k
	return nil
}

// Alpha returns the dispersion coefficient.
func (a *ENNRegAlgorithm) Alpha() float64 {
	return a.alpha
}

// SetAlpha sets the dispersion coefficient, bounded by MinRegAlpha and
// MaxRegAlpha inclusive.
func (a *ENNRegAlgorithm) SetAlpha(alpha float64) error {
	if alpha < MinRegAlpha || alpha > MaxRegAlpha {
		return ErrInvalidAlpha
	}
	a.alpha = alpha
	return nil
}

// Reset starts a new run over the given training set.
func (a *ENNRegAlgorithm) Reset(train *dataset.Dataset) error {
	return a.ResetWithIndex(train, nil)
}

// ResetWithIndex starts a new run with an explicit origin-index vector.
func (a *ENNRegAlgorithm) ResetWithIndex(train *dataset.Dataset, originIndex []int) error {
	if err := a.reset(train, originIndex); err != nil {
		return err
	}
	a.current = a.solutionSet.Instance(0)
	a.ready = true
	return nil
}

// Step builds the neighbor pool as the current solution set minus the
// current row, derives theta from the current row's k nearest neighbors in
// that pool, and predicts the row's class value from the whole pool. The row
// is deleted when |predicted - actual| exceeds theta; on deletion the cursor
// stays put. The run finishes after one decision per training row.
func (a *ENNRegAlgorithm) Step() (bool, error) {
	if !a.ready {
		return false, ErrNotReset
	}

	a.iterations++

	pool := a.solutionSet.CopyWithout(a.cursor)

	searcher := search.NewLinearSearch(pool, &distance.EuclideanDistance{})
	neighbors, err := searcher.KNearestNeighbors(a.current, a.k)
	if err != nil {
		return false, err
	}

	theta := Theta(neighbors, a.alpha)

	// The agreement test averages over the entire pool, not just the k rows
	// used for theta.
	misclassified, err := regMisclassified(pool, a.current, theta, pool.Len())
	if err != nil {
		return false, err
	}

	if misclassified {
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
