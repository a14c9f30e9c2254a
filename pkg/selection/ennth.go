package selection

import (
	"github.com/ken/instance_selection/pkg/core/dataset"
	"github.com/ken/instance_selection/pkg/core/distance"
	"github.com/ken/instance_selection/pkg/search"
)

// DefaultMu is the default posterior threshold of ENNThAlgorithm.
const DefaultMu = 0.7

// ENNThAlgorithm implements the threshold variant of ENN. Unlike ENN it
// builds the solution set up from empty: a training row is kept only when
// the class predicted from a distance-weighted neighbor posterior matches
// the row's own class with probability above mu.
type ENNThAlgorithm struct {
	base
	k        int
	mu       float64
	searcher *search.LinearSearch
}

// NewENNTh creates an ENNTh algorithm with defaults k=1 and mu=0.7.
func NewENNTh() *ENNThAlgorithm {
	return &ENNThAlgorithm{k: 1, mu: DefaultMu}
}

// K returns the number of nearest neighbors in use.
func (a *ENNThAlgorithm) K() int {
	return a.k
}

// SetK sets the number of nearest neighbors. Values below 1 are rejected.
func (a *ENNThAlgorithm) SetK(k int) error {
	if k < 1 {
		return ErrInvalidK
	}
	a.k = k
	return nil
}

// Mu returns the posterior threshold.
func (a *ENNThAlgorithm) Mu() float64 {
	return a.mu
}

// SetMu sets the posterior threshold. The boundary values 0 and 1 are
// rejected along with everything outside them: at 0 every agreeing row
// passes and at 1 none can.
func (a *ENNThAlgorithm) SetMu(mu float64) error {
	if mu <= 0.0 || mu >= 1.0 {
		return ErrInvalidMu
	}
	a.mu = mu
	return nil
}

// Reset starts a new run over the given training set.
func (a *ENNThAlgorithm) Reset(train *dataset.Dataset) error {
	return a.ResetWithIndex(train, nil)
}

// ResetWithIndex starts a new run with an explicit origin-index vector.
func (a *ENNThAlgorithm) ResetWithIndex(train *dataset.Dataset, originIndex []int) error {
	if err := a.reset(train, originIndex); err != nil {
		return err
	}

	// The solution set grows by append instead of shrinking by deletion.
	a.solutionSet = dataset.NewWithCapacity(train.Schema(), train.Len())
	a.outputIndex = a.outputIndex[:0]

	a.searcher = search.NewLinearSearch(a.trainSet, &distance.EuclideanDistance{})

	return nil
}

// Step computes a class posterior for the current training row from its k
// nearest neighbors, each neighbor contributing 1/(1+distance) to its own
// class, normalized to sum to one. The row joins the solution set when the
// arg-max class (first index wins ties) equals its own class and the max
// posterior strictly exceeds mu. The cursor always advances.
func (a *ENNThAlgorithm) Step() (bool, error) {
	if a.searcher == nil {
		return false, ErrNotReset
	}

	neighbors, err := a.searcher.KNearestNeighbors(a.current, a.k)
	if err != nil {
		return false, err
	}
	distances := a.searcher.Distances()

	prob := make([]float64, a.trainSet.Schema().NumClasses())
	for j := 0; j < neighbors.Len(); j++ {
		class := int(neighbors.ClassValue(j))
		prob[class] += 1.0 / (1.0 + distances[j])
	}

	var sum float64
	for _, p := range prob {
		sum += p
	}
	for j := range prob {
		prob[j] /= sum
	}

	predicted, maxProb := 0, prob[0]
	for j := 1; j < len(prob); j++ {
		if prob[j] > maxProb {
			predicted, maxProb = j, prob[j]
		}
	}

	if float64(predicted) == a.trainSet.ClassValueOf(a.current) && maxProb > a.mu {
		if err := a.solutionSet.Append(a.current.Copy()); err != nil {
			return false, err
		}
		a.outputIndex = append(a.outputIndex, a.inputIndex[a.cursor])
	}

	a.cursor++

	if a.cursor == a.trainSet.Len() {
		return false, nil
	}

	a.current = a.trainSet.Instance(a.cursor)

	return true, nil
}
