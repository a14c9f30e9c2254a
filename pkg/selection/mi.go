package selection

import (
	"gonum.org/v1/gonum/floats"

	"github.com/ken/instance_selection/pkg/core/dataset"
	"github.com/ken/instance_selection/pkg/core/distance"
	"github.com/ken/instance_selection/pkg/search"
)

const (
	// DefaultMIK is the default neighborhood size of MIAlgorithm
	DefaultMIK = 6

	// DefaultMIAlpha is the default sensitivity threshold of MIAlgorithm
	DefaultMIAlpha = 0.05
)

// MIDiffPolicy selects the comparison direction of the per-neighbor
// informativeness difference in the editing phase. The published pseudocode
// and practical experience with it disagree, so the direction is an explicit
// policy rather than a hard-coded choice.
type MIDiffPolicy int

const (
	// DiffNeighborMinusSelf compares MI(neighbor) - MI(row) against alpha and
	// deletes rows whose neighbors are more informative. This is the default.
	DiffNeighborMinusSelf MIDiffPolicy = iota

	// DiffSelfMinusNeighbor compares MI(row) - MI(neighbor) against alpha, as
	// in the published pseudocode.
	DiffSelfMinusNeighbor
)

// miPhase enumerates the internal states of the MI state machine.
type miPhase int

const (
	phaseNeighbors miPhase = iota // One-shot neighbor cache computation
	phaseMI                       // One-shot mutual information estimation
	phaseEdit                     // One row decision per step
	phaseDone
)

// MIAlgorithm implements mutual-information-based prototype selection. The
// run has three phases behind the uniform Step interface: first the k
// nearest neighbors of every row are cached in attribute space under
// Manhattan distance, then a per-row mutual information value is estimated
// with a Kozachenko-Leonenko style entropy estimator and min-max normalized,
// and finally rows whose cached neighbors are all markedly more informative
// are deleted one decision per step.
type MIAlgorithm struct {
	base
	k        int
	alpha    float64
	policy   MIDiffPolicy
	phase    miPhase
	searcher *search.LinearSearch
	nn       [][]int   // Cached neighbor positions, row-parallel to the training set
	mi       []float64 // Normalized informativeness, row-parallel to the training set
	digamma  *Digamma
}

// NewMI creates an MI algorithm with defaults k=6 and alpha=0.05.
func NewMI() *MIAlgorithm {
	return &MIAlgorithm{k: DefaultMIK, alpha: DefaultMIAlpha}
}

// K returns the neighborhood size in use.
func (a *MIAlgorithm) K() int {
	return a.k
}

// SetK sets the neighborhood size. Values below 1 are rejected.
func (a *MIAlgorithm) SetK(k int) error {
	if k < 1 {
		return ErrInvalidK
	}
	a.k = k
	return nil
}

// Alpha returns the sensitivity threshold.
func (a *MIAlgorithm) Alpha() float64 {
	return a.alpha
}

// SetAlpha sets the sensitivity threshold, bounded to [0, 1] inclusive.
func (a *MIAlgorithm) SetAlpha(alpha float64) error {
	if alpha < 0 || alpha > 1 {
		return ErrInvalidAlpha
	}
	a.alpha = alpha
	return nil
}

// DiffPolicy returns the informativeness comparison direction.
func (a *MIAlgorithm) DiffPolicy() MIDiffPolicy {
	return a.policy
}

// SetDiffPolicy sets the informativeness comparison direction.
func (a *MIAlgorithm) SetDiffPolicy(p MIDiffPolicy) {
	a.policy = p
}

// Reset starts a new run over the given training set.
func (a *MIAlgorithm) Reset(train *dataset.Dataset) error {
	return a.ResetWithIndex(train, nil)
}

// ResetWithIndex starts a new run with an explicit origin-index vector.
func (a *MIAlgorithm) ResetWithIndex(train *dataset.Dataset, originIndex []int) error {
	if err := a.reset(train, originIndex); err != nil {
		return err
	}

	a.phase = phaseNeighbors
	a.searcher = search.NewLinearSearch(a.solutionSet, &distance.ManhattanDistance{})
	a.nn = nil
	a.mi = make([]float64, train.Len())
	a.digamma = NewDigamma(train.Len())

	return nil
}

// Step advances the run by one phase unit: the first call caches every row's
// neighbors, the second estimates and normalizes mutual information, and
// each later call decides one row.
func (a *MIAlgorithm) Step() (bool, error) {
	switch a.phase {
	case phaseNeighbors:
		if a.searcher == nil {
			return false, ErrNotReset
		}
		if err := a.computeNeighbors(); err != nil {
			return false, err
		}
		a.phase = phaseMI
		return true, nil

	case phaseMI:
		if err := a.computeMI(); err != nil {
			return false, err
		}
		a.phase = phaseEdit
		return true, nil

	case phaseEdit:
		return a.editStep()

	default:
		return false, nil
	}
}

// computeNeighbors caches, for every solution row, the positions of its k
// nearest neighbors in attribute space (class excluded) under Manhattan
// distance. Positions refer to the pristine solution set, which at this
// point is row-parallel to the training set.
func (a *MIAlgorithm) computeNeighbors() error {
	n := a.solutionSet.Len()
	a.nn = make([][]int, n)

	for i := 0; i < n; i++ {
		if _, err := a.searcher.KNearestNeighbors(a.solutionSet.Instance(i), a.k); err != nil {
			return err
		}

		positions := a.searcher.Indices()
		limit := a.k
		if len(positions) < limit {
			limit = len(positions)
		}

		a.nn[i] = make([]int, limit)
		copy(a.nn[i], positions[:limit])
	}

	return nil
}

// computeMI estimates a mutual information value per row in the joint space
// of all attributes plus the class, then min-max normalizes the vector.
//
// Per row: the epsilon ball radius is the largest single-attribute distance
// to any of its k joint-space neighbors; in each attribute's 1-D space the
// rows strictly inside that radius are counted; the digamma values of those
// counts, summed over attributes and averaged over rows, are subtracted from
// a constant estimator term.
func (a *MIAlgorithm) computeMI() error {
	numAttr := a.solutionSet.NumAttributes()
	numInst := a.solutionSet.Len()

	// Joint space Z = {X, Y}: the class participates as a regular attribute.
	joint := a.solutionSet.WithoutClass()
	jointSearch := search.NewLinearSearch(joint, &distance.ManhattanDistance{})

	// Constant estimator term, identical for every row.
	inic := a.digamma.Value(a.k) - float64(numAttr-1)/float64(a.k) +
		float64(numAttr-1)*a.digamma.Value(numInst)

	columns := a.solutionSet.AttributeColumns()
	colMetric := &distance.ManhattanDistance{}

	for i := 0; i < numInst; i++ {
		var maxEps float64

		_, err := jointSearch.KNearestNeighbors(joint.Instance(i), a.k)
		if err != nil {
			return err
		}

		// Epsilon is the largest per-attribute distance to any joint-space
		// neighbor.
		for _, pos := range jointSearch.Indices() {
			for j := 0; j < numAttr; j++ {
				d, err := colMetric.Distance(columns[j].Schema(),
					columns[j].Instance(i), columns[j].Instance(pos))
				if err != nil {
					return err
				}
				if d > maxEps {
					maxEps = d
				}
			}
		}

		var sum float64
		for j := 0; j < numAttr; j++ {
			count := 0
			for r := 0; r < numInst; r++ {
				if r == i {
					continue
				}
				d, err := colMetric.Distance(columns[j].Schema(),
					columns[j].Instance(i), columns[j].Instance(r))
				if err != nil {
					return err
				}
				if d < maxEps {
					count++
				}
			}
			sum += a.digamma.Value(count)
		}

		a.mi[i] = inic - sum/float64(numInst)
	}

	normalizeMI(a.mi)

	// The neighbor search over the solution set is no longer needed; the
	// editing phase works from the caches alone.
	a.searcher = nil

	return nil
}

// editStep decides the fate of the current training row: it is deleted when
// at least k of its cached neighbors are more informative than the row by
// more than alpha under the configured policy. The solution position is
// looked up by value, since earlier deletions may have shifted rows.
func (a *MIAlgorithm) editStep() (bool, error) {
	a.iterations++

	cDiff := 0
	for _, pos := range a.nn[a.cursor] {
		var diff float64
		switch a.policy {
		case DiffSelfMinusNeighbor:
			diff = a.mi[a.cursor] - a.mi[pos]
		default:
			diff = a.mi[pos] - a.mi[a.cursor]
		}
		if diff > a.alpha {
			cDiff++
		}
	}

	if cDiff >= a.k {
		if pos := a.solutionSet.IndexOf(a.current); pos >= 0 {
			if err := a.deleteSolutionRow(pos); err != nil {
				return false, err
			}
		}
	}

	if a.iterations == a.trainSet.Len() {
		a.phase = phaseDone
		return false, nil
	}

	a.cursor++
	a.current = a.trainSet.Instance(a.cursor)

	return true, nil
}

// normalizeMI rescales the vector to [0, 1] by min-max normalization, the
// minimum mapping to exactly 0 and the maximum to exactly 1. A constant
// vector has no spread and maps to all zeros.
func normalizeMI(mi []float64) {
	if len(mi) == 0 {
		return
	}

	min, max := floats.Min(mi), floats.Max(mi)

	if min == max {
		for i := range mi {
			mi[i] = 0
		}
		return
	}

	for i := range mi {
		mi[i] = (mi[i] - min) / (max - min)
	}
}
