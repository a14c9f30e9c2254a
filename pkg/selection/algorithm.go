// Package selection implements instance selection: reducing a labeled
// dataset to a subset that preserves predictive accuracy for case-based
// learners. Every algorithm is an incremental state machine driven one
// decision at a time through Step, and tracks, per surviving row, the row's
// position in the original dataset.
//
// Basic usage:
//
//	alg := selection.NewENN()
//	if err := alg.SetK(3); err != nil { ... }
//	if err := alg.Reset(train); err != nil { ... }
//	if err := selection.AllSteps(alg); err != nil { ... }
//	reduced := alg.SolutionSet()
//	origins := alg.OutputIndex()
//
// Algorithm values hold mutable per-run state and are meant for a single
// goroutine; concurrent Step calls on one value are not supported.
package selection

import (
	"github.com/ken/instance_selection/pkg/core/dataset"
	"github.com/ken/instance_selection/pkg/core/instance"
)

// AlgorithmType names a selection algorithm for configuration-driven choice.
type AlgorithmType string

const (
	// ENN is classification edited nearest neighbor
	ENN AlgorithmType = "enn"

	// ENNTh is the probabilistic neighbor-agreement filter
	ENNTh AlgorithmType = "ennth"

	// ENNReg is the regression analogue of ENN
	ENNReg AlgorithmType = "ennreg"

	// MI is mutual-information-based prototype selection
	MI AlgorithmType = "mi"
)

// Algorithm is the common surface of all selection algorithms. A value is
// created, reset with a training set, stepped to completion, and then read.
type Algorithm interface {
	// Reset starts a new run over the given training set, numbering rows
	// 0..n-1. It fails with ErrNotEnoughInstances when the set is empty.
	Reset(train *dataset.Dataset) error

	// ResetWithIndex starts a new run with an explicit origin-index vector,
	// one entry per training row, for chaining selections.
	ResetWithIndex(train *dataset.Dataset, originIndex []int) error

	// Step executes one unit of work and reports whether more steps remain.
	Step() (bool, error)

	// TrainSet returns the training set of the current run.
	TrainSet() *dataset.Dataset

	// SolutionSet returns the selected subset. Final once Step reports done.
	SolutionSet() *dataset.Dataset

	// OutputIndex returns, per solution row, that row's position in the
	// dataset the origin-index vector refers to. Always parallel to
	// SolutionSet.
	OutputIndex() []int
}

// New returns a fresh algorithm of the named type with its default
// parameters.
func New(t AlgorithmType) (Algorithm, error) {
	switch t {
	case ENN:
		return NewENN(), nil
	case ENNTh:
		return NewENNTh(), nil
	case ENNReg:
		return NewENNReg(), nil
	case MI:
		return NewMI(), nil
	default:
		return nil, ErrUnknownAlgorithm
	}
}

// AllSteps drives an algorithm from its current state to completion.
func AllSteps(a Algorithm) error {
	for {
		more, err := a.Step()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// base carries the per-run state shared by every algorithm: the immutable
// training set, the editable solution set, the cursor over rows, and the
// input/output origin-index vectors. The output index shrinks in lockstep
// with solution-set deletions so the two always stay parallel.
type base struct {
	trainSet    *dataset.Dataset
	solutionSet *dataset.Dataset
	current     *instance.Instance
	cursor      int
	inputIndex  []int
	outputIndex []int
	iterations  int
}

// reset validates the training set and rebuilds the shared run state. The
// solution set starts as a full copy of the training set; algorithms that
// start empty (ENNTh) truncate it afterwards.
func (b *base) reset(train *dataset.Dataset, originIndex []int) error {
	if train == nil || train.Len() == 0 {
		return ErrNotEnoughInstances
	}

	if originIndex == nil {
		originIndex = indexRange(train.Len())
	}

	b.trainSet = train
	b.solutionSet = train.Copy()
	b.inputIndex = make([]int, len(originIndex))
	copy(b.inputIndex, originIndex)
	b.outputIndex = make([]int, len(originIndex))
	copy(b.outputIndex, originIndex)
	b.cursor = 0
	b.current = train.Instance(0)
	b.iterations = 0

	return nil
}

// TrainSet returns the training set of the current run.
func (b *base) TrainSet() *dataset.Dataset {
	return b.trainSet
}

// SolutionSet returns the selected subset.
func (b *base) SolutionSet() *dataset.Dataset {
	return b.solutionSet
}

// OutputIndex returns the origin positions of the solution rows.
func (b *base) OutputIndex() []int {
	return b.outputIndex
}

// CurrentInstance returns the row the next Step will decide on.
func (b *base) CurrentInstance() *instance.Instance {
	return b.current
}

// deleteSolutionRow removes position pos from the solution set and from the
// output index under one operation, preserving their pairing.
func (b *base) deleteSolutionRow(pos int) error {
	if err := b.solutionSet.Delete(pos); err != nil {
		return err
	}
	b.outputIndex = append(b.outputIndex[:pos], b.outputIndex[pos+1:]...)
	return nil
}

// isMisclassified reports whether the instance disagrees with the neighbor
// majority: true when some class other than the instance's own is carried by
// strictly more neighbors than the instance's own class. An exact tie counts
// as correctly classified.
func isMisclassified(d *dataset.Dataset, in *instance.Instance, neighbors *dataset.Dataset) bool {
	own := d.ClassValueOf(in)

	counts := make(map[float64]int)
	for i := 0; i < neighbors.Len(); i++ {
		counts[neighbors.ClassValue(i)]++
	}

	for class, count := range counts {
		if class != own && count > counts[own] {
			return true
		}
	}

	return false
}

// indexRange returns the identity index vector 0..n-1.
func indexRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
