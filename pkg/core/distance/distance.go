package distance

import (
	"errors"
	"math"

	"github.com/ken/instance_selection/pkg/core/dataset"
	"github.com/ken/instance_selection/pkg/core/instance"
)

var (
	// ErrDimensionMismatch is returned when two instances have a different number of attributes
	ErrDimensionMismatch = errors.New("instances have different numbers of attributes")

	// ErrUnknownMetric is returned by GetMetric for an unrecognized metric name
	ErrUnknownMetric = errors.New("unknown distance metric")
)

// MetricType represents the type of distance metric
type MetricType string

const (
	// Euclidean distance metric (L2 norm)
	Euclidean MetricType = "euclidean"

	// Manhattan distance metric (L1 norm)
	Manhattan MetricType = "manhattan"
)

// Metric computes pairwise distances between instances over their input
// attributes. The class attribute designated by the schema is excluded; a
// schema with ClassIndex set to dataset.NoClass includes every attribute.
// Values are used as stored, without normalization.
type Metric interface {
	// Distance calculates the distance between two instances
	Distance(s *dataset.Schema, a, b *instance.Instance) (float64, error)

	// DistanceUpTo calculates the distance between two instances, giving up
	// once the running total proves the distance exceeds cutoff. It returns
	// +Inf in that case and the exact distance otherwise, so results for
	// candidates at or under the cutoff are identical to Distance.
	DistanceUpTo(s *dataset.Schema, a, b *instance.Instance, cutoff float64) (float64, error)

	// Name returns the name of the metric
	Name() MetricType
}

// GetMetric returns a distance metric implementation by name
func GetMetric(metric MetricType) (Metric, error) {
	switch metric {
	case Euclidean:
		return &EuclideanDistance{}, nil
	case Manhattan:
		return &ManhattanDistance{}, nil
	default:
		return nil, ErrUnknownMetric
	}
}

// difference returns the per-attribute difference between two values.
// Nominal attributes differ by 0 or 1. A missing value on either side counts
// as the maximal difference of 1.
func difference(attr dataset.Attribute, a, b float64) float64 {
	aMissing, bMissing := math.IsNaN(a), math.IsNaN(b)
	if aMissing || bMissing {
		return 1.0
	}
	if !attr.IsNumeric() {
		if a != b {
			return 1.0
		}
		return 0.0
	}
	return a - b
}

// EuclideanDistance implements the Euclidean (L2) distance metric
type EuclideanDistance struct{}

func (d *EuclideanDistance) Distance(s *dataset.Schema, a, b *instance.Instance) (float64, error) {
	return d.DistanceUpTo(s, a, b, math.Inf(1))
}

func (d *EuclideanDistance) DistanceUpTo(s *dataset.Schema, a, b *instance.Instance, cutoff float64) (float64, error) {
	if a.NumAttributes() != b.NumAttributes() {
		return 0, ErrDimensionMismatch
	}

	// Compare against the squared cutoff so the early exit never changes the
	// result for candidates within range.
	cutoffSq := cutoff * cutoff
	if math.IsInf(cutoff, 1) {
		cutoffSq = math.Inf(1)
	}

	var sum float64
	for i := 0; i < a.NumAttributes(); i++ {
		if i == s.ClassIndex {
			continue
		}
		diff := difference(s.Attributes[i], a.Values[i], b.Values[i])
		sum += diff * diff
		if sum > cutoffSq {
			return math.Inf(1), nil
		}
	}

	return math.Sqrt(sum), nil
}

func (d *EuclideanDistance) Name() MetricType {
	return Euclidean
}

// ManhattanDistance implements the Manhattan (L1) distance metric
type ManhattanDistance struct{}

func (d *ManhattanDistance) Distance(s *dataset.Schema, a, b *instance.Instance) (float64, error) {
	return d.DistanceUpTo(s, a, b, math.Inf(1))
}

func (d *ManhattanDistance) DistanceUpTo(s *dataset.Schema, a, b *instance.Instance, cutoff float64) (float64, error) {
	if a.NumAttributes() != b.NumAttributes() {
		return 0, ErrDimensionMismatch
	}

	var sum float64
	for i := 0; i < a.NumAttributes(); i++ {
		if i == s.ClassIndex {
			continue
		}
		sum += math.Abs(difference(s.Attributes[i], a.Values[i], b.Values[i]))
		if sum > cutoff {
			return math.Inf(1), nil
		}
	}

	return sum, nil
}

func (d *ManhattanDistance) Name() MetricType {
	return Manhattan
}
