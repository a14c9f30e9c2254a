// Package search implements exact bounded k-nearest-neighbor search over a
// dataset by linear scan. The search never returns a row value-equal to the
// query target, maintains a fixed-capacity max-heap of the k best candidates,
// and keeps every candidate exactly tied with the kth distance, so a query
// may return more than k neighbors.
package search

import (
	"errors"

	"github.com/ken/instance_selection/pkg/core/dataset"
	"github.com/ken/instance_selection/pkg/core/distance"
	"github.com/ken/instance_selection/pkg/core/instance"
)

var (
	// ErrInvalidK is returned when k is less than 1
	ErrInvalidK = errors.New("k must be greater than 0")
)

// LinearSearch performs exact nearest-neighbor queries by scanning every row
// of the dataset. Not safe for concurrent use: each query overwrites the
// stored distances of the previous one.
type LinearSearch struct {
	data      *dataset.Dataset
	metric    distance.Metric
	distances []float64 // Distances of the last query's neighbors
	indices   []int     // Row positions of the last query's neighbors
}

// NewLinearSearch creates a linear search over the given dataset. The metric
// excludes the dataset's class attribute through the schema.
func NewLinearSearch(data *dataset.Dataset, metric distance.Metric) *LinearSearch {
	return &LinearSearch{
		data:   data,
		metric: metric,
	}
}

// Dataset returns the dataset being searched.
func (s *LinearSearch) Dataset() *dataset.Dataset {
	return s.data
}

// Metric returns the distance metric in use.
func (s *LinearSearch) Metric() distance.Metric {
	return s.metric
}

// SetDataset replaces the dataset being searched.
func (s *LinearSearch) SetDataset(data *dataset.Dataset) {
	s.data = data
	s.distances = nil
	s.indices = nil
}

// Distances returns the distances parallel to the neighbors of the most
// recent query, ascending.
func (s *LinearSearch) Distances() []float64 {
	return s.distances
}

// Indices returns the row positions parallel to the neighbors of the most
// recent query.
func (s *LinearSearch) Indices() []int {
	return s.indices
}

// KNearestNeighbors returns the k nearest rows to target, sorted ascending by
// distance. Rows value-equal to target are skipped, so a duplicate-valued row
// elsewhere in the dataset is excluded just like the target itself. If the
// admissible pool holds fewer than k rows, all of them are returned. When
// several rows are exactly tied with the kth distance, all of them are
// returned after the strict top k-1; their order among each other follows
// the scan and is not otherwise specified.
func (s *LinearSearch) KNearestNeighbors(target *instance.Instance, k int) (*dataset.Dataset, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}

	schema := s.data.Schema()
	h := newNeighborHeap(k)

	for i := 0; i < s.data.Len(); i++ {
		row := s.data.Instance(i)

		// Self-exclusion is by value, not by position.
		if instance.Equal(target, row, schema.ClassIndex) {
			continue
		}

		if h.size() < k {
			d, err := s.metric.Distance(schema, target, row)
			if err != nil {
				return nil, err
			}
			h.put(i, d)
			continue
		}

		// Bound the distance computation by the current kth distance. A
		// candidate beyond it comes back as +Inf and falls through both
		// tests.
		d, err := s.metric.DistanceUpTo(schema, target, row, h.max())
		if err != nil {
			return nil, err
		}
		if d < h.max() {
			h.replaceMax(i, d)
		} else if d == h.max() {
			h.putTie(i, d)
		}
	}

	entries := h.drain()
	neighbors := dataset.NewWithCapacity(schema, len(entries))
	s.distances = make([]float64, len(entries))
	s.indices = make([]int, len(entries))

	for i, e := range entries {
		if err := neighbors.Append(s.data.Instance(e.index)); err != nil {
			return nil, err
		}
		s.distances[i] = e.distance
		s.indices[i] = e.index
	}

	return neighbors, nil
}

// NearestNeighbor returns the single nearest row to target. If the admissible
// pool is empty, target itself is returned rather than an error.
func (s *LinearSearch) NearestNeighbor(target *instance.Instance) (*instance.Instance, error) {
	neighbors, err := s.KNearestNeighbors(target, 1)
	if err != nil {
		return nil, err
	}
	if neighbors.Len() == 0 {
		return target, nil
	}
	return neighbors.Instance(0), nil
}
