package dataset

import (
	"errors"
	"fmt"

	"github.com/ken/instance_selection/pkg/core/instance"
)

var (
	// ErrSchemaMismatch is returned when an instance does not match the dataset schema
	ErrSchemaMismatch = errors.New("instance does not match dataset schema")

	// ErrIndexOutOfRange is returned when a row position is outside the dataset
	ErrIndexOutOfRange = errors.New("row index out of range")
)

// NoClass marks a dataset without a designated class attribute. Distance
// functions treat every attribute as a regular input attribute in that case.
const NoClass = -1

// AttributeKind distinguishes numeric from nominal attributes.
type AttributeKind int

const (
	// Numeric attributes hold real values
	Numeric AttributeKind = iota

	// Nominal attributes hold an index into a fixed label set
	Nominal
)

// Attribute describes a single column of a dataset.
type Attribute struct {
	Name   string        // Column name
	Kind   AttributeKind // Numeric or nominal
	Labels []string      // Label set for nominal attributes, nil for numeric
}

// IsNumeric reports whether the attribute holds real values.
func (a Attribute) IsNumeric() bool {
	return a.Kind == Numeric
}

// NumLabels returns the size of the label set, 0 for numeric attributes.
func (a Attribute) NumLabels() int {
	return len(a.Labels)
}

// Schema is the fixed attribute layout shared by all rows of a dataset,
// including which attribute position holds the class.
type Schema struct {
	Attributes []Attribute // Ordered column descriptions
	ClassIndex int         // Position of the class attribute, or NoClass
}

// NumAttributes returns the number of columns in the schema.
func (s *Schema) NumAttributes() int {
	return len(s.Attributes)
}

// ClassAttribute returns the class column description.
func (s *Schema) ClassAttribute() Attribute {
	return s.Attributes[s.ClassIndex]
}

// HasClass reports whether the schema designates a class attribute.
func (s *Schema) HasClass() bool {
	return s.ClassIndex >= 0 && s.ClassIndex < len(s.Attributes)
}

// NumClasses returns the number of class labels, or 0 when the class is
// numeric or absent.
func (s *Schema) NumClasses() int {
	if !s.HasClass() {
		return 0
	}
	return s.Attributes[s.ClassIndex].NumLabels()
}

// Copy creates a deep copy of the schema.
func (s *Schema) Copy() *Schema {
	attrs := make([]Attribute, len(s.Attributes))
	for i, a := range s.Attributes {
		labels := make([]string, len(a.Labels))
		copy(labels, a.Labels)
		if a.Labels == nil {
			labels = nil
		}
		attrs[i] = Attribute{Name: a.Name, Kind: a.Kind, Labels: labels}
	}
	return &Schema{Attributes: attrs, ClassIndex: s.ClassIndex}
}

// Dataset is an ordered sequence of instances sharing one schema. Order is
// significant only for index bookkeeping: selection algorithms pair every row
// deletion with a deletion in a parallel origin-index vector.
type Dataset struct {
	schema    *Schema
	instances []*instance.Instance
}

// New creates an empty dataset with the given schema.
func New(schema *Schema) *Dataset {
	return &Dataset{
		schema:    schema,
		instances: make([]*instance.Instance, 0),
	}
}

// NewWithCapacity creates an empty dataset with room for n rows.
func NewWithCapacity(schema *Schema, n int) *Dataset {
	return &Dataset{
		schema:    schema,
		instances: make([]*instance.Instance, 0, n),
	}
}

// Schema returns the dataset schema.
func (d *Dataset) Schema() *Schema {
	return d.schema
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.instances)
}

// NumAttributes returns the number of columns.
func (d *Dataset) NumAttributes() int {
	return d.schema.NumAttributes()
}

// ClassIndex returns the position of the class attribute, or NoClass.
func (d *Dataset) ClassIndex() int {
	return d.schema.ClassIndex
}

// Instance returns the row at position i. The returned pointer aliases the
// stored row; callers that mutate it affect the dataset.
func (d *Dataset) Instance(i int) *instance.Instance {
	return d.instances[i]
}

// ClassValue returns the class attribute value of the row at position i.
func (d *Dataset) ClassValue(i int) float64 {
	return d.instances[i].Value(d.schema.ClassIndex)
}

// ClassValueOf returns the class attribute value of the given instance under
// this dataset's schema.
func (d *Dataset) ClassValueOf(in *instance.Instance) float64 {
	return in.Value(d.schema.ClassIndex)
}

// Append adds a row to the end of the dataset.
func (d *Dataset) Append(in *instance.Instance) error {
	if in.NumAttributes() != d.schema.NumAttributes() {
		return fmt.Errorf("%w: got %d values, schema has %d attributes",
			ErrSchemaMismatch, in.NumAttributes(), d.schema.NumAttributes())
	}
	d.instances = append(d.instances, in)
	return nil
}

// Delete removes the row at position i, shifting later rows down by one.
func (d *Dataset) Delete(i int) error {
	if i < 0 || i >= len(d.instances) {
		return fmt.Errorf("%w: %d (dataset has %d rows)", ErrIndexOutOfRange, i, len(d.instances))
	}
	d.instances = append(d.instances[:i], d.instances[i+1:]...)
	return nil
}

// IndexOf returns the position of the first row value-equal to the given
// instance under the dataset schema, or -1 if no row matches.
func (d *Dataset) IndexOf(in *instance.Instance) int {
	for i, row := range d.instances {
		if instance.Equal(row, in, d.schema.ClassIndex) {
			return i
		}
	}
	return -1
}

// Copy creates a deep copy of the dataset: rows are copied, the schema is
// shared. Use this to build a solution set that can be edited without
// touching the training set.
func (d *Dataset) Copy() *Dataset {
	out := NewWithCapacity(d.schema, len(d.instances))
	for _, in := range d.instances {
		out.instances = append(out.instances, in.Copy())
	}
	return out
}

// CopyWithout creates a deep copy of the dataset with the row at position
// skip left out.
func (d *Dataset) CopyWithout(skip int) *Dataset {
	out := NewWithCapacity(d.schema, len(d.instances))
	for i, in := range d.instances {
		if i == skip {
			continue
		}
		out.instances = append(out.instances, in.Copy())
	}
	return out
}

// WithoutClass returns a view of the dataset whose schema designates no class
// attribute, so distance functions include every column. Rows are shared with
// the receiver.
func (d *Dataset) WithoutClass() *Dataset {
	schema := d.schema.Copy()
	schema.ClassIndex = NoClass
	return &Dataset{schema: schema, instances: d.instances}
}

// ClassValues returns the class column as a slice, one value per row.
func (d *Dataset) ClassValues() []float64 {
	values := make([]float64, len(d.instances))
	for i, in := range d.instances {
		values[i] = in.Value(d.schema.ClassIndex)
	}
	return values
}

// AttributeColumns decomposes the dataset into one single-attribute dataset
// per column, the class column included as an ordinary attribute. Row order
// is preserved, so position i in every returned dataset corresponds to row i
// of the receiver.
func (d *Dataset) AttributeColumns() []*Dataset {
	columns := make([]*Dataset, d.schema.NumAttributes())
	for j := range columns {
		attr := d.schema.Attributes[j]
		schema := &Schema{
			Attributes: []Attribute{attr},
			ClassIndex: NoClass,
		}
		col := NewWithCapacity(schema, len(d.instances))
		for _, in := range d.instances {
			col.instances = append(col.instances, instance.New([]float64{in.Value(j)}))
		}
		columns[j] = col
	}
	return columns
}
