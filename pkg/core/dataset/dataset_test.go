package dataset

import (
	"errors"
	"testing"

	"github.com/ken/instance_selection/pkg/core/instance"
)

func twoClassSchema() *Schema {
	return &Schema{
		Attributes: []Attribute{
			{Name: "x", Kind: Numeric},
			{Name: "class", Kind: Nominal, Labels: []string{"a", "b"}},
		},
		ClassIndex: 1,
	}
}

func TestAppendAndLen(t *testing.T) {
	d := New(twoClassSchema())

	if d.Len() != 0 {
		t.Errorf("Expected empty dataset, got %d rows", d.Len())
	}

	if err := d.Append(instance.New([]float64{1.0, 0.0})); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if d.Len() != 1 {
		t.Errorf("Expected 1 row, got %d", d.Len())
	}
}

func TestAppendSchemaMismatch(t *testing.T) {
	d := New(twoClassSchema())

	err := d.Append(instance.New([]float64{1.0}))
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("Expected ErrSchemaMismatch, got %v", err)
	}
}

func TestDeleteShiftsRows(t *testing.T) {
	d := New(twoClassSchema())
	for _, x := range []float64{1.0, 2.0, 3.0} {
		d.Append(instance.New([]float64{x, 0.0}))
	}

	if err := d.Delete(1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if d.Len() != 2 {
		t.Fatalf("Expected 2 rows after delete, got %d", d.Len())
	}

	if d.Instance(1).Value(0) != 3.0 {
		t.Errorf("Expected row 2 to shift into position 1, got value %f", d.Instance(1).Value(0))
	}
}

func TestDeleteOutOfRange(t *testing.T) {
	d := New(twoClassSchema())

	if err := d.Delete(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestCopyIsDeep(t *testing.T) {
	d := New(twoClassSchema())
	d.Append(instance.New([]float64{1.0, 0.0}))

	cp := d.Copy()
	cp.Instance(0).SetValue(0, 9.0)

	if d.Instance(0).Value(0) != 1.0 {
		t.Errorf("Mutating the copy changed the original: got %f", d.Instance(0).Value(0))
	}
}

func TestCopyWithout(t *testing.T) {
	d := New(twoClassSchema())
	for _, x := range []float64{1.0, 2.0, 3.0} {
		d.Append(instance.New([]float64{x, 0.0}))
	}

	cp := d.CopyWithout(1)
	if cp.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", cp.Len())
	}

	if cp.Instance(0).Value(0) != 1.0 || cp.Instance(1).Value(0) != 3.0 {
		t.Errorf("Expected rows 0 and 2, got %f and %f",
			cp.Instance(0).Value(0), cp.Instance(1).Value(0))
	}
}

func TestIndexOf(t *testing.T) {
	d := New(twoClassSchema())
	d.Append(instance.New([]float64{1.0, 0.0}))
	d.Append(instance.New([]float64{2.0, 1.0}))

	// Lookup ignores the class attribute, so a probe with a different class
	// still matches by input values.
	probe := instance.New([]float64{2.0, 0.0})
	if pos := d.IndexOf(probe); pos != 1 {
		t.Errorf("Expected position 1, got %d", pos)
	}

	missing := instance.New([]float64{9.0, 0.0})
	if pos := d.IndexOf(missing); pos != -1 {
		t.Errorf("Expected -1 for an absent row, got %d", pos)
	}
}

func TestWithoutClass(t *testing.T) {
	d := New(twoClassSchema())
	d.Append(instance.New([]float64{1.0, 0.0}))

	view := d.WithoutClass()
	if view.Schema().HasClass() {
		t.Error("WithoutClass view should not designate a class attribute")
	}

	if d.Schema().ClassIndex != 1 {
		t.Errorf("Original schema changed: class index %d", d.Schema().ClassIndex)
	}

	// Rows are shared, not copied.
	if view.Instance(0) != d.Instance(0) {
		t.Error("WithoutClass view should share rows with the original")
	}
}

func TestClassValues(t *testing.T) {
	d := New(twoClassSchema())
	d.Append(instance.New([]float64{1.0, 0.0}))
	d.Append(instance.New([]float64{2.0, 1.0}))

	values := d.ClassValues()
	if len(values) != 2 || values[0] != 0.0 || values[1] != 1.0 {
		t.Errorf("Expected class values [0 1], got %v", values)
	}
}

func TestAttributeColumns(t *testing.T) {
	d := New(twoClassSchema())
	d.Append(instance.New([]float64{1.0, 0.0}))
	d.Append(instance.New([]float64{2.0, 1.0}))

	columns := d.AttributeColumns()
	if len(columns) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(columns))
	}

	for j, col := range columns {
		if col.Len() != 2 {
			t.Fatalf("Column %d has %d rows, expected 2", j, col.Len())
		}
		if col.Schema().HasClass() {
			t.Errorf("Column %d should not designate a class attribute", j)
		}
		for i := 0; i < col.Len(); i++ {
			if col.Instance(i).Value(0) != d.Instance(i).Value(j) {
				t.Errorf("Column %d row %d: expected %f, got %f",
					j, i, d.Instance(i).Value(j), col.Instance(i).Value(0))
			}
		}
	}
}

func TestSchemaNumClasses(t *testing.T) {
	s := twoClassSchema()
	if s.NumClasses() != 2 {
		t.Errorf("Expected 2 classes, got %d", s.NumClasses())
	}

	numeric := &Schema{
		Attributes: []Attribute{{Name: "x", Kind: Numeric}, {Name: "y", Kind: Numeric}},
		ClassIndex: 1,
	}
	if numeric.NumClasses() != 0 {
		t.Errorf("Expected 0 classes for a numeric class, got %d", numeric.NumClasses())
	}

	noClass := &Schema{Attributes: []Attribute{{Name: "x", Kind: Numeric}}, ClassIndex: NoClass}
	if noClass.HasClass() {
		t.Error("Schema with NoClass should report no class attribute")
	}
}
