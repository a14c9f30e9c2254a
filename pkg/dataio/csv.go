// Package dataio loads and writes datasets in CSV form for the command-line
// wrapper. The selection core itself never touches files; everything here is
// boundary glue.
package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ken/instance_selection/pkg/core/dataset"
	"github.com/ken/instance_selection/pkg/core/instance"
)

var (
	// ErrEmptyFile is returned when the CSV has no header row
	ErrEmptyFile = errors.New("csv file has no header row")

	// ErrNoRows is returned when the CSV has a header but no data rows
	ErrNoRows = errors.New("csv file has no data rows")
)

// missingCell is the on-disk marker for a missing value; empty cells load as
// missing too.
const missingCell = "?"

// Load reads a CSV file with a header row into a dataset. classIndex picks
// the class column; pass a negative value for the last column. Columns whose
// non-missing cells all parse as numbers become numeric attributes; any
// other column becomes nominal, its labels numbered in order of first
// appearance.
func Load(path string, classIndex int) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return LoadReader(f, classIndex)
}

// LoadReader reads CSV content from r; see Load.
func LoadReader(r io.Reader, classIndex int) (*dataset.Dataset, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	if len(records) == 1 {
		return nil, ErrNoRows
	}

	header := records[0]
	rows := records[1:]
	numAttr := len(header)

	if classIndex < 0 {
		classIndex = numAttr - 1
	}
	if classIndex >= numAttr {
		return nil, fmt.Errorf("class index %d out of range for %d columns", classIndex, numAttr)
	}

	attrs := make([]dataset.Attribute, numAttr)
	for j := 0; j < numAttr; j++ {
		attrs[j] = inferAttribute(header[j], rows, j)
	}

	schema := &dataset.Schema{Attributes: attrs, ClassIndex: classIndex}
	data := dataset.NewWithCapacity(schema, len(rows))

	// Nominal label lookup per column.
	labels := make([]map[string]float64, numAttr)
	for j, attr := range attrs {
		if attr.IsNumeric() {
			continue
		}
		labels[j] = make(map[string]float64, len(attr.Labels))
		for i, label := range attr.Labels {
			labels[j][label] = float64(i)
		}
	}

	for _, record := range rows {
		values := make([]float64, numAttr)
		for j, cell := range record {
			switch {
			case cell == "" || cell == missingCell:
				values[j] = instance.MissingValue
			case attrs[j].IsNumeric():
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, fmt.Errorf("failed to parse numeric cell %q: %w", cell, err)
				}
				values[j] = v
			default:
				values[j] = labels[j][cell]
			}
		}
		if err := data.Append(instance.New(values)); err != nil {
			return nil, err
		}
	}

	return data, nil
}

// inferAttribute decides whether column j is numeric or nominal and, for
// nominal columns, collects the label set in order of first appearance.
func inferAttribute(name string, rows [][]string, j int) dataset.Attribute {
	numeric := true
	for _, record := range rows {
		cell := record[j]
		if cell == "" || cell == missingCell {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			numeric = false
			break
		}
	}

	if numeric {
		return dataset.Attribute{Name: name, Kind: dataset.Numeric}
	}

	var labels []string
	seen := make(map[string]bool)
	for _, record := range rows {
		cell := record[j]
		if cell == "" || cell == missingCell || seen[cell] {
			continue
		}
		seen[cell] = true
		labels = append(labels, cell)
	}

	return dataset.Attribute{Name: name, Kind: dataset.Nominal, Labels: labels}
}

// Write stores a dataset as CSV with a header row, nominal values written as
// their labels and missing values as "?".
func Write(path string, data *dataset.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	return WriteTo(f, data)
}

// WriteTo writes a dataset as CSV to w; see Write.
func WriteTo(w io.Writer, data *dataset.Dataset) error {
	writer := csv.NewWriter(w)
	schema := data.Schema()

	header := make([]string, schema.NumAttributes())
	for j, attr := range schema.Attributes {
		header[j] = attr.Name
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	record := make([]string, schema.NumAttributes())
	for i := 0; i < data.Len(); i++ {
		row := data.Instance(i)
		for j, attr := range schema.Attributes {
			switch {
			case row.IsMissing(j):
				record[j] = missingCell
			case attr.IsNumeric():
				record[j] = strconv.FormatFloat(row.Value(j), 'g', -1, 64)
			default:
				record[j] = attr.Labels[int(row.Value(j))]
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteIndex stores an origin-index vector, one integer per line.
func WriteIndex(path string, index []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	defer f.Close()

	for _, v := range index {
		if _, err := fmt.Fprintln(f, v); err != nil {
			return err
		}
	}

	return nil
}
