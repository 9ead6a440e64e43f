package ml

import (
	"encoding/csv"
	"errors"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Row is one record of a tabular batch. Cell values are float64 for numeric
// data, string for categorical data, nil (or absent) for missing.
type Row map[string]any

// Dataset is a small column-ordered tabular frame. Column order is significant
// because the feature schema is derived from it at training time.
type Dataset struct {
	Columns []string
	Rows    []Row
}

func NewDataset(columns []string, rows []Row) *Dataset {
	return &Dataset{Columns: columns, Rows: rows}
}

// DatasetFromRows builds a dataset from rows, column order is first-seen order
// across rows. Used when the caller assembles rows programmatically.
func DatasetFromRows(rows []Row, columnOrder []string) *Dataset {
	ds := &Dataset{Rows: rows}
	seen := map[string]bool{}
	for _, c := range columnOrder {
		if !seen[c] {
			seen[c] = true
			ds.Columns = append(ds.Columns, c)
		}
	}
	return ds
}

// DatasetFromCSV parses a CSV string with a header row. Empty cells become
// missing values, cells that parse as numbers become float64, the rest stay
// strings.
func DatasetFromCSV(data string) (*Dataset, error) {
	r := csv.NewReader(strings.NewReader(data))
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, errors.New("csv has no header row")
	}
	header := records[0]
	ds := &Dataset{Columns: append([]string{}, header...)}
	for _, rec := range records[1:] {
		row := Row{}
		for j, cell := range rec {
			if j >= len(header) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if f, err := strconv.ParseFloat(cell, 64); err == nil {
				row[header[j]] = f
			} else {
				row[header[j]] = cell
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// DatasetFromJSON parses an array of objects. Booleans become 1/0 so binary
// flags survive either representation.
func DatasetFromJSON(data []byte) (*Dataset, error) {
	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, errors.New("training data must be a JSON array of objects")
	}
	ds := &Dataset{}
	seen := map[string]bool{}
	for _, obj := range parsed.Array() {
		row := Row{}
		obj.ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			if !seen[name] {
				seen[name] = true
				ds.Columns = append(ds.Columns, name)
			}
			switch value.Type {
			case gjson.Number:
				row[name] = value.Float()
			case gjson.String:
				if value.Str != "" {
					row[name] = value.Str
				}
			case gjson.True:
				row[name] = 1.0
			case gjson.False:
				row[name] = 0.0
			}
			return true
		})
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

func (ds *Dataset) HasColumn(name string) bool {
	for _, c := range ds.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// IsNumeric reports whether every present value of the column is a float64
// and at least one value is present.
func (ds *Dataset) IsNumeric(name string) bool {
	found := false
	for _, row := range ds.Rows {
		v, ok := row[name]
		if !ok || v == nil {
			continue
		}
		if _, isNum := v.(float64); !isNum {
			return false
		}
		found = true
	}
	return found
}

// Copy returns a deep copy so imputation never mutates the caller's batch.
func (ds *Dataset) Copy() *Dataset {
	out := &Dataset{Columns: append([]string{}, ds.Columns...)}
	out.Rows = make([]Row, len(ds.Rows))
	for i, row := range ds.Rows {
		cp := make(Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.Rows[i] = cp
	}
	return out
}
