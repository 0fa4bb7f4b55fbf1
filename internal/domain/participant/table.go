package participant

import (
	"math"
	"strconv"
	"strings"
)

// Table is a column-labeled, in-memory copy of the participant file.
// Values are stored as read; lookups trim surrounding whitespace.
type Table struct {
	headers []string
	index   map[string]int
	rows    [][]string
}

// NewTable builds a table from a header row and data rows. Short rows are
// treated as having blank trailing cells.
func NewTable(headers []string, rows [][]string) *Table {
	t := &Table{
		headers: make([]string, len(headers)),
		index:   make(map[string]int, len(headers)),
		rows:    rows,
	}
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.headers[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Headers returns a copy of the header row.
func (t *Table) Headers() []string {
	out := make([]string, len(t.headers))
	copy(out, t.headers)
	return out
}

// HasColumn reports whether the header row contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Require returns ErrMissingColumn for the first absent column.
func (t *Table) Require(names ...string) error {
	for _, n := range names {
		if !t.HasColumn(n) {
			return missingColumn(n)
		}
	}
	return nil
}

// Column returns the trimmed values of a categorical column.
func (t *Table) Column(name string) ([]string, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, missingColumn(name)
	}
	out := make([]string, len(t.rows))
	for r := range t.rows {
		out[r] = t.cell(r, i)
	}
	return out, nil
}

// Floats parses every value of a numeric column. Blank, unparsable and
// non-finite (NaN, Inf, overflowing) cells fail with a *CellError.
func (t *Table) Floats(name string) ([]float64, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, missingColumn(name)
	}
	out := make([]float64, len(t.rows))
	for r := range t.rows {
		raw := t.cell(r, i)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || raw == "" || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &CellError{Column: name, Row: r + 1, Value: raw}
		}
		out[r] = v
	}
	return out, nil
}

// Records materializes typed records. Optional columns missing from the
// header are left empty; scores are parsed for every skill area whose
// before and after columns are both present.
func (t *Table) Records(areas ...string) ([]Record, error) {
	recs := make([]Record, len(t.rows))
	for r := range t.rows {
		recs[r] = Record{
			ID:         t.value(r, ColumnID),
			FirstName:  t.value(r, ColumnFirstName),
			LastName:   t.value(r, ColumnLastName),
			Email:      t.value(r, ColumnEmail),
			Country:    t.value(r, ColumnCountry),
			Ethnicity:  t.value(r, ColumnEthnicity),
			School:     t.value(r, ColumnSchool),
			Confidence: t.value(r, ColumnConfidence),
		}
	}
	for _, area := range areas {
		if !t.HasColumn(BeforeColumn(area)) || !t.HasColumn(AfterColumn(area)) {
			continue
		}
		before, err := t.Floats(BeforeColumn(area))
		if err != nil {
			return nil, err
		}
		after, err := t.Floats(AfterColumn(area))
		if err != nil {
			return nil, err
		}
		for r := range recs {
			if recs[r].Skills == nil {
				recs[r].Skills = make(map[string]Score, len(areas))
			}
			recs[r].Skills[area] = Score{Before: before[r], After: after[r]}
		}
	}
	return recs, nil
}

func (t *Table) value(r int, name string) string {
	i, ok := t.index[name]
	if !ok {
		return ""
	}
	return t.cell(r, i)
}

func (t *Table) cell(r, i int) string {
	row := t.rows[r]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
