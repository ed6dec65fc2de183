// Package source reads expense files (YAML or JSON) into validated records.
package source

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/tally/internal/expense"
)

// ParseFile reads and decodes one expense file. Rows without a kind get
// defaultKind; legacy rows always do.
func ParseFile(path string, defaultKind expense.Kind) ParseResult {
	result := ParseResult{Path: path}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		result.Err = fmt.Errorf("reading %s: %w", path, err)
		return result
	}

	rows, err := DecodeRows(data)
	if err != nil {
		result.Err = fmt.Errorf("decoding %s: %w", path, err)
		return result
	}

	result.Shape = DetectShape(rows)
	result.Records, result.Rejected = Convert(rows, defaultKind)
	return result
}

// DecodeRows decodes a YAML or JSON document holding either a list of rows or
// an object with an "expenses" list.
func DecodeRows(data []byte) ([]RawRow, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var rows []RawRow
		if err := root.Decode(&rows); err != nil {
			return nil, err
		}
		return rows, nil
	case yaml.MappingNode:
		var f rawFile
		if err := root.Decode(&f); err != nil {
			return nil, err
		}
		return f.Expenses, nil
	default:
		return nil, errors.New("expected a list of expenses or an object with an expenses list")
	}
}

// DetectShape reports the row layout. A file is legacy when its first row
// uses the legacy keys.
func DetectShape(rows []RawRow) Shape {
	if len(rows) == 0 {
		return ShapeUnknown
	}
	if rows[0].isLegacy() {
		return ShapeLegacy
	}
	return ShapeModern
}

// Convert validates rows into records. Legacy rows go through the
// expense.FromLegacy adapter. Invalid rows are returned as errors and skipped.
func Convert(rows []RawRow, defaultKind expense.Kind) ([]expense.Record, []error) {
	var (
		records  []expense.Record
		rejected []error
	)
	for i, row := range rows {
		rec, err := convertRow(row, defaultKind)
		if err != nil {
			rejected = append(rejected, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		records = append(records, rec)
	}
	return records, rejected
}

func convertRow(row RawRow, defaultKind expense.Kind) (expense.Record, error) {
	if row.isLegacy() {
		legacy := expense.LegacyRecord{ExpenseName: row.ExpenseName}
		if row.AmountSpent != nil {
			amount, err := expense.RoundAmount(*row.AmountSpent)
			if err != nil {
				return expense.Record{}, err
			}
			legacy.AmountSpent = amount
		}
		return expense.FromLegacy(legacy, defaultKind)
	}

	kind := defaultKind
	if row.Kind != "" {
		k, err := expense.ParseKind(row.Kind)
		if err != nil {
			return expense.Record{}, err
		}
		kind = k
	}

	if row.Amount == nil {
		return expense.Record{}, expense.ErrNonPositive
	}
	amount, err := expense.RoundAmount(*row.Amount)
	if err != nil {
		return expense.Record{}, err
	}
	return expense.New(row.Name, amount, kind)
}
