/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import "sort"

// Column is a single name/value cell of a wide row.
type Column struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// ColumnRange defines a bounded range read over the column names of one row.
// Both Start and End are inclusive. An empty Start or End leaves that side
// of the range open.
type ColumnRange struct {
	// Start is the lowest column name returned.
	Start string
	// End is the highest column name returned.
	End string
	// Reversed returns columns in descending name order, starting from End.
	Reversed bool
	// Limit is the maximum number of columns returned.
	// A Limit <= 0 returns no columns and must not reach the store.
	Limit int
}

// Contains reports whether the column name falls inside the range bounds.
func (r ColumnRange) Contains(name string) bool {
	if r.Start != "" && name < r.Start {
		return false
	}
	if r.End != "" && name > r.End {
		return false
	}
	return true
}

// Empty reports whether the range can never return a column.
func (r ColumnRange) Empty() bool {
	if r.Limit <= 0 {
		return true
	}
	return r.Start != "" && r.End != "" && r.Start > r.End
}

// ColumnsFromMap converts a column map into a slice sorted by column name.
func ColumnsFromMap(m map[string]string) []Column {
	cols := make([]Column, 0, len(m))
	for name, value := range m {
		cols = append(cols, Column{Name: name, Value: value})
	}
	sort.Slice(cols, func(i, j int) bool {
		return cols[i].Name < cols[j].Name
	})
	return cols
}

// Values returns the column values in slice order.
func Values(cols []Column) []string {
	values := make([]string, len(cols))
	for i, c := range cols {
		values[i] = c.Value
	}
	return values
}
