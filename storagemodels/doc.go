/*
Package storagemodels defines the data structures shared by the store
backends and the load engine.

Key Types:

Column:
A single name/value cell of a wide row:

	col := Column{Name: "col0", Value: "6f1c..."}

ColumnRange:
A bounded range read over the column names of one row. Start and End are
inclusive; Limit caps the number of returned columns:

	r := ColumnRange{Start: "a", End: "z", Limit: 100}

RetryOptions:
Backend request tuning for throttled stores, configured with functional
options:

	opts := []RetryOption{
	    WithMaxRetries(3),
	    WithPageSize(500),
	    WithBatchSize(25),
	}

These types provide a consistent interface across the store backends.
*/
package storagemodels
