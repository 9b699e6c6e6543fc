// Package models defines the rows stored by the reference sheet endpoint.
package models

// Row is one sheet row. The endpoint does not interpret the fuel fields: it
// keys rows by ID, orders them by Timestamp and hands Data back verbatim.
type Row struct {
	ID        string
	Timestamp int64
	Data      map[string]any
}
