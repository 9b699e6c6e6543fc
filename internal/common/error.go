// Package common defines sentinel errors shared by the fuel log client and the
// reference sheet endpoint. Callers match them with errors.Is.
package common

import "errors"

var (
	// Ledger errors.
	ErrorNotFound  = errors.New("not found")
	ErrDuplicateID = errors.New("duplicate entry id")

	// Input errors.
	ErrValidation = errors.New("validation error")

	// Remote endpoint errors.
	ErrUnknownAction = errors.New("unknown action")
	ErrMissingRowID  = errors.New("row without id")
)
