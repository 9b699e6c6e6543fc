// Package client contains the client-side plumbing of the fuel log: the sheet
// endpoint client and local database bootstrap.
//
// # Sheet endpoint
//
// The endpoint is a single URL that accepts POSTed JSON documents carrying an
// "action" field (ping, appendFuel, listFuel) and answers with
// {"ok":true,...} or {"ok":false,"error":"..."}. HTTPClient implements the
// Client interface on top of it.
//
// # Error Handling
//
// Every failure is classified. Transport problems (including a missing URL)
// match ErrUnavailable; explicit refusals are *RejectedError and match
// ErrRejected. Callers decide between queueing and reporting with errors.Is.
//
// # Local database
//
// InitDatabase opens the SQLite file, applies embedded goose migrations and
// wires the ledger and metadata repositories.
package client
