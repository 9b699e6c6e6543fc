// Package cli provides the interactive fuel log command-line client.
//
// It wires configuration, the local SQLite ledger, the sheet endpoint client
// and the reconciler into a REPL. Entries are always committed locally first
// and then sent; while the endpoint is unreachable they queue up and are sent
// later with "sync". A background watcher pings the endpoint and shows the
// connection mode in the prompt.
//
// Commands:
//   - add: record a fill-up, with distance and consumption derived from the
//     vehicle's previous entry
//   - list / queued: inspect the ledger
//   - sync / refresh: push the queue, pull the sheet's history
//   - settings / vehicles: endpoint URL, connection test, vehicle list
//   - export: XLSX file, optionally uploaded to S3
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
