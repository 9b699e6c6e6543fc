package common

// Actions understood by the sheet endpoint. Every request body carries one of
// them in its "action" field.
const (
	ActionPing       = "ping"
	ActionAppendFuel = "appendFuel"
	ActionListFuel   = "listFuel"
)

// RemoteContentType is sent with every request. Spreadsheet script endpoints
// reject application/json preflights, plain text avoids them.
const RemoteContentType = "text/plain;charset=utf-8"
