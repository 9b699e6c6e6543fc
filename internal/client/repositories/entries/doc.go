// Package entries provides the local ledger: the durable, ordered collection
// of fuel entries, sent and queued.
//
// # Contract
//
//   - Append adds a new entry and fails with common.ErrDuplicateID when the id
//     is already present. Ids are therefore unique at all times.
//   - MarkAcknowledged flips the acknowledged flag for known ids and silently
//     ignores unknown ones; the remote may confirm rows this device never queued.
//   - ReplaceAcknowledged swaps the whole acknowledged part of the ledger for
//     the remote listing in one transaction. Unacknowledged entries are never
//     touched, and on an id collision the local, unacknowledged copy wins.
//
// Every mutation runs in its own SQLite transaction, so a failed write leaves
// previously durable entries intact.
//
// Typical Usage
//
//	repo := entries.NewSQLiteRepository(db)
//	_ = repo.Append(ctx, &entry)
//	queued, _ := repo.GetAllPending(ctx)
//	_, _ = repo.MarkAcknowledged(ctx, []string{entry.ID})
//	_ = repo.ReplaceAcknowledged(ctx, remoteRows)
package entries
