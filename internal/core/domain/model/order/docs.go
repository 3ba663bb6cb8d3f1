// Package order provides the repair order aggregate and its status lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding identity, folio, client, priority and status
//   - Status: the closed set of lifecycle states and the transition table between them
//   - HistoryEntry: the immutable audit record appended on creation and on every
//     accepted status change
//
// Key business rules:
//   - New orders always start in Received with one "order created" history entry
//   - Status changes follow the transition table; Delivered and Cancelled are terminal
//   - History is append-only and is written in the same transaction as the status
//   - Only ChangeStatus (and creation) append history entries
package order
