// Package order provides the Order aggregate of the procurement workflow engine
// and the records attached to it.
//
// The package includes:
//   - Order: the aggregate root, created Pending and moved only along the
//     transition table
//   - Status: the closed lifecycle vocabulary and its transition table
//   - Number: the ORD-yyyymm0000 identifier allocated once per order
//   - Item, Comment, Document: child records owned by an order
//   - WorkflowEntry: an immutable line of an order's status history
//   - CreatedEvent: the event emitted after an order creation commits
//
// Key business rules:
//   - pending -> review, cancelled, archived
//   - review -> approved, rejected, pending, archived
//   - approved -> completed, cancelled, archived
//   - completed, cancelled -> archived
//   - rejected -> pending, archived
//   - archived is terminal
//   - an item's total price equals unit price × quantity
//
// Who may perform a transition is not decided here; see package access.
package order
