// Package kernel provides the shared value objects of the procurement domain.
//
// The package includes:
//   - UUID: an identifier for outbox events and stored document files
//   - Currency: an ISO 4217 currency code with the GEL default used for new orders
//   - Amount helpers: validation for non-negative monetary amounts
//
// Numeric row identifiers (orders, items, comments, documents) are plain int64
// values assigned by the store; only identifiers minted by the service itself
// go through UUID.
package kernel
