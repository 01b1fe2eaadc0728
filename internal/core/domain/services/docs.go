// Package services provides the domain services of the workflow engine: rules
// that need an order together with the caller acting on it.
//
// The package includes:
//   - OrderPolicy: who may create, view, edit and delete orders
//   - StatusWorkflow: authorizes and applies a status transition and produces
//     the matching history entry
//   - OwnershipGuard: who may modify comments and documents attached to an order
//
// The services are pure: they never touch storage, so a command handler can
// run them inside its transaction between loading and saving the aggregate.
package services
