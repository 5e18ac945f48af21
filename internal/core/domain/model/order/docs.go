// Package order holds the Order aggregate of the field-service domain.
//
// The package includes:
//   - Order: the aggregate root owning status, scheduled window and worker rows
//   - Worker: one technician's participation in an order
//   - Status / WorkerStatus: the order state machine and worker states
//   - Booking, Assignment: read models used by scheduling
//
// Key business rules:
//   - Status changes follow a fixed transition table; CANCELLED, FAILED and DELETED are final
//   - An order with recorded visits cannot be moved back to PENDING
//   - Closing an order (COMPLETED, CANCELLED, FAILED) closes the active work of its technicians
//   - The first visit starts the work, removing the last visit puts the order back to PENDING
//   - Orders without an end date last two hours
package order
