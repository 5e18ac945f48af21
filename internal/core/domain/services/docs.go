// Package services provides domain services that span the order, technician and visit
// aggregates of the field-service system.
//
// The package includes:
//   - AvailabilityIndex: technicians whose declared availability covers a window
//   - ConflictDetector: overlap test against a technician's active bookings
//   - LoadCounter: number of active bookings of a technician
//   - AssignmentScheduler: ranks eligible technicians and assigns the best one to an order
//   - OrderStatusMachine: applies status, worker and visit driven changes and collects
//     the notifications they produce
//
// The services are pure: they read the aggregates and bookings handed to them and
// never touch persistence.
package services
