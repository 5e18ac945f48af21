// Package kernel provides the value objects shared by the field-service domain model.
//
// The package includes:
//   - TimeWindow: a half-open [start, end) interval used for order windows, visits and availability
//   - VersionStamp: the updatedAt value compared by optimistic concurrency checks
//   - UUID: identifiers for notifications queued in the outbox
//
// Values are immutable and safe for concurrent use.
package kernel
