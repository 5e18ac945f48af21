// Package technician holds the Technician aggregate and the availability windows
// technicians declare. Only ACTIVE, non-deleted technicians with an availability
// covering an order window are eligible for that order.
package technician
