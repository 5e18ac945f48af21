// Package queries contains the read side: handlers that select straight from the
// database into response structs, bypassing the aggregates.
package queries
