// Package guard holds ConstructorGuard, embedded by commands, queries and domain
// objects to tell values built by their constructor apart from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built through its constructor.
//
// Example:
//
//	type RemoveVisitCommand struct {
//	    visitID int64
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c RemoveVisitCommand) Validate() error {
//	    return c.guard.Validate(ErrRemoveVisitCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard flagged as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// for a zero-value guard, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
