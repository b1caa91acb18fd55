// Package opc implements the part/relationship graph of an Open Packaging
// Conventions container and its zip-based serialization.
package opc

import "fmt"

// PartNotFoundError reports a lookup for a partname that is not present in
// the package.
type PartNotFoundError struct {
	PartName string
}

func (e *PartNotFoundError) Error() string {
	return fmt.Sprintf("part %s not found in package", e.PartName)
}

// RelationshipNotFoundError reports a lookup for a relationship id that does
// not exist among a source's outgoing relationships.
type RelationshipNotFoundError struct {
	Source string
	RID    RID
}

func (e *RelationshipNotFoundError) Error() string {
	return fmt.Sprintf("relationship %s not found on %s", e.RID, e.Source)
}

// DuplicatePartError reports an attempt to add a part under a partname that
// is already taken.
type DuplicatePartError struct {
	PartName string
}

func (e *DuplicatePartError) Error() string {
	return fmt.Sprintf("part %s already exists in package", e.PartName)
}

// DuplicateRelationshipError reports an attempt to add a relationship under
// an id already used by the same source.
type DuplicateRelationshipError struct {
	Source string
	RID    RID
}

func (e *DuplicateRelationshipError) Error() string {
	return fmt.Sprintf("relationship %s already exists on %s", e.RID, e.Source)
}

// IntegrityError reports a violated package invariant. It indicates an
// internal bug in graph mutation, never a condition a caller can trigger
// through the public API.
type IntegrityError struct {
	Message string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("package integrity violation: %s", e.Message)
}

// IsPartNotFound checks if an error is a part-not-found error
func IsPartNotFound(err error) bool {
	_, ok := err.(*PartNotFoundError)
	return ok
}

// IsRelationshipNotFound checks if an error is a relationship-not-found error
func IsRelationshipNotFound(err error) bool {
	_, ok := err.(*RelationshipNotFoundError)
	return ok
}

// IsIntegrityError checks if an error is an integrity violation
func IsIntegrityError(err error) bool {
	_, ok := err.(*IntegrityError)
	return ok
}
