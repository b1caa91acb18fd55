package opc

import (
	"fmt"
	"sort"
)

// RID identifies a relationship within one source's outgoing edge set.
// Ids are unique per source, not per package: two different parts can both
// carry an rId1.
type RID string

// Relationship is a typed, directed edge from a source (a part or the
// package root) to another part or to an external resource.
type Relationship struct {
	rID      RID
	relType  string
	target   *Part
	external bool
	extURI   string
}

// ID returns the relationship's id.
func (r *Relationship) ID() RID { return r.rID }

// RelType returns the relationship-type URI.
func (r *Relationship) RelType() string { return r.relType }

// IsExternal reports whether the relationship points outside the package.
func (r *Relationship) IsExternal() bool { return r.external }

// TargetPart returns the target part of an internal relationship, or nil for
// an external one.
func (r *Relationship) TargetPart() *Part { return r.target }

// TargetRef returns the external URI for an external relationship and the
// target partname for an internal one.
func (r *Relationship) TargetRef() string {
	if r.external {
		return r.extURI
	}
	return r.target.PartName()
}

// Relationships is the ordered set of outgoing relationships of a single
// source. All mutation goes through Add/Remove so the owning package can
// keep its reverse-adjacency index current.
type Relationships struct {
	source string // partname of the source, or "/" for the package root
	byID   map[RID]*Relationship
	order  []RID
	pkg    *Package
}

func newRelationships(source string, pkg *Package) *Relationships {
	return &Relationships{
		source: source,
		byID:   make(map[RID]*Relationship),
		pkg:    pkg,
	}
}

// Source returns the partname of the owning source, or "/" for the package
// root.
func (rs *Relationships) Source() string { return rs.source }

// Len returns the number of outgoing relationships.
func (rs *Relationships) Len() int { return len(rs.order) }

// All returns the relationships in insertion order.
func (rs *Relationships) All() []*Relationship {
	rels := make([]*Relationship, 0, len(rs.order))
	for _, rID := range rs.order {
		rels = append(rels, rs.byID[rID])
	}
	return rels
}

// ByID returns the relationship with the given id, or a
// RelationshipNotFoundError if the id is absent.
func (rs *Relationships) ByID(rID RID) (*Relationship, error) {
	rel, ok := rs.byID[rID]
	if !ok {
		return nil, &RelationshipNotFoundError{Source: rs.source, RID: rID}
	}
	return rel, nil
}

// ByType returns the first relationship of the given type in insertion
// order. The boolean distinguishes "absent" from a genuine fault: absence is
// an expected outcome the caller handles (typically by creating a default),
// not an error.
func (rs *Relationships) ByType(relType string) (*Relationship, bool) {
	for _, rID := range rs.order {
		if rel := rs.byID[rID]; rel.relType == relType {
			return rel, true
		}
	}
	return nil, false
}

// Add creates an internal relationship to target under a freshly allocated
// id and returns that id. If an equivalent relationship (same type, same
// target) already exists, its id is returned instead of adding a duplicate
// edge.
func (rs *Relationships) Add(relType string, target *Part) RID {
	for _, rID := range rs.order {
		rel := rs.byID[rID]
		if !rel.external && rel.relType == relType && rel.target == target {
			return rID
		}
	}
	rID := rs.nextID()
	rs.insert(&Relationship{rID: rID, relType: relType, target: target})
	return rID
}

// AddExternal creates an external relationship to uri under a freshly
// allocated id and returns that id.
func (rs *Relationships) AddExternal(relType, uri string) RID {
	rID := rs.nextID()
	rs.insert(&Relationship{rID: rID, relType: relType, external: true, extURI: uri})
	return rID
}

// AddWithID creates an internal relationship under a caller-supplied id.
// Used when loading a package, where ids come from the rels stream. Fails
// with DuplicateRelationshipError if the id is already taken.
func (rs *Relationships) AddWithID(rID RID, relType string, target *Part) error {
	if _, exists := rs.byID[rID]; exists {
		return &DuplicateRelationshipError{Source: rs.source, RID: rID}
	}
	rs.insert(&Relationship{rID: rID, relType: relType, target: target})
	return nil
}

// AddExternalWithID is AddWithID for external relationships.
func (rs *Relationships) AddExternalWithID(rID RID, relType, uri string) error {
	if _, exists := rs.byID[rID]; exists {
		return &DuplicateRelationshipError{Source: rs.source, RID: rID}
	}
	rs.insert(&Relationship{rID: rID, relType: relType, external: true, extURI: uri})
	return nil
}

// Remove deletes the relationship with the given id. Removing an id that is
// not present is a no-op; cascade deletion may reach the same edge twice.
func (rs *Relationships) Remove(rID RID) {
	rel, ok := rs.byID[rID]
	if !ok {
		return
	}
	if !rel.external && rs.pkg != nil {
		rs.pkg.untrack(rel.target, rs, rID)
	}
	delete(rs.byID, rID)
	for i, id := range rs.order {
		if id == rID {
			rs.order = append(rs.order[:i], rs.order[i+1:]...)
			break
		}
	}
}

func (rs *Relationships) insert(rel *Relationship) {
	rs.byID[rel.rID] = rel
	rs.order = append(rs.order, rel.rID)
	if !rel.external && rs.pkg != nil {
		rs.pkg.track(rel.target, rs, rel.rID)
	}
}

// nextID allocates the lowest unused id of the form rIdN. Loaded packages
// commonly have gaps, so a simple counter would collide.
func (rs *Relationships) nextID() RID {
	for n := 1; ; n++ {
		rID := RID(fmt.Sprintf("rId%d", n))
		if _, taken := rs.byID[rID]; !taken {
			return rID
		}
	}
}

// sortedIDs returns the ids in lexical order; used by integrity checks that
// need deterministic reporting.
func (rs *Relationships) sortedIDs() []RID {
	ids := make([]RID, 0, len(rs.byID))
	for rID := range rs.byID {
		ids = append(ids, rID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
