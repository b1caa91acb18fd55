package opc

// Part is a named, typed unit of content within a package. Its payload is an
// opaque blob the graph layer never interprets; identity is the partname.
type Part struct {
	name        string
	contentType string
	blob        []byte
	rels        *Relationships
	pkg         *Package
}

// PartName returns the part's package-absolute name, e.g.
// "/word/document.xml".
func (p *Part) PartName() string { return p.name }

// ContentType returns the part's content type.
func (p *Part) ContentType() string { return p.contentType }

// SetContentType reassigns the part's content type. Used when a document is
// converted between the macro-enabled and macro-free variants.
func (p *Part) SetContentType(contentType string) { p.contentType = contentType }

// Blob returns the part's payload.
func (p *Part) Blob() []byte { return p.blob }

// SetBlob replaces the part's payload.
func (p *Part) SetBlob(blob []byte) { p.blob = blob }

// Package returns the package owning this part.
func (p *Part) Package() *Package { return p.pkg }

// Relationships returns the part's outgoing relationship set.
func (p *Part) Relationships() *Relationships { return p.rels }

// RelateTo ensures a relationship of relType from this part to target and
// returns its id.
func (p *Part) RelateTo(target *Part, relType string) RID {
	return p.rels.Add(relType, target)
}

// RelateToExternal adds a relationship of relType to an external URI and
// returns its id.
func (p *Part) RelateToExternal(uri, relType string) RID {
	return p.rels.AddExternal(relType, uri)
}

// PartRelatedBy returns the target of this part's first outgoing
// relationship of relType. The boolean is false when no such relationship
// exists or when the only matches are external.
func (p *Part) PartRelatedBy(relType string) (*Part, bool) {
	rel, ok := p.rels.ByType(relType)
	if !ok || rel.IsExternal() {
		return nil, false
	}
	return rel.TargetPart(), true
}

// RelatedPart returns the target part of the relationship with the given id.
// Fails with RelationshipNotFoundError if the id is absent, or with
// PartNotFoundError if the relationship is external and therefore has no
// target part.
func (p *Part) RelatedPart(rID RID) (*Part, error) {
	rel, err := p.rels.ByID(rID)
	if err != nil {
		return nil, err
	}
	if rel.IsExternal() {
		return nil, &PartNotFoundError{PartName: rel.TargetRef()}
	}
	return rel.TargetPart(), nil
}

// DropRel removes the outgoing relationship with the given id. The target
// part stays in the package; dropping parts is the package's job.
func (p *Part) DropRel(rID RID) {
	p.rels.Remove(rID)
}
