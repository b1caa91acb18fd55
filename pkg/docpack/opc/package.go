package opc

import (
	"fmt"
	"sort"
	"strings"
)

// relRef identifies one incoming edge: the relationship set it lives in and
// its id there.
type relRef struct {
	rels *Relationships
	rID  RID
}

// Package is the root container. It owns every part, the package-level
// relationship set, the content-type defaults carried over from
// [Content_Types].xml, and a reverse-adjacency index from target part to the
// set of relationships pointing at it.
//
// A Package is not safe for concurrent mutation; callers sharing one across
// goroutines must serialize access themselves.
type Package struct {
	parts    map[string]*Part
	rels     *Relationships
	defaults map[string]string // lowercase extension -> content type
	index    map[*Part]map[relRef]struct{}
}

// NewPackage returns an empty package carrying the two content-type defaults
// every package needs (rels and xml).
func NewPackage() *Package {
	pkg := &Package{
		parts: make(map[string]*Part),
		defaults: map[string]string{
			"rels": CTRelationships,
			"xml":  CTXML,
		},
		index: make(map[*Part]map[relRef]struct{}),
	}
	pkg.rels = newRelationships("/", pkg)
	return pkg
}

// Relationships returns the package-level relationship set, whose source is
// the package itself rather than any part.
func (pkg *Package) Relationships() *Relationships { return pkg.rels }

// Part returns the part with the given partname, or PartNotFoundError.
func (pkg *Package) Part(name string) (*Part, error) {
	p, ok := pkg.parts[name]
	if !ok {
		return nil, &PartNotFoundError{PartName: name}
	}
	return p, nil
}

// HasPart reports whether a part with the given partname exists.
func (pkg *Package) HasPart(name string) bool {
	_, ok := pkg.parts[name]
	return ok
}

// AddPart creates a part and adds it to the package. Fails with
// DuplicatePartError if the partname is taken. Partnames must be
// package-absolute ("/word/document.xml").
func (pkg *Package) AddPart(name, contentType string, blob []byte) (*Part, error) {
	if !strings.HasPrefix(name, "/") {
		return nil, fmt.Errorf("partname %q is not package-absolute", name)
	}
	if _, exists := pkg.parts[name]; exists {
		return nil, &DuplicatePartError{PartName: name}
	}
	p := &Part{name: name, contentType: contentType, blob: blob, pkg: pkg}
	p.rels = newRelationships(name, pkg)
	pkg.parts[name] = p
	return p, nil
}

// Parts returns all parts sorted by partname.
func (pkg *Package) Parts() []*Part {
	names := make([]string, 0, len(pkg.parts))
	for name := range pkg.parts {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]*Part, 0, len(names))
	for _, name := range names {
		parts = append(parts, pkg.parts[name])
	}
	return parts
}

// DropPart removes a part from the package, first removing every
// non-external relationship that targets it, whether the source is the
// package root or another part. A part is never left dangling behind a live
// relationship, and a relationship is never left pointing at a missing part.
func (pkg *Package) DropPart(p *Part) {
	for _, ref := range pkg.incomingRefs(p) {
		ref.rels.Remove(ref.rID)
	}
	for _, rel := range p.rels.All() {
		p.rels.Remove(rel.ID())
	}
	delete(pkg.parts, p.name)
	delete(pkg.index, p)
}

// Referrers returns every relationship, from the package root or any part,
// that targets p. Backed by the reverse-adjacency index, so the cost is
// proportional to the edges into p rather than the whole graph.
func (pkg *Package) Referrers(p *Part) []*Relationship {
	refs := pkg.incomingRefs(p)
	rels := make([]*Relationship, 0, len(refs))
	for _, ref := range refs {
		rels = append(rels, ref.rels.byID[ref.rID])
	}
	return rels
}

// incomingRefs returns every (source, rId) whose relationship targets p,
// in deterministic order.
func (pkg *Package) incomingRefs(p *Part) []relRef {
	refs := make([]relRef, 0, len(pkg.index[p]))
	for ref := range pkg.index[p] {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].rels.source != refs[j].rels.source {
			return refs[i].rels.source < refs[j].rels.source
		}
		return refs[i].rID < refs[j].rID
	})
	return refs
}

func (pkg *Package) track(target *Part, rels *Relationships, rID RID) {
	refs, ok := pkg.index[target]
	if !ok {
		refs = make(map[relRef]struct{})
		pkg.index[target] = refs
	}
	refs[relRef{rels: rels, rID: rID}] = struct{}{}
}

func (pkg *Package) untrack(target *Part, rels *Relationships, rID RID) {
	refs, ok := pkg.index[target]
	if !ok {
		return
	}
	delete(refs, relRef{rels: rels, rID: rID})
	if len(refs) == 0 {
		delete(pkg.index, target)
	}
}

// Validate checks the package's structural invariants: every non-external
// relationship targets a part present in the package, and the reverse index
// agrees with the live edge set. A non-nil result is an IntegrityError and
// indicates a bug in graph mutation, not bad input.
func (pkg *Package) Validate() error {
	sources := []*Relationships{pkg.rels}
	for _, p := range pkg.Parts() {
		sources = append(sources, p.rels)
	}
	for _, rs := range sources {
		for _, rID := range rs.sortedIDs() {
			rel := rs.byID[rID]
			if rel.external {
				continue
			}
			target := rel.target
			if target == nil {
				return &IntegrityError{Message: fmt.Sprintf(
					"relationship %s on %s has no target", rID, rs.source)}
			}
			if pkg.parts[target.name] != target {
				return &IntegrityError{Message: fmt.Sprintf(
					"relationship %s on %s targets %s, which is not in the package",
					rID, rs.source, target.name)}
			}
			if _, tracked := pkg.index[target][relRef{rels: rs, rID: rID}]; !tracked {
				return &IntegrityError{Message: fmt.Sprintf(
					"relationship %s on %s missing from reverse index", rID, rs.source)}
			}
		}
	}
	for target, refs := range pkg.index {
		for ref := range refs {
			rel, ok := ref.rels.byID[ref.rID]
			if !ok || rel.external || rel.target != target {
				return &IntegrityError{Message: fmt.Sprintf(
					"stale reverse-index entry %s on %s", ref.rID, ref.rels.source)}
			}
		}
	}
	return nil
}

// ContentTypeDefaults returns the extension defaults (lowercase extension ->
// content type) used when serializing [Content_Types].xml.
func (pkg *Package) ContentTypeDefaults() map[string]string {
	out := make(map[string]string, len(pkg.defaults))
	for ext, ct := range pkg.defaults {
		out[ext] = ct
	}
	return out
}

// SetContentTypeDefault registers a content type for an extension (without
// dot, matched case-insensitively as the format requires).
func (pkg *Package) SetContentTypeDefault(ext, contentType string) {
	pkg.defaults[strings.ToLower(ext)] = contentType
}

// defaultFor returns the default content type for a partname's extension.
func (pkg *Package) defaultFor(name string) (string, bool) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", false
	}
	ct, ok := pkg.defaults[strings.ToLower(name[idx+1:])]
	return ct, ok
}
