package docpack

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/benjaminschreck/go-docpack/pkg/docpack/opc"
)

// File extensions for the two main-document variants. Extension comparisons
// are case-insensitive; filesystem extensions commonly vary in case.
const (
	ExtMacroEnabled = ".docm"
	ExtMacroFree    = ".docx"
)

// The macro artifact classifiers. The relationship cascade and the orphan
// sweep both consult these sets, so the two phases cannot disagree on what
// counts as macro content.
var macroRelTypes = map[string]struct{}{
	opc.RTVBAProject: {},
	opc.RTVBAData:    {},
	opc.RTControl:    {},
}

var macroContentTypes = map[string]struct{}{
	opc.CTVBAProject: {},
	opc.CTVBAData:    {},
	opc.CTActiveX:    {},
	opc.CTActiveXXML: {},
}

var macroPartNames = map[string]struct{}{
	"/word/vbaProject.bin": {},
	"/word/vbaData.xml":    {},
}

func isMacroRelType(relType string) bool {
	_, ok := macroRelTypes[relType]
	return ok
}

// isMacroPart classifies a part as macro content by its content type or its
// partname. Both checks are needed: a part can carry a generic content type
// under a well-known macro partname, and vice versa.
func isMacroPart(p *opc.Part) bool {
	if _, ok := macroContentTypes[p.ContentType()]; ok {
		return true
	}
	_, ok := macroPartNames[p.PartName()]
	return ok
}

// SaveOptions controls how a document is saved.
type SaveOptions struct {
	preserveMacros *bool
}

// SaveOption configures a save operation.
type SaveOption func(*SaveOptions)

// PreserveMacros overrides the extension-based inference: true keeps a
// macro-enabled document intact regardless of destination, false forces
// stripping.
func PreserveMacros(preserve bool) SaveOption {
	return func(o *SaveOptions) {
		p := preserve
		o.preserveMacros = &p
	}
}

func applySaveOptions(opts []SaveOption) *SaveOptions {
	options := &SaveOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// SaveResult reports what a save operation did.
type SaveResult struct {
	// MacrosStripped is true when the document was converted from the
	// macro-enabled to the macro-free variant during this save.
	MacrosStripped bool
	// Destination is the path actually written, after any extension
	// correction. Empty for stream saves.
	Destination string
}

// shouldPreserveMacros decides the target disposition. An explicit flag
// wins; otherwise a filesystem destination whose extension matches the
// macro-enabled one (case-insensitively) preserves, and anything else,
// including a stream target, strips.
func shouldPreserveMacros(dest string, isStream bool, explicit *bool) bool {
	if explicit != nil {
		return *explicit
	}
	if isStream {
		return false
	}
	return strings.EqualFold(filepath.Ext(dest), ExtMacroEnabled)
}

// convertIfNeeded strips macro content from the document in place when it is
// macro-enabled and preservation was not requested. It reports whether a
// conversion happened. The content type is flipped before any pruning so a
// fault mid-prune still leaves a package whose content type and surviving
// relationships agree on being macro-free.
func (d *Document) convertIfNeeded(preserve bool) (bool, error) {
	doc := d.docPart.part
	if doc.ContentType() != opc.CTWMLDocumentMacroEnabledMain || preserve {
		return false, nil
	}

	doc.SetContentType(opc.CTWMLDocumentMain)
	d.removeMacroRelationships()
	d.removeMacroParts()

	if GetGlobalConfig().StrictIntegrity {
		if err := d.pkg.Validate(); err != nil {
			return true, err
		}
	}
	return true, nil
}

// removeMacroRelationships removes the document part's outgoing macro
// relationships, dropping the inline control elements that reference each
// relationship id before deleting the relationship itself, so no markup
// reference outlives its relationship.
func (d *Document) removeMacroRelationships() {
	doc := d.docPart.part
	for _, rel := range doc.Relationships().All() {
		if !isMacroRelType(rel.RelType()) {
			continue
		}
		doc.SetBlob(removeControlElements(doc.Blob(), rel.ID()))
		doc.DropRel(rel.ID())
		GetLogger().Debug("removed macro relationship %s (%s)", rel.ID(), rel.RelType())
	}
}

// removeMacroParts sweeps the whole package for macro-classified parts,
// including ones never reached through a direct document relationship, and
// drops each with a full cascade over every relationship still targeting it.
func (d *Document) removeMacroParts() {
	pkg := d.pkg
	for _, p := range pkg.Parts() {
		if !isMacroPart(p) {
			continue
		}
		pkg.DropPart(p)
		GetLogger().Debug("removed macro part %s (%s)", p.PartName(), p.ContentType())
	}
}

// removeControlElements deletes every <w:control> element whose r:id
// attribute equals rID from the document markup. Finding no such element is
// fine: the reference may already be gone.
func removeControlElements(content []byte, rID opc.RID) []byte {
	id := regexp.QuoteMeta(string(rID))
	selfClosing := regexp.MustCompile(`<w:control\b[^>]*r:id="` + id + `"[^>]*/>`)
	paired := regexp.MustCompile(`(?s)<w:control\b[^>]*r:id="` + id + `"[^>]*>.*?</w:control>`)
	out := selfClosing.ReplaceAll(content, nil)
	out = paired.ReplaceAll(out, nil)
	return out
}

// correctExtension rewrites a macro-enabled extension to the macro-free one.
// Called only after a strip actually happened, so a file never advertises
// macro capability its content no longer has.
func correctExtension(path string) string {
	ext := filepath.Ext(path)
	if !strings.EqualFold(ext, ExtMacroEnabled) {
		return path
	}
	return path[:len(path)-len(ext)] + ExtMacroFree
}
