package docpack

import (
	"bytes"
	"fmt"
	"io"

	"github.com/benjaminschreck/go-docpack/pkg/docpack/opc"
)

// Document is an open WordprocessingML package together with its main
// document part. A Document is not safe for concurrent mutation.
type Document struct {
	pkg     *opc.Package
	docPart *DocumentPart
}

// Open reads a document package from r.
func Open(r io.ReaderAt, size int64) (*Document, error) {
	pkg, err := opc.ReadPackage(r, size)
	if err != nil {
		return nil, NewPackageError("open", "", err)
	}
	return newDocument(pkg)
}

// OpenBytes reads a document package from in-memory zip data.
func OpenBytes(data []byte) (*Document, error) {
	return Open(bytes.NewReader(data), int64(len(data)))
}

// OpenFile reads a document package from a file path.
func OpenFile(path string) (*Document, error) {
	doc, err := opc.ReadPackageFile(path)
	if err != nil {
		return nil, NewPackageError("open", path, err)
	}
	return newDocument(doc)
}

// OpenFileCached reads a document package from a file path, serving the raw
// bytes from the global source cache when possible. The returned Document is
// always a fresh graph; only the source bytes are shared.
func OpenFileCached(path string) (*Document, error) {
	data, err := defaultCache.Load(path)
	if err != nil {
		return nil, NewPackageError("open", path, err)
	}
	doc, err := OpenBytes(data)
	if err != nil {
		return nil, NewPackageError("open", path, err)
	}
	return doc, nil
}

// NewDocument wraps an already-loaded package. Useful for packages built
// programmatically or read through custom I/O.
func NewDocument(pkg *opc.Package) (*Document, error) {
	return newDocument(pkg)
}

func newDocument(pkg *opc.Package) (*Document, error) {
	part, err := mainDocumentPart(pkg)
	if err != nil {
		return nil, err
	}
	return &Document{pkg: pkg, docPart: &DocumentPart{part: part}}, nil
}

// mainDocumentPart locates the main document part: by the package-level
// officeDocument relationship when present, otherwise by scanning for a part
// carrying one of the two main-document content types.
func mainDocumentPart(pkg *opc.Package) (*opc.Part, error) {
	if rel, ok := pkg.Relationships().ByType(opc.RTOfficeDocument); ok && !rel.IsExternal() {
		return rel.TargetPart(), nil
	}
	for _, p := range pkg.Parts() {
		switch p.ContentType() {
		case opc.CTWMLDocumentMain, opc.CTWMLDocumentMacroEnabledMain:
			return p, nil
		}
	}
	return nil, fmt.Errorf("package contains no main document part")
}

// Package returns the underlying package.
func (d *Document) Package() *opc.Package { return d.pkg }

// DocumentPart returns the main document part.
func (d *Document) DocumentPart() *DocumentPart { return d.docPart }

// Save writes the document to a file path, converting a macro-enabled
// document to the macro-free variant first unless the destination extension
// or an explicit PreserveMacros option says otherwise. When a conversion
// happened and the destination still carries the macro-enabled extension,
// the extension is corrected; SaveResult.Destination is the path actually
// written.
//
// A failed save leaves the in-memory document in its post-conversion state.
// Callers needing all-or-nothing semantics on the graph should save to a
// scratch location first.
func (d *Document) Save(path string, opts ...SaveOption) (*SaveResult, error) {
	options := applySaveOptions(opts)
	preserve := shouldPreserveMacros(path, false, options.preserveMacros)

	stripped, err := d.convertIfNeeded(preserve)
	if err != nil {
		return nil, err
	}

	dest := path
	if stripped {
		dest = correctExtension(dest)
	}
	if err := d.pkg.Save(dest); err != nil {
		return nil, NewPackageError("save", dest, err)
	}
	if stripped {
		GetLogger().Info("converted macro-enabled document while saving to %s", dest)
	}
	return &SaveResult{MacrosStripped: stripped, Destination: dest}, nil
}

// SaveTo writes the document to a stream. Stream targets have no extension
// to infer from, so a macro-enabled document is stripped unless an explicit
// PreserveMacros(true) option is given.
func (d *Document) SaveTo(w io.Writer, opts ...SaveOption) (*SaveResult, error) {
	options := applySaveOptions(opts)
	preserve := shouldPreserveMacros("", true, options.preserveMacros)

	stripped, err := d.convertIfNeeded(preserve)
	if err != nil {
		return nil, err
	}
	if err := d.pkg.SaveTo(w); err != nil {
		return nil, NewPackageError("save", "", err)
	}
	return &SaveResult{MacrosStripped: stripped}, nil
}
