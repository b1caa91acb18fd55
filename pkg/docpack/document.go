package docpack

import (
	"fmt"

	"github.com/benjaminschreck/go-docpack/pkg/docpack/opc"
)

// DocumentPart is the main document part of a WordprocessingML package. It
// brokers access to the sibling parts the document relates to: settings,
// styles, numbering, comments, headers and footers.
type DocumentPart struct {
	part *opc.Part
}

// Part returns the underlying package part.
func (dp *DocumentPart) Part() *opc.Part { return dp.part }

// ContentType returns the document part's content type.
func (dp *DocumentPart) ContentType() string { return dp.part.ContentType() }

// SettingsPart returns the settings part, creating and relating an empty one
// if the document has none yet.
func (dp *DocumentPart) SettingsPart() (*opc.Part, error) {
	return dp.singletonPart(opc.RTSettings)
}

// StylesPart returns the styles part, creating and relating an empty one if
// the document has none yet.
func (dp *DocumentPart) StylesPart() (*opc.Part, error) {
	return dp.singletonPart(opc.RTStyles)
}

// NumberingPart returns the numbering part, creating and relating an empty
// one if the document has none yet.
func (dp *DocumentPart) NumberingPart() (*opc.Part, error) {
	return dp.singletonPart(opc.RTNumbering)
}

// CommentsPart returns the comments part, creating and relating an empty one
// if the document has none yet.
func (dp *DocumentPart) CommentsPart() (*opc.Part, error) {
	return dp.singletonPart(opc.RTComments)
}

// singletonPart resolves a well-known related part by relationship type.
// Absence is not a fault here: it is the signal to materialize the default
// part, add it to the package and relate to it. A second call finds the part
// just created and returns the identical object.
func (dp *DocumentPart) singletonPart(relType string) (*opc.Part, error) {
	if part, found := dp.part.PartRelatedBy(relType); found {
		return part, nil
	}
	tmpl, ok := partTemplates[relType]
	if !ok {
		return nil, fmt.Errorf("no default part defined for relationship type %s", relType)
	}
	part, err := dp.part.Package().AddPart(tmpl.partName, tmpl.contentType, defaultBlob(tmpl.skeleton))
	if err != nil {
		return nil, err
	}
	dp.part.RelateTo(part, relType)
	GetLogger().Debug("created default part %s for %s", tmpl.partName, relType)
	return part, nil
}

// HeaderPart returns the header part related by rID. Headers are
// caller-managed and can occur many times per document, so an unknown id is
// a RelationshipNotFoundError, never a fabricated default.
func (dp *DocumentPart) HeaderPart(rID opc.RID) (*opc.Part, error) {
	return dp.part.RelatedPart(rID)
}

// FooterPart returns the footer part related by rID. Same contract as
// HeaderPart.
func (dp *DocumentPart) FooterPart(rID opc.RID) (*opc.Part, error) {
	return dp.part.RelatedPart(rID)
}

// AddHeaderPart creates a new empty header part and relates the document to
// it, returning the part and the new relationship id.
func (dp *DocumentPart) AddHeaderPart() (*opc.Part, opc.RID, error) {
	pkg := dp.part.Package()
	part, err := pkg.AddPart(nextPartName(pkg, "header"), opc.CTWMLHeader, defaultBlob(headerSkeleton))
	if err != nil {
		return nil, "", err
	}
	rID := dp.part.RelateTo(part, opc.RTHeader)
	return part, rID, nil
}

// AddFooterPart creates a new empty footer part and relates the document to
// it, returning the part and the new relationship id.
func (dp *DocumentPart) AddFooterPart() (*opc.Part, opc.RID, error) {
	pkg := dp.part.Package()
	part, err := pkg.AddPart(nextPartName(pkg, "footer"), opc.CTWMLFooter, defaultBlob(footerSkeleton))
	if err != nil {
		return nil, "", err
	}
	rID := dp.part.RelateTo(part, opc.RTFooter)
	return part, rID, nil
}

// DropHeaderPart removes the relationship to the header part identified by
// rID. The header part itself is dropped from the package once nothing
// references it.
func (dp *DocumentPart) DropHeaderPart(rID opc.RID) {
	dp.dropRelatedPart(rID)
}

// DropFooterPart removes the relationship to the footer part identified by
// rID.
func (dp *DocumentPart) DropFooterPart(rID opc.RID) {
	dp.dropRelatedPart(rID)
}

func (dp *DocumentPart) dropRelatedPart(rID opc.RID) {
	target, err := dp.part.RelatedPart(rID)
	if err != nil {
		return
	}
	dp.part.DropRel(rID)
	pkg := dp.part.Package()
	if len(pkg.Referrers(target)) == 0 {
		pkg.DropPart(target)
	}
}
