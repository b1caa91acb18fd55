package docpack

import (
	"fmt"

	"github.com/benjaminschreck/go-docpack/pkg/docpack/opc"
)

const wNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// partTemplate describes how to materialize a well-known part that a
// document is expected to have at most one of, when it is absent.
type partTemplate struct {
	partName    string
	contentType string
	skeleton    string
}

// Minimal valid skeletons for defaulted parts. Word accepts an empty root
// element for each of these streams.
var partTemplates = map[string]partTemplate{
	opc.RTSettings: {
		partName:    "/word/settings.xml",
		contentType: opc.CTWMLSettings,
		skeleton:    `<w:settings xmlns:w="` + wNamespace + `"/>`,
	},
	opc.RTStyles: {
		partName:    "/word/styles.xml",
		contentType: opc.CTWMLStyles,
		skeleton:    `<w:styles xmlns:w="` + wNamespace + `"/>`,
	},
	opc.RTNumbering: {
		partName:    "/word/numbering.xml",
		contentType: opc.CTWMLNumbering,
		skeleton:    `<w:numbering xmlns:w="` + wNamespace + `"/>`,
	},
	opc.RTComments: {
		partName:    "/word/comments.xml",
		contentType: opc.CTWMLComments,
		skeleton:    `<w:comments xmlns:w="` + wNamespace + `"/>`,
	},
}

const (
	headerSkeleton = `<w:hdr xmlns:w="` + wNamespace + `"><w:p/></w:hdr>`
	footerSkeleton = `<w:ftr xmlns:w="` + wNamespace + `"><w:p/></w:ftr>`
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

func defaultBlob(skeleton string) []byte {
	return []byte(xmlDeclaration + skeleton)
}

// nextPartName returns the first unused name of the form
// /word/<prefix>N.xml, N counting up from 1.
func nextPartName(pkg *opc.Package, prefix string) string {
	for n := 1; ; n++ {
		name := fmt.Sprintf("/word/%s%d.xml", prefix, n)
		if !pkg.HasPart(name) {
			return name
		}
	}
}
