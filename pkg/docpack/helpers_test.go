package docpack

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-docpack/pkg/docpack/opc"
)

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <w:body>
    <w:p>
      <w:r>
        <w:object>
          <w:control r:id="rId7" w:name="CommandButton1" w:shapeid="_x0000_i1025"/>
        </w:object>
      </w:r>
    </w:p>
    <w:p/>
  </w:body>
</w:document>`

// newMacroDocument builds a macro-enabled document matching the shape of a
// real DOCM: a macro-enabled main part with a control element referencing
// rId7, a VBA project part behind rId7, a VBA data part, and an ordinary
// styles part that must survive conversion.
func newMacroDocument(t *testing.T) *Document {
	t.Helper()
	pkg := opc.NewPackage()

	main, err := pkg.AddPart("/word/document.xml", opc.CTWMLDocumentMacroEnabledMain, []byte(testDocumentXML))
	require.NoError(t, err)
	pkg.Relationships().Add(opc.RTOfficeDocument, main)

	styles, err := pkg.AddPart("/word/styles.xml", opc.CTWMLStyles, defaultBlob(`<w:styles xmlns:w="`+wNamespace+`"/>`))
	require.NoError(t, err)
	main.RelateTo(styles, opc.RTStyles)

	vbaProject, err := pkg.AddPart("/word/vbaProject.bin", opc.CTVBAProject, []byte{0xd0, 0xcf, 0x11, 0xe0})
	require.NoError(t, err)
	require.NoError(t, main.Relationships().AddWithID("rId7", opc.RTVBAProject, vbaProject))

	vbaData, err := pkg.AddPart("/word/vbaData.xml", opc.CTVBAData, []byte(`<wne:vbaSuppData xmlns:wne="http://schemas.microsoft.com/office/word/2006/wordml"/>`))
	require.NoError(t, err)
	vbaProject.RelateTo(vbaData, opc.RTVBAData)

	doc, err := NewDocument(pkg)
	require.NoError(t, err)
	return doc
}

// newPlainDocument builds a macro-free document.
func newPlainDocument(t *testing.T) *Document {
	t.Helper()
	pkg := opc.NewPackage()
	main, err := pkg.AddPart("/word/document.xml", opc.CTWMLDocumentMain,
		defaultBlob(`<w:document xmlns:w="`+wNamespace+`"><w:body><w:p/></w:body></w:document>`))
	require.NoError(t, err)
	pkg.Relationships().Add(opc.RTOfficeDocument, main)

	doc, err := NewDocument(pkg)
	require.NoError(t, err)
	return doc
}

// graphSnapshot flattens the part and relationship sets into a comparable
// form for no-op and idempotence checks.
func graphSnapshot(pkg *opc.Package) map[string][]string {
	snap := make(map[string][]string)
	var pkgRels []string
	for _, rel := range pkg.Relationships().All() {
		pkgRels = append(pkgRels, string(rel.ID())+" "+rel.RelType()+" "+rel.TargetRef())
	}
	snap["/"] = pkgRels
	for _, p := range pkg.Parts() {
		entries := []string{p.ContentType(), string(p.Blob())}
		for _, rel := range p.Relationships().All() {
			entries = append(entries, string(rel.ID())+" "+rel.RelType()+" "+rel.TargetRef())
		}
		snap[p.PartName()] = entries
	}
	return snap
}
