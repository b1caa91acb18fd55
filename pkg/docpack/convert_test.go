package docpack

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-docpack/pkg/docpack/opc"
)

func TestShouldPreserveMacros(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name     string
		dest     string
		isStream bool
		explicit *bool
		want     bool
	}{
		{name: "explicit preserve wins over docx destination", dest: "out.docx", explicit: &yes, want: true},
		{name: "explicit strip wins over docm destination", dest: "out.docm", explicit: &no, want: false},
		{name: "docm extension preserves", dest: "out.docm", want: true},
		{name: "mixed-case docm extension preserves", dest: "report.DOCM", want: true},
		{name: "docx extension strips", dest: "out.docx", want: false},
		{name: "no extension strips", dest: "out", want: false},
		{name: "stream strips", isStream: true, want: false},
		{name: "stream with explicit preserve", isStream: true, explicit: &yes, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldPreserveMacros(tt.dest, tt.isStream, tt.explicit))
		})
	}
}

func TestCorrectExtension(t *testing.T) {
	assert.Equal(t, "report.docx", correctExtension("report.docm"))
	assert.Equal(t, "report.docx", correctExtension("report.DOCM"))
	assert.Equal(t, "report.docx", correctExtension("report.docx"))
	assert.Equal(t, "report", correctExtension("report"))
	assert.Equal(t, filepath.Join("a", "b.docx"), correctExtension(filepath.Join("a", "b.docm")))
}

func TestRemoveControlElements(t *testing.T) {
	tests := []struct {
		name    string
		content string
		rID     opc.RID
		want    string
	}{
		{
			name:    "self-closing element",
			content: `<w:body><w:control r:id="rId7" w:name="b1"/><w:p/></w:body>`,
			rID:     "rId7",
			want:    `<w:body><w:p/></w:body>`,
		},
		{
			name:    "paired element",
			content: `<w:body><w:control r:id="rId7"><w:ocx/></w:control><w:p/></w:body>`,
			rID:     "rId7",
			want:    `<w:body><w:p/></w:body>`,
		},
		{
			name:    "other ids untouched",
			content: `<w:body><w:control r:id="rId8"/></w:body>`,
			rID:     "rId7",
			want:    `<w:body><w:control r:id="rId8"/></w:body>`,
		},
		{
			name:    "no reference present is tolerated",
			content: `<w:body><w:p/></w:body>`,
			rID:     "rId7",
			want:    `<w:body><w:p/></w:body>`,
		},
		{
			name:    "multiple references all removed",
			content: `<w:body><w:control r:id="rId7"/><w:p/><w:control r:id="rId7"/></w:body>`,
			rID:     "rId7",
			want:    `<w:body><w:p/></w:body>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := removeControlElements([]byte(tt.content), tt.rID)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

// Scenario: macro-enabled document with a VBA relationship rId7, a VBA
// project part and an inline control referencing rId7, saved without
// preservation.
func TestSave_StripsMacros(t *testing.T) {
	doc := newMacroDocument(t)
	pkg := doc.Package()
	path := filepath.Join(t.TempDir(), "out.docx")

	result, err := doc.Save(path)
	require.NoError(t, err)
	assert.True(t, result.MacrosStripped)
	assert.Equal(t, path, result.Destination)

	main := doc.DocumentPart().Part()
	assert.Equal(t, opc.CTWMLDocumentMain, main.ContentType())

	_, err = main.Relationships().ByID("rId7")
	assert.True(t, opc.IsRelationshipNotFound(err))
	assert.False(t, pkg.HasPart("/word/vbaProject.bin"))
	assert.False(t, pkg.HasPart("/word/vbaData.xml"))
	assert.NotContains(t, string(main.Blob()), "<w:control")

	// Ordinary parts survive
	assert.True(t, pkg.HasPart("/word/styles.xml"))

	// Integrity: every remaining relationship targets a live part
	require.NoError(t, pkg.Validate())

	// The written file reopens as a macro-free document
	reopened, err := OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, opc.CTWMLDocumentMain, reopened.DocumentPart().ContentType())
	assert.False(t, reopened.Package().HasPart("/word/vbaProject.bin"))
}

// Scenario: same document, explicit preserve.
func TestSave_PreserveMacrosExplicit(t *testing.T) {
	doc := newMacroDocument(t)
	before := graphSnapshot(doc.Package())
	path := filepath.Join(t.TempDir(), "out.docx")

	result, err := doc.Save(path, PreserveMacros(true))
	require.NoError(t, err)
	assert.False(t, result.MacrosStripped)
	assert.Equal(t, path, result.Destination)

	assert.Equal(t, opc.CTWMLDocumentMacroEnabledMain, doc.DocumentPart().ContentType())
	assert.Equal(t, before, graphSnapshot(doc.Package()))
}

// Scenario: destination says .docm but the document is already macro-free;
// nothing converts and the path is left alone.
func TestSave_MacroFreeDocumentToDocmPath(t *testing.T) {
	doc := newPlainDocument(t)
	before := graphSnapshot(doc.Package())
	path := filepath.Join(t.TempDir(), "report.docm")

	result, err := doc.Save(path, PreserveMacros(false))
	require.NoError(t, err)
	assert.False(t, result.MacrosStripped)
	assert.Equal(t, path, result.Destination)
	assert.Equal(t, before, graphSnapshot(doc.Package()))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

// Scenario: mixed-case .DOCM destination with no explicit flag; inference
// preserves, and the extension stays.
func TestSave_MixedCaseDocmInfersPreserve(t *testing.T) {
	doc := newMacroDocument(t)
	path := filepath.Join(t.TempDir(), "report.DOCM")

	result, err := doc.Save(path)
	require.NoError(t, err)
	assert.False(t, result.MacrosStripped)
	assert.Equal(t, path, result.Destination)
	assert.Equal(t, opc.CTWMLDocumentMacroEnabledMain, doc.DocumentPart().ContentType())
}

// Explicit strip to a .docm path corrects the extension so the file does not
// promise macros it no longer has.
func TestSave_ExtensionCorrectedOnStrip(t *testing.T) {
	doc := newMacroDocument(t)
	dir := t.TempDir()

	result, err := doc.Save(filepath.Join(dir, "report.docm"), PreserveMacros(false))
	require.NoError(t, err)
	assert.True(t, result.MacrosStripped)
	assert.Equal(t, filepath.Join(dir, "report.docx"), result.Destination)

	_, err = os.Stat(filepath.Join(dir, "report.docx"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "report.docm"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveTo_StreamStripsByDefault(t *testing.T) {
	doc := newMacroDocument(t)
	buf := new(bytes.Buffer)

	result, err := doc.SaveTo(buf)
	require.NoError(t, err)
	assert.True(t, result.MacrosStripped)
	assert.Empty(t, result.Destination)

	reopened, err := OpenBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, opc.CTWMLDocumentMain, reopened.DocumentPart().ContentType())
	assert.False(t, reopened.Package().HasPart("/word/vbaProject.bin"))
	require.NoError(t, reopened.Package().Validate())
}

func TestSaveTo_StreamPreserveExplicit(t *testing.T) {
	doc := newMacroDocument(t)
	buf := new(bytes.Buffer)

	result, err := doc.SaveTo(buf, PreserveMacros(true))
	require.NoError(t, err)
	assert.False(t, result.MacrosStripped)

	reopened, err := OpenBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, opc.CTWMLDocumentMacroEnabledMain, reopened.DocumentPart().ContentType())
	assert.True(t, reopened.Package().HasPart("/word/vbaProject.bin"))
}

// Running the converter twice yields the same graph as running it once.
func TestConvert_Idempotent(t *testing.T) {
	doc := newMacroDocument(t)

	stripped, err := doc.convertIfNeeded(false)
	require.NoError(t, err)
	require.True(t, stripped)
	after := graphSnapshot(doc.Package())

	stripped, err = doc.convertIfNeeded(false)
	require.NoError(t, err)
	assert.False(t, stripped)
	assert.Equal(t, after, graphSnapshot(doc.Package()))
}

// A macro part reachable only through a package-level relationship is still
// swept, together with the relationship pointing at it.
func TestConvert_SweepsIndirectMacroParts(t *testing.T) {
	doc := newMacroDocument(t)
	pkg := doc.Package()
	activeX, err := pkg.AddPart("/word/activeX/activeX1.xml", opc.CTActiveXXML, []byte("<ax:ocx/>"))
	require.NoError(t, err)
	pkg.Relationships().Add(opc.RTControl, activeX)

	stripped, err := doc.convertIfNeeded(false)
	require.NoError(t, err)
	require.True(t, stripped)

	assert.False(t, pkg.HasPart("/word/activeX/activeX1.xml"))
	for _, rel := range pkg.Relationships().All() {
		assert.NotEqual(t, opc.RTControl, rel.RelType())
	}
	require.NoError(t, pkg.Validate())
}

// A part under a macro partname qualifies for the sweep even when its
// content type is generic.
func TestConvert_SweepsByPartName(t *testing.T) {
	pkg := opc.NewPackage()
	main, err := pkg.AddPart("/word/document.xml", opc.CTWMLDocumentMacroEnabledMain, []byte("<w:document/>"))
	require.NoError(t, err)
	pkg.Relationships().Add(opc.RTOfficeDocument, main)
	_, err = pkg.AddPart("/word/vbaData.xml", opc.CTXML, []byte("<data/>"))
	require.NoError(t, err)

	doc, err := NewDocument(pkg)
	require.NoError(t, err)
	stripped, err := doc.convertIfNeeded(false)
	require.NoError(t, err)
	require.True(t, stripped)

	assert.False(t, pkg.HasPart("/word/vbaData.xml"))
}

func TestConvert_StrictIntegrity(t *testing.T) {
	old := GetGlobalConfig()
	defer SetGlobalConfig(old)
	cfg := *old
	cfg.StrictIntegrity = true
	SetGlobalConfig(&cfg)

	doc := newMacroDocument(t)
	stripped, err := doc.convertIfNeeded(false)
	require.NoError(t, err)
	assert.True(t, stripped)
}

func TestSave_FailedSaveKeepsConvertedState(t *testing.T) {
	doc := newMacroDocument(t)
	path := filepath.Join(t.TempDir(), "missing-dir", "out.docx")

	_, err := doc.Save(path)
	require.Error(t, err)
	assert.True(t, IsPackageError(err))

	// The in-memory package is left in its post-conversion state
	assert.Equal(t, opc.CTWMLDocumentMain, doc.DocumentPart().ContentType())
	assert.False(t, doc.Package().HasPart("/word/vbaProject.bin"))
}

func TestOpenFile_RoundTripThroughDisk(t *testing.T) {
	doc := newMacroDocument(t)
	dir := t.TempDir()
	docmPath := filepath.Join(dir, "in.docm")

	_, err := doc.Save(docmPath, PreserveMacros(true))
	require.NoError(t, err)

	// Reopen the macro-enabled file and convert it
	reopened, err := OpenFile(docmPath)
	require.NoError(t, err)
	assert.Equal(t, opc.CTWMLDocumentMacroEnabledMain, reopened.DocumentPart().ContentType())
	assert.True(t, strings.Contains(string(reopened.DocumentPart().Part().Blob()), `r:id="rId7"`))

	result, err := reopened.Save(filepath.Join(dir, "out.docx"))
	require.NoError(t, err)
	assert.True(t, result.MacrosStripped)

	final, err := OpenFile(filepath.Join(dir, "out.docx"))
	require.NoError(t, err)
	assert.Equal(t, opc.CTWMLDocumentMain, final.DocumentPart().ContentType())
	assert.NotContains(t, string(final.DocumentPart().Part().Blob()), "<w:control")
	require.NoError(t, final.Package().Validate())
}
