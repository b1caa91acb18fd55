package opc

// Content types used by WordprocessingML packages. These are fixed MIME-like
// identifiers defined by the package format; comparisons are exact string
// equality, never case-folded.
const (
	CTWMLDocumentMain             = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	CTWMLDocumentMacroEnabledMain = "application/vnd.ms-word.document.macroEnabled.main+xml"
	CTWMLSettings                 = "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"
	CTWMLStyles                   = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	CTWMLNumbering                = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
	CTWMLComments                 = "application/vnd.openxmlformats-officedocument.wordprocessingml.comments+xml"
	CTWMLHeader                   = "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"
	CTWMLFooter                   = "application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"

	CTVBAProject = "application/vnd.ms-word.vbaProject"
	CTVBAData    = "application/vnd.ms-word.vbaData+xml"
	CTActiveX    = "application/vnd.ms-office.activeX"
	CTActiveXXML = "application/vnd.ms-office.activeX+xml"

	CTRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	CTXML           = "application/xml"
)

// Relationship types. Fixed URI constants defined by the package format.
const (
	RTOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RTSettings       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings"
	RTStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RTNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	RTComments       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/comments"
	RTHeader         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	RTFooter         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	RTHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"

	RTVBAProject = "http://schemas.microsoft.com/office/2006/relationships/vbaProject"
	RTVBAData    = "http://schemas.microsoft.com/office/2006/relationships/wordVbaData"
	RTControl    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/control"
)

// XML namespaces for the package-level metadata streams.
const (
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
)

// Well-known zip item names that are package metadata, not parts.
const (
	contentTypesItem = "[Content_Types].xml"
	packageRelsItem  = "_rels/.rels"
)
