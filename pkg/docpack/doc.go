// Package docpack reads, mutates and writes Microsoft Word document
// packages (DOCX/DOCM). It maintains the package's part/relationship graph
// with referential integrity and converts macro-enabled documents to the
// macro-free variant on save.
//
// Basic Usage:
//
//	// Open a macro-enabled document
//	doc, err := docpack.OpenFile("report.docm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Saving to a .docx destination strips the VBA project, ActiveX
//	// controls and every relationship pointing at them
//	result, err := doc.Save("report.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("macros stripped:", result.MacrosStripped)
//
//	// Keep the macros instead
//	_, err = doc.Save("copy.docm", docpack.PreserveMacros(true))
//
// Related parts such as styles or settings are materialized lazily:
//
//	styles, err := doc.DocumentPart().StylesPart()
//
// returns the existing styles part, or creates and relates an empty one if
// the document has none. Headers and footers are looked up by relationship
// id and are never fabricated.
//
// The part/relationship graph itself lives in the opc subpackage.
package docpack
