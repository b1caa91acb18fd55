package opc

import (
	"encoding/xml"
	"path"
	"strings"
)

// Wire forms of the two package metadata streams. Field tags follow the
// schema exactly; everything else in the package is opaque part payload.

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Namespace    string            `xml:"xmlns,attr"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type ctDefaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type ctOverrideXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type ctTypesXML struct {
	XMLName   xml.Name        `xml:"Types"`
	Namespace string          `xml:"xmlns,attr"`
	Default   []ctDefaultXML  `xml:"Default"`
	Override  []ctOverrideXML `xml:"Override"`
}

// relsItemFor returns the zip item holding the rels stream for a source:
// "_rels/.rels" for the package root, "word/_rels/document.xml.rels" for
// "/word/document.xml".
func relsItemFor(source string) string {
	if source == "/" {
		return packageRelsItem
	}
	dir, base := path.Split(strings.TrimPrefix(source, "/"))
	return dir + "_rels/" + base + ".rels"
}

// resolveTarget turns a relationship target, which is relative to its
// source's directory, into a package-absolute partname.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(target)
	}
	baseDir := "/"
	if source != "/" {
		baseDir = path.Dir(source)
	}
	return path.Clean(path.Join(baseDir, target))
}

// relativeTarget is the inverse of resolveTarget: it renders a
// package-absolute partname relative to the source's directory for the rels
// stream.
func relativeTarget(source, partName string) string {
	baseDir := "/"
	if source != "/" {
		baseDir = path.Dir(source)
	}
	return slashRel(baseDir, partName)
}

// slashRel is a relative-path computation for slash paths; the stdlib only
// offers the filepath variant, which is separator-dependent.
func slashRel(baseDir, target string) string {
	base := strings.Split(strings.Trim(baseDir, "/"), "/")
	if baseDir == "/" {
		base = nil
	}
	tgt := strings.Split(strings.TrimPrefix(target, "/"), "/")
	common := 0
	for common < len(base) && common < len(tgt)-1 && base[common] == tgt[common] {
		common++
	}
	var segs []string
	for i := common; i < len(base); i++ {
		segs = append(segs, "..")
	}
	segs = append(segs, tgt[common:]...)
	return path.Join(segs...)
}
