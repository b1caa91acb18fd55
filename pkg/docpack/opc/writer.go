package opc

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/flate"
)

// SaveTo serializes the package as a zip container. Output is deterministic:
// metadata streams first, then parts in partname order.
func (pkg *Package) SaveTo(w io.Writer) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})

	if err := writeXMLItem(zw, contentTypesItem, pkg.contentTypesXML()); err != nil {
		return err
	}
	if err := writeRelsItem(zw, pkg.rels); err != nil {
		return err
	}
	for _, p := range pkg.Parts() {
		item := strings.TrimPrefix(p.PartName(), "/")
		f, err := zw.Create(item)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", item, err)
		}
		if _, err := f.Write(p.Blob()); err != nil {
			return fmt.Errorf("failed to write %s: %w", item, err)
		}
		if err := writeRelsItem(zw, p.Relationships()); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize zip container: %w", err)
	}
	return nil
}

// Save serializes the package to a file path. The write is atomic on
// platforms with atomic rename: the package is written to a uniquely named
// temporary file in the destination directory and renamed into place, so a
// failed save never leaves a truncated package behind.
func (pkg *Package) Save(path string) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	if err := pkg.SaveTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move package into place: %w", err)
	}
	return nil
}

// contentTypesXML builds the [Content_Types].xml stream: the package's
// extension defaults plus an override for every part whose content type the
// defaults do not already produce.
func (pkg *Package) contentTypesXML() ctTypesXML {
	types := ctTypesXML{Namespace: nsContentTypes}

	exts := make([]string, 0, len(pkg.defaults))
	for ext := range pkg.defaults {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		types.Default = append(types.Default, ctDefaultXML{
			Extension:   ext,
			ContentType: pkg.defaults[ext],
		})
	}

	for _, p := range pkg.Parts() {
		if ct, ok := pkg.defaultFor(p.PartName()); ok && ct == p.ContentType() {
			continue
		}
		types.Override = append(types.Override, ctOverrideXML{
			PartName:    p.PartName(),
			ContentType: p.ContentType(),
		})
	}
	return types
}

func writeRelsItem(zw *zip.Writer, rs *Relationships) error {
	if rs.Len() == 0 {
		return nil
	}
	rels := relationshipsXML{Namespace: nsRelationships}
	for _, rel := range rs.All() {
		r := relationshipXML{ID: string(rel.ID()), Type: rel.RelType()}
		if rel.IsExternal() {
			r.Target = rel.TargetRef()
			r.TargetMode = "External"
		} else {
			r.Target = relativeTarget(rs.Source(), rel.TargetPart().PartName())
		}
		rels.Relationship = append(rels.Relationship, r)
	}
	return writeXMLItem(zw, relsItemFor(rs.Source()), rels)
}

func writeXMLItem(zw *zip.Writer, item string, v interface{}) error {
	f, err := zw.Create(item)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", item, err)
	}
	content, err := xml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", item, err)
	}
	if _, err := f.Write([]byte(xml.Header)); err != nil {
		return fmt.Errorf("failed to write %s: %w", item, err)
	}
	if _, err := f.Write(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", item, err)
	}
	return nil
}
