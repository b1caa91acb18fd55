package opc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// ReadPackage reads a package from zip data. It loads every part with its
// content type resolved against [Content_Types].xml, then wires all
// relationship sets, resolving internal targets to live parts.
func ReadPackage(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip container: %w", err)
	}

	items := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		items[f.Name] = f
	}

	pkg := NewPackage()
	overrides, err := readContentTypes(pkg, items)
	if err != nil {
		return nil, err
	}

	// First pass: create every part so relationship targets can resolve
	// regardless of zip item order.
	for name, f := range items {
		if name == contentTypesItem || isRelsItem(name) || strings.HasSuffix(name, "/") {
			continue
		}
		blob, err := readItem(f)
		if err != nil {
			return nil, err
		}
		partName := "/" + name
		contentType, ok := overrides[partName]
		if !ok {
			contentType, ok = pkg.defaultFor(partName)
		}
		if !ok {
			return nil, fmt.Errorf("no content type declared for part %s", partName)
		}
		if _, err := pkg.AddPart(partName, contentType, blob); err != nil {
			return nil, err
		}
	}

	// Second pass: package-level rels, then each part's rels.
	if err := readRels(pkg, items, "/", pkg.rels); err != nil {
		return nil, err
	}
	for _, p := range pkg.Parts() {
		if err := readRels(pkg, items, p.PartName(), p.Relationships()); err != nil {
			return nil, err
		}
	}
	return pkg, nil
}

// ReadPackageBytes reads a package from an in-memory zip.
func ReadPackageBytes(data []byte) (*Package, error) {
	return ReadPackage(bytes.NewReader(data), int64(len(data)))
}

// ReadPackageFile reads a package from a file path.
func ReadPackageFile(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ReadPackageBytes(data)
}

func readContentTypes(pkg *Package, items map[string]*zip.File) (map[string]string, error) {
	f, ok := items[contentTypesItem]
	if !ok {
		return nil, fmt.Errorf("not a valid package: missing %s", contentTypesItem)
	}
	content, err := readItem(f)
	if err != nil {
		return nil, err
	}
	var types ctTypesXML
	if err := xml.Unmarshal(content, &types); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", contentTypesItem, err)
	}
	for _, d := range types.Default {
		pkg.SetContentTypeDefault(d.Extension, d.ContentType)
	}
	overrides := make(map[string]string, len(types.Override))
	for _, o := range types.Override {
		overrides[o.PartName] = o.ContentType
	}
	return overrides, nil
}

func readRels(pkg *Package, items map[string]*zip.File, source string, rs *Relationships) error {
	f, ok := items[relsItemFor(source)]
	if !ok {
		// Missing rels stream means the source has no relationships.
		return nil
	}
	content, err := readItem(f)
	if err != nil {
		return err
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(content, &rels); err != nil {
		return fmt.Errorf("failed to parse relationships of %s: %w", source, err)
	}
	for _, r := range rels.Relationship {
		if strings.EqualFold(r.TargetMode, "External") {
			if err := rs.AddExternalWithID(RID(r.ID), r.Type, r.Target); err != nil {
				return err
			}
			continue
		}
		targetName := resolveTarget(source, r.Target)
		target, err := pkg.Part(targetName)
		if err != nil {
			return fmt.Errorf("relationship %s of %s targets missing part %s",
				r.ID, source, targetName)
		}
		if err := rs.AddWithID(RID(r.ID), r.Type, target); err != nil {
			return err
		}
	}
	return nil
}

func readItem(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()
	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	return content, nil
}

func isRelsItem(name string) bool {
	return path.Base(path.Dir(name)) == "_rels" && strings.HasSuffix(name, ".rels")
}
