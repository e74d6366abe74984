package styles

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
)

const sampleStyles = "testdata/styles.xml"

type part struct {
	name    string
	content []byte
}

func loadSampleStyles(t *testing.T) []byte {
	t.Helper()

	data, err := os.ReadFile(sampleStyles)
	if err != nil {
		t.Fatalf("read sample styles: %v", err)
	}
	return data
}

func buildDocx(t *testing.T, parts ...part) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, p := range parts {
		fw, err := w.Create(p.name)
		if err != nil {
			t.Fatalf("create %s in zip: %v", p.name, err)
		}
		if _, err := fw.Write(p.content); err != nil {
			t.Fatalf("write %s in zip: %v", p.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func writeDocx(t *testing.T, parts ...part) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sample.docx")
	if err := os.WriteFile(path, buildDocx(t, parts...), 0644); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	return path
}

func sampleDocx(t *testing.T) string {
	t.Helper()

	return writeDocx(t,
		part{"[Content_Types].xml", []byte(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`)},
		part{"word/document.xml", []byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`)},
		part{DefaultStylesPart, loadSampleStyles(t)},
	)
}

func mustElement(t *testing.T, xml string) *etree.Element {
	t.Helper()

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		t.Fatalf("read xml: %v", err)
	}
	if doc.Root() == nil {
		t.Fatalf("xml has no root element")
	}
	return doc.Root()
}

func mustDocument(t *testing.T, xml string) *etree.Document {
	t.Helper()

	doc, err := parseXML([]byte(xml))
	if err != nil {
		t.Fatalf("parse xml: %v", err)
	}
	return doc
}

func defaultOpts() *Options {
	opts := DefaultOptions()
	return &opts
}
