package styles

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"
)

func TestParseXML(t *testing.T) {
	doc, err := parseXML(loadSampleStyles(t))
	if err != nil {
		t.Fatalf("parseXML: %v", err)
	}
	if doc.Root().Tag != "styles" {
		t.Fatalf("unexpected root %q", doc.Root().Tag)
	}
}

func TestParseXML_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"whitespace", "  \n "},
		{"prolog only", `<?xml version="1.0" encoding="UTF-8"?>`},
		{"plain text", "not xml at all"},
		{"truncated tag", `<w:styles ` + wns + `><w:style`},
		{"unclosed element", `<w:styles ` + wns + `><w:style w:type="paragraph">`},
		{"mismatched end", `<w:styles ` + wns + `><w:style></w:name></w:styles>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseXML([]byte(tt.data)); err == nil {
				t.Fatalf("expected error for %q", tt.data)
			}
		})
	}
}

func TestParseXML_DeclaredEncoding(t *testing.T) {
	data := []byte("<?xml version=\"1.0\" encoding=\"windows-1252\"?>\n" +
		`<w:styles ` + wns + `><w:style w:type="paragraph"><w:name w:val="Caf` + "\xe9" + `"/></w:style></w:styles>`)

	doc, err := parseXML(data)
	if err != nil {
		t.Fatalf("parseXML: %v", err)
	}
	nodes := selectStyleNodes(doc, SelectAll)
	if len(nodes) != 1 {
		t.Fatalf("expected one style, got %d", len(nodes))
	}
	if got := extractStyle(nodes[0], defaultOpts()).Name; got != "Café" {
		t.Fatalf("expected decoded name Café, got %q", got)
	}
}

func TestParseXML_BOM(t *testing.T) {
	const body = `<?xml version="1.0" encoding="%s"?>` +
		`<w:styles ` + wns + `><w:style w:type="paragraph"><w:name w:val="Normál"/></w:style></w:styles>`

	utf16 := func(order unicode.Endianness, s string) []byte {
		enc := unicode.UTF16(order, unicode.UseBOM).NewEncoder()
		out, err := enc.Bytes([]byte(s))
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		return out
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"utf-8 bom", append([]byte("\xef\xbb\xbf"), fmt.Sprintf(body, "UTF-8")...)},
		{"utf-16le bom", utf16(unicode.LittleEndian, fmt.Sprintf(body, "UTF-16"))},
		{"utf-16be bom", utf16(unicode.BigEndian, fmt.Sprintf(body, "UTF-16"))},
		{"utf-16le bom no prolog", utf16(unicode.LittleEndian, body[strings.Index(body, "?>")+2:])},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parseXML(tt.data)
			if err != nil {
				t.Fatalf("parseXML: %v", err)
			}
			nodes := selectStyleNodes(doc, SelectAll)
			if len(nodes) != 1 {
				t.Fatalf("expected one style, got %d", len(nodes))
			}
			if got := extractStyle(nodes[0], defaultOpts()).Name; got != "Normál" {
				t.Fatalf("expected name Normál, got %q", got)
			}
		})
	}
}
