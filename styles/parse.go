package styles

import (
	"errors"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errNoRoot = errors.New("document has no root element")

// parseXML reads styles part into etree DOM. Encoding is detected from
// BOM first, then from prolog. Tree is never modified after this point.
func parseXML(data []byte) (*etree.Document, error) {
	// UTF-16 parts are converted to UTF-8 here, BOM is stripped, anything
	// without BOM is left as is for prolog label to decide.
	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charsetReader,
		ValidateInput: true,
	}
	if err := doc.ReadFromBytes(decoded); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, errNoRoot
	}
	return doc, nil
}

// charsetReader passes UTF-16 labelled input through: it is already decoded
// by the time prolog is seen.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(label)), "utf-16") {
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}
