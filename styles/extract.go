package styles

import (
	"strings"

	"github.com/beevik/etree"
)

// Element names with special meaning during extraction.
const (
	tagName    = "name"
	tagRunPr   = "rPr"
	tagParaPr  = "pPr"
	tagRFonts  = "rFonts"
	tagSize    = "sz"
	attrVal    = "val"
	attrType   = "type"
	fontPrefix = "font:"
)

// font slots in priority order
var fontSlots = []string{"ascii", "hAnsi", "eastAsia"}

// extractStyle converts single style element into a Record. Missing pieces
// are never an error, they simply stay empty.
//
// Properties are a flat map: when the same key appears on different levels
// (attribute of the style, child of pPr, child of rPr) the one met last in
// document order wins. Nothing is merged or renamed.
func extractStyle(el *etree.Element, opts *Options) Record {
	if el == nil {
		panic("styles: nil style element")
	}

	rec := Record{Properties: make(map[string]string)}

	if name := childElement(el, tagName); name != nil {
		rec.Name = attrValue(name, attrVal)
	}
	rec.Type = attrValue(el, attrType)

	for _, a := range el.Attr {
		if a.Key == attrType || isNamespaceDecl(a) {
			continue
		}
		rec.Properties[opts.attrKey(a)] = a.Value
	}

	for _, child := range el.ChildElements() {
		switch {
		case child.Tag == tagRunPr:
			extractFont(child, &rec, opts)
			if opts.Flatten {
				flatten(child, &rec, opts, true)
			}
		case child.Tag == tagParaPr && opts.Flatten:
			flatten(child, &rec, opts, false)
		default:
			rec.Properties[opts.elementKey(child)] = propertyValue(child)
		}
	}
	return rec
}

// flatten stores children of rPr/pPr as if they were direct properties of
// the style. Font elements consumed by extractFont are skipped for rPr.
func flatten(el *etree.Element, rec *Record, opts *Options, run bool) {
	for _, child := range el.ChildElements() {
		if run && (child.Tag == tagRFonts || child.Tag == tagSize) {
			continue
		}
		rec.Properties[opts.elementKey(child)] = propertyValue(child)
	}
}

// extractFont lifts font family and size out of rPr.
func extractFont(el *etree.Element, rec *Record, opts *Options) {
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case tagRFonts:
			if len(rec.FontName) == 0 {
				for _, slot := range fontSlots {
					if v := attrValue(child, slot); len(v) > 0 {
						rec.FontName = v
						break
					}
				}
			}
			if opts.FontKeys == FontKeysNamespaced {
				for _, a := range child.Attr {
					if !isNamespaceDecl(a) {
						rec.Properties[fontPrefix+a.Key] = a.Value
					}
				}
			}
		case tagSize:
			if a := findAttr(child, attrVal); a != nil {
				rec.FontSize = a.Value
			}
		}
	}
}

// propertyValue is "val" attribute when present, otherwise element text.
func propertyValue(el *etree.Element) string {
	if a := findAttr(el, attrVal); a != nil {
		return a.Value
	}
	return textContent(el)
}

// textContent concatenates all character data below el. Whitespace only
// segments are indentation and are dropped unless xml:space="preserve" is
// in effect.
func textContent(el *etree.Element) string {
	var b strings.Builder
	var walk func(*etree.Element, bool)
	walk = func(e *etree.Element, preserve bool) {
		switch e.SelectAttrValue("xml:space", "") {
		case "preserve":
			preserve = true
		case "default":
			preserve = false
		}
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				if preserve || !t.IsWhitespace() {
					b.WriteString(t.Data)
				}
			case *etree.Element:
				walk(t, preserve)
			}
		}
	}
	walk(el, false)
	return b.String()
}

func childElement(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// findAttr looks attribute up by local name ignoring namespace prefix.
func findAttr(el *etree.Element, key string) *etree.Attr {
	for i := range el.Attr {
		if el.Attr[i].Key == key && !isNamespaceDecl(el.Attr[i]) {
			return &el.Attr[i]
		}
	}
	return nil
}

func attrValue(el *etree.Element, key string) string {
	if a := findAttr(el, key); a != nil {
		return a.Value
	}
	return ""
}

func isNamespaceDecl(a etree.Attr) bool {
	return a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns")
}

func (o *Options) elementKey(el *etree.Element) string {
	if o.KeyNaming == KeysQualified {
		return el.FullTag()
	}
	return el.Tag
}

func (o *Options) attrKey(a etree.Attr) string {
	if o.KeyNaming == KeysQualified {
		return a.FullKey()
	}
	return a.Key
}
