package styles

import (
	"github.com/beevik/etree"
)

// selectStyleNodes returns "style" elements which are direct children of the
// document root in document order. Style definitions are never nested, so
// deeper levels are not looked at.
func selectStyleNodes(doc *etree.Document, sel Selection) []*etree.Element {
	if doc == nil || doc.Root() == nil {
		// parseXML never returns document without root
		panic("styles: document has no root element")
	}

	var nodes []*etree.Element
	for _, child := range doc.Root().ChildElements() {
		if child.Tag != "style" {
			continue
		}
		if sel == SelectQuickFormat && !isQuickFormat(child) {
			continue
		}
		nodes = append(nodes, child)
	}
	return nodes
}

// isQuickFormat reports whether style is shown in style gallery.
func isQuickFormat(el *etree.Element) bool {
	return hasDescendant(el, "qFormat") && !hasDescendant(el, "semiHidden")
}

func hasDescendant(el *etree.Element, tag string) bool {
	for _, child := range el.ChildElements() {
		if child.Tag == tag || hasDescendant(child, tag) {
			return true
		}
	}
	return false
}
