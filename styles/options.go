package styles

import (
	"fmt"

	"dsx/archive"
)

// DefaultStylesPart is the name of styles part in word-processing package.
const DefaultStylesPart = "word/styles.xml"

// Selection is style node inclusion policy.
type Selection string

const (
	// SelectAll takes every "style" child of the root.
	SelectAll Selection = "all"
	// SelectQuickFormat takes only styles promoted to style gallery: having
	// qFormat and not having semiHidden anywhere below. This is a policy
	// toggle, not a structural rule of the format.
	SelectQuickFormat Selection = "quick-format"
)

// KeyNaming defines how property keys are formed from element and attribute
// names.
type KeyNaming string

const (
	// KeysLocal uses local names: "jc", "spacing".
	KeysLocal KeyNaming = "local"
	// KeysQualified keeps namespace prefix: "w:jc", "w:spacing".
	KeysQualified KeyNaming = "qualified"
)

// FontKeys defines what happens to run font attributes besides lifting them
// into Record.FontName.
type FontKeys string

const (
	// FontKeysLift only lifts font name and size into record fields.
	FontKeysLift FontKeys = "lift"
	// FontKeysNamespaced also stores every rFonts attribute in properties as
	// "font:<attribute>".
	FontKeysNamespaced FontKeys = "namespaced"
)

// Options select one of the extraction variants.
type Options struct {
	Selection Selection
	// Flatten un-nests rPr and pPr children into properties. When not set
	// rPr only feeds font extraction and pPr is stored as ordinary property.
	Flatten     bool
	KeyNaming   KeyNaming
	FontKeys    FontKeys
	StylesPart  string
	MaxPartSize uint64
}

// DefaultOptions returns options for the most complete variant: all styles,
// flattened local keys.
func DefaultOptions() Options {
	return Options{
		Selection:   SelectAll,
		Flatten:     true,
		KeyNaming:   KeysLocal,
		FontKeys:    FontKeysLift,
		StylesPart:  DefaultStylesPart,
		MaxPartSize: archive.DefaultMaxEntrySize,
	}
}

// Validate checks that options have known values. Empty values are allowed
// and mean defaults.
func (o Options) Validate() error {
	switch o.Selection {
	case "", SelectAll, SelectQuickFormat:
	default:
		return fmt.Errorf("unknown style selection policy %q", o.Selection)
	}
	switch o.KeyNaming {
	case "", KeysLocal, KeysQualified:
	default:
		return fmt.Errorf("unknown property key naming %q", o.KeyNaming)
	}
	switch o.FontKeys {
	case "", FontKeysLift, FontKeysNamespaced:
	default:
		return fmt.Errorf("unknown font keys policy %q", o.FontKeys)
	}
	return nil
}

// withDefaults fills empty values.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Selection == "" {
		o.Selection = def.Selection
	}
	if o.KeyNaming == "" {
		o.KeyNaming = def.KeyNaming
	}
	if o.FontKeys == "" {
		o.FontKeys = def.FontKeys
	}
	if o.StylesPart == "" {
		o.StylesPart = def.StylesPart
	}
	if o.MaxPartSize == 0 {
		o.MaxPartSize = def.MaxPartSize
	}
	return o
}
