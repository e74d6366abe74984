package styles

import (
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"dsx/utils/debug"
)

// Record is one extracted style definition. Records do not reference parser
// memory and belong to the caller.
type Record struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	FontName string `json:"font_name"`
	// FontSize is kept verbatim in half-points.
	FontSize   string            `json:"font_size"`
	Properties map[string]string `json:"properties"`
}

// Keys returns property names in natural order.
func (r Record) Keys() []string {
	keys := slices.Collect(maps.Keys(r.Properties))
	sort.Sort(natural.StringSlice(keys))
	return keys
}

// Equal reports whether two records carry the same values.
func (r Record) Equal(o Record) bool {
	return r.Name == o.Name &&
		r.Type == o.Type &&
		r.FontName == o.FontName &&
		r.FontSize == o.FontSize &&
		maps.Equal(r.Properties, o.Properties)
}

// String returns readable tree of the record for debugging.
func (r Record) String() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Style[%q] type[%q]", r.Name, r.Type)
	tw.TextBlock(1, "Font", r.FontName)
	tw.TextBlock(1, "Size", r.FontSize)
	if len(r.Properties) > 0 {
		tw.Line(1, "Properties: %d", len(r.Properties))
		for _, k := range r.Keys() {
			tw.TextBlock(2, k, r.Properties[k])
		}
	}
	return tw.String()
}

// Equal reports whether two collections are element-wise equal.
func Equal(a, b []Record) bool {
	return slices.EqualFunc(a, b, Record.Equal)
}
