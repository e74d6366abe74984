package styles

import (
	"strings"
	"testing"
)

func TestRecord_Keys(t *testing.T) {
	rec := Record{Properties: map[string]string{"w10": "", "w2": "", "b": "", "a1": ""}}
	got := rec.Keys()
	want := []string{"a1", "b", "w2", "w10"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
}

func TestRecord_Equal(t *testing.T) {
	a := Record{Name: "Normal", Type: "paragraph", FontName: "Calibri", FontSize: "22", Properties: map[string]string{"jc": "left"}}
	b := Record{Name: "Normal", Type: "paragraph", FontName: "Calibri", FontSize: "22", Properties: map[string]string{"jc": "left"}}
	if !a.Equal(b) {
		t.Fatalf("expected records to be equal")
	}
	b.Properties["jc"] = "right"
	if a.Equal(b) {
		t.Fatalf("expected records to differ by property")
	}
	if Equal([]Record{a}, []Record{a, a}) {
		t.Fatalf("collections of different length must differ")
	}
	if !Equal(nil, []Record{}) {
		t.Fatalf("empty collections must be equal")
	}
}

func TestRecord_String(t *testing.T) {
	rec := Record{Name: "Normal", Type: "paragraph", FontName: "Calibri", FontSize: "22",
		Properties: map[string]string{"styleId": "Normal", "qFormat": ""}}

	want := `Style["Normal"] type["paragraph"]
  Font: "Calibri"
  Size: "22"
  Properties: 2
    qFormat: 
    styleId: "Normal"
`
	if got := rec.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
