package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"dsx/config"
	"dsx/styles"
	"dsx/utils/debug"
)

const noValue = "[no value]"

// writer formats extraction results. begin is called once sources are
// resolved, document for every successfully processed file, end after all
// of them.
type writer interface {
	begin(multi bool)
	document(doc *Document) error
	end() error
}

func newWriter(format string, out io.Writer, conf *config.OutputConfig) (writer, error) {
	switch format {
	case FormatText:
		return &textWriter{out: out}, nil
	case FormatJSON:
		return &jsonWriter{out: out, indent: conf.JSONIndent}, nil
	case FormatTemplate:
		tmpl, err := template.New("output").Funcs(sprig.FuncMap()).Parse(conf.Template)
		if err != nil {
			return nil, fmt.Errorf("unable to parse output template: %w", err)
		}
		return &templateWriter{out: out, tmpl: tmpl}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

type textWriter struct {
	out io.Writer
}

func (w *textWriter) begin(bool) {}

func (w *textWriter) document(doc *Document) error {
	_, err := io.WriteString(w.out, formatText(doc))
	return err
}

func (w *textWriter) end() error { return nil }

func formatText(doc *Document) string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "")
	tw.Line(0, "Extracting styles from %s...", doc.Source)
	if len(doc.Styles) == 0 {
		tw.Line(0, "No styles found in the document.")
		return tw.String()
	}

	tw.Line(0, "Found %d styles:", len(doc.Styles))
	for _, s := range doc.Styles {
		tw.Line(0, "")
		tw.Line(0, "Style: %s (Type: %s)", s.Name, s.Type)
		tw.Line(0, "Properties:")
		if len(s.FontName) > 0 {
			tw.Field(1, "Font", s.FontName, "")
		}
		if len(s.FontSize) > 0 {
			tw.Field(1, "Font Size", s.FontSize, "")
		}
		for _, k := range s.Keys() {
			tw.Field(1, k, s.Properties[k], noValue)
		}
	}
	return tw.String()
}

type jsonWriter struct {
	out    io.Writer
	indent string
	multi  bool
	single []styles.Record
	keyed  map[string][]styles.Record
}

func (w *jsonWriter) begin(multi bool) {
	w.multi = multi
	w.keyed = make(map[string][]styles.Record)
}

func (w *jsonWriter) document(doc *Document) error {
	if w.multi {
		w.keyed[doc.Source] = doc.Styles
		return nil
	}
	w.single = doc.Styles
	return nil
}

func (w *jsonWriter) end() error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", w.indent)
	if w.multi {
		return enc.Encode(w.keyed)
	}
	if w.single == nil {
		// the only document failed
		return nil
	}
	return enc.Encode(w.single)
}

type templateWriter struct {
	out  io.Writer
	tmpl *template.Template
}

func (w *templateWriter) begin(bool) {}

func (w *templateWriter) document(doc *Document) error {
	return w.tmpl.Execute(w.out, doc)
}

func (w *templateWriter) end() error { return nil }
