// Package styles extracts style definitions from the styles part of Office
// Open XML word-processing documents.
//
// Extraction is a forward pipeline: zip container -> styles part bytes ->
// etree DOM -> selected style elements -> flat records. Every call owns its
// archive handle and DOM, both released before the call returns, so an
// Extractor may be used from several goroutines on different inputs.
package styles

import (
	"go.uber.org/zap"

	"dsx/archive"
)

// Extractor runs extraction with fixed options.
type Extractor struct {
	opts Options
	log  *zap.Logger
}

// New creates Extractor. Empty option values are replaced with defaults, nil
// logger means no logging.
func New(opts Options, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{opts: opts.withDefaults(), log: log}
}

// ExtractStyles returns all style definitions from DOCX file at path using
// default options.
func ExtractStyles(path string) ([]Record, error) {
	return New(DefaultOptions(), nil).ExtractFile(path)
}

// Options returns effective options.
func (e *Extractor) Options() Options {
	return e.opts
}

// ExtractFile extracts styles from DOCX file at path. On any error no records
// are returned.
func (e *Extractor) ExtractFile(path string) ([]Record, error) {
	data, err := e.ReadPart(path)
	if err != nil {
		return nil, err
	}
	return e.ExtractXML(path, data)
}

// ExtractBytes extracts styles from in-memory DOCX container. Name is only
// used in errors and logs.
func (e *Extractor) ExtractBytes(name string, data []byte) ([]Record, error) {
	part, err := archive.ReadEntryFromBytes(data, e.opts.StylesPart, archive.WithMaxEntrySize(e.opts.MaxPartSize))
	if err != nil {
		return nil, classifyArchiveError(name, e.opts.StylesPart, err)
	}
	return e.ExtractXML(name, part)
}

// ReadPart returns raw content of styles part from DOCX file at path.
func (e *Extractor) ReadPart(path string) ([]byte, error) {
	data, err := archive.ReadEntry(path, e.opts.StylesPart, archive.WithMaxEntrySize(e.opts.MaxPartSize))
	if err != nil {
		return nil, classifyArchiveError(path, e.opts.StylesPart, err)
	}
	e.log.Debug("Styles part loaded", zap.String("file", path), zap.String("part", e.opts.StylesPart), zap.Int("size", len(data)))
	return data, nil
}

// ExtractXML extracts styles from already decompressed styles part.
func (e *Extractor) ExtractXML(name string, data []byte) ([]Record, error) {
	doc, err := parseXML(data)
	if err != nil {
		return nil, &MalformedXMLError{Path: name, Part: e.opts.StylesPart, Err: err}
	}

	nodes := selectStyleNodes(doc, e.opts.Selection)
	e.log.Debug("Style nodes selected",
		zap.String("file", name), zap.String("root", doc.Root().Tag), zap.Stringer("selection", e.opts.Selection), zap.Int("count", len(nodes)))

	records := make([]Record, 0, len(nodes))
	for _, node := range nodes {
		rec := extractStyle(node, &e.opts)
		if len(rec.Name) == 0 && len(rec.Type) == 0 {
			e.log.Debug("Style has neither name nor type", zap.String("file", name), zap.Int("index", node.Index()))
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s Selection) String() string { return string(s) }
