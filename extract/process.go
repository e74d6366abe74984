package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"dsx/archive"
	"dsx/state"
	"dsx/styles"
)

// Extensions of files picked up when source is a directory.
var Extensions = []string{".docx", ".docm", ".dotx", ".dotm"}

// Document is extraction result for a single source file.
type Document struct {
	Source string          `json:"source"`
	Styles []styles.Record `json:"styles"`
	Count  int             `json:"count"`
}

// resolve expands sources into the list of files to process. Directories are
// searched recursively. Second value reports whether output should be keyed
// by source path.
func resolve(ctx context.Context, sources []string, log *zap.Logger) ([]string, bool, error) {
	var (
		paths []string
		multi = len(sources) > 1
	)
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		fi, err := os.Stat(src)
		if err != nil || !fi.IsDir() {
			// files are checked when opened, so the error is reported once
			paths = append(paths, src)
			continue
		}

		multi = true
		count := 0
		err = archive.Walk(src, Extensions, func(path string) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			count++
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, false, fmt.Errorf("unable to process directory '%s': %w", src, err)
		}
		if count == 0 {
			log.Debug("Nothing to process", zap.String("dir", src))
		}
	}
	return paths, multi, nil
}

func process(ctx context.Context, sources []string, w writer, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	paths, multi, err := resolve(ctx, sources, log)
	if err != nil {
		return err
	}
	w.begin(multi)

	ex := env.Extractor()
	failed := 0
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		doc, err := extractOne(env, ex, i, path, log)
		if err != nil {
			failed++
			log.Error("Unable to extract styles", zap.String("file", path), zap.Error(err))
			if env.Rpt != nil {
				if err := env.Rpt.StoreCopy(reportName(i, path, "failed", ".docx"), path); err != nil {
					log.Debug("Unable to store failed document in the report", zap.String("file", path), zap.Error(err))
				}
			}
			continue
		}
		if err := w.document(doc); err != nil {
			return fmt.Errorf("unable to write results for '%s': %w", path, err)
		}
	}

	if err := w.end(); err != nil {
		return fmt.Errorf("unable to write results: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("unable to extract styles from %d of %d document(s)", failed, len(paths))
	}
	return nil
}

func extractOne(env *state.LocalEnv, ex *styles.Extractor, index int, path string, log *zap.Logger) (*Document, error) {
	log.Debug("Extraction starting", zap.String("file", path))

	data, err := ex.ReadPart(path)
	if err != nil {
		return nil, err
	}
	if env.Rpt != nil {
		env.Rpt.StoreData(reportName(index, path, "styles", ".xml"), data)
	}

	records, err := ex.ExtractXML(path, data)
	if err != nil {
		return nil, err
	}
	if env.Rpt != nil {
		if dump, err := json.MarshalIndent(records, "", "  "); err == nil {
			env.Rpt.StoreData(reportName(index, path, "styles", ".json"), dump)
		}
	}

	log.Debug("Extraction completed", zap.String("file", path), zap.Int("styles", len(records)))
	return &Document{Source: path, Styles: records, Count: len(records)}, nil
}

// reportName builds unique entry name for the debug report.
func reportName(index int, path, dir, ext string) string {
	base := filepath.Base(path)
	return fmt.Sprintf("%s/%03d-%s%s", dir, index, slug.Make(base[:len(base)-len(filepath.Ext(base))]), ext)
}
