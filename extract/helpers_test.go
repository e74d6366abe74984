package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"dsx/config"
	"dsx/state"
)

const sampleStylesPath = "../styles/testdata/styles.xml"

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()

	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	env.Cfg = cfg
	env.Options = cfg.Extraction.Options()
	return ctx, env
}

func writeDocx(t *testing.T, path string, styles []byte) string {
	t.Helper()

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	parts := map[string][]byte{"word/document.xml": []byte("<document/>")}
	if styles != nil {
		parts["word/styles.xml"] = styles
	}
	for name, content := range parts {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	return path
}

func sampleStyles(t *testing.T) []byte {
	t.Helper()

	data, err := os.ReadFile(sampleStylesPath)
	if err != nil {
		t.Fatalf("read sample styles: %v", err)
	}
	return data
}
