package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"

	"dsx/config"
	"dsx/styles"
)

func TestProcess_File(t *testing.T) {
	ctx, env := setupTestEnv(t)
	path := writeDocx(t, filepath.Join(t.TempDir(), "sample.docx"), sampleStyles(t))

	buf := new(bytes.Buffer)
	w, _ := newWriter(FormatText, buf, &env.Cfg.Output)
	if err := process(ctx, []string{path}, w, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	out := buf.String()
	for _, s := range []string{
		"Extracting styles from " + path + "...",
		"Found 6 styles:",
		"Style: Normal (Type: paragraph)",
		"  Font: Calibri",
		"  Font Size: 22",
		"  qFormat: [no value]",
		"Style: heading 1 (Type: paragraph)",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output does not contain %q", s)
		}
	}
}

func TestProcess_DirectoryContinuesOnFailure(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	good := writeDocx(t, filepath.Join(dir, "a.docx"), sampleStyles(t))
	broken := writeDocx(t, filepath.Join(dir, "b.docx"), nil)
	nested := writeDocx(t, filepath.Join(dir, "sub", "c.docx"), sampleStyles(t))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	buf := new(bytes.Buffer)
	w, _ := newWriter(FormatJSON, buf, &env.Cfg.Output)
	err := process(ctx, []string{dir}, w, env.Log)
	if err == nil || !strings.Contains(err.Error(), "1 of 3") {
		t.Fatalf("expected failure for one of three documents, got %v", err)
	}

	var got map[string][]styles.Record
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not map of records: %v\n%s", err, buf)
	}
	if len(got) != 2 || len(got[good]) != 6 || len(got[nested]) != 6 {
		t.Errorf("unexpected results: %v", got)
	}
	if _, ok := got[broken]; ok {
		t.Errorf("failed document must not be in results")
	}
}

func TestProcess_Missing(t *testing.T) {
	ctx, env := setupTestEnv(t)

	buf := new(bytes.Buffer)
	w, _ := newWriter(FormatText, buf, &env.Cfg.Output)
	if err := process(ctx, []string{filepath.Join(t.TempDir(), "missing.docx")}, w, env.Log); err == nil {
		t.Fatal("expected error for missing document")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf)
	}
}

func TestProcess_Cancelled(t *testing.T) {
	ctx, env := setupTestEnv(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	w, _ := newWriter(FormatText, new(bytes.Buffer), &env.Cfg.Output)
	if err := process(ctx, []string{t.TempDir()}, w, env.Log); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestProcess_Report(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()

	var err error
	conf := config.ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	if env.Rpt, err = conf.Prepare(); err != nil {
		t.Fatalf("prepare report: %v", err)
	}
	src := filepath.Join(dir, "docs")
	writeDocx(t, filepath.Join(src, "sample styles.docx"), sampleStyles(t))
	writeDocx(t, filepath.Join(src, "broken.docx"), []byte("<w:styles"))

	w, _ := newWriter(FormatText, new(bytes.Buffer), &env.Cfg.Output)
	if err := process(ctx, []string{src}, w, env.Log); err == nil {
		t.Fatal("expected error for broken document")
	}
	if err := env.Rpt.Close(); err != nil {
		t.Fatalf("close report: %v", err)
	}

	zr, err := zip.OpenReader(conf.Destination)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer zr.Close()

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	// walk order is lexical
	for _, n := range []string{
		"styles/000-broken.xml",
		"failed/000-broken.docx",
		"styles/001-sample-styles.xml",
		"styles/001-sample-styles.json",
	} {
		if !names[n] {
			t.Errorf("report does not contain %s, has %v", n, names)
		}
	}
}

func TestReportName(t *testing.T) {
	if got := reportName(7, filepath.Join("dir", "Café Menu 2024.docx"), "styles", ".json"); got != "styles/007-cafe-menu-2024.json" {
		t.Errorf("reportName() = %q", got)
	}
}

func runCommand(t *testing.T, ctx context.Context, args ...string) error {
	t.Helper()

	cmd := &cli.Command{
		Name:   "extract",
		Flags:  Flags(),
		Action: Run,
	}
	return cmd.Run(ctx, append([]string{"extract"}, args...))
}

func TestRun(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	path := writeDocx(t, filepath.Join(dir, "sample.docx"), sampleStyles(t))
	out := filepath.Join(dir, "out.json")

	if err := runCommand(t, ctx, "--format", "json", "--quick-format", "--no-flatten", "--qualified-keys", "-o", out, path); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if env.Options.Selection != styles.SelectQuickFormat || env.Options.Flatten || env.Options.KeyNaming != styles.KeysQualified {
		t.Errorf("command line overrides were not applied: %+v", env.Options)
	}
	if env.Format != FormatJSON {
		t.Errorf("Format = %q, want json", env.Format)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var got []styles.Record
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not array of records: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Normal" {
		t.Fatalf("unexpected records: %+v", got)
	}
	if _, ok := got[0].Properties["w:pPr"]; !ok {
		t.Errorf("expected unflattened qualified pPr property, got %v", got[0].Properties)
	}
}

func TestRun_Errors(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	if err := runCommand(t, ctx); err == nil {
		t.Error("expected error without sources")
	}
	if err := runCommand(t, ctx, "--font-keys", "drop", "a.docx"); err == nil {
		t.Error("expected error for bad font keys policy")
	}
	if err := runCommand(t, ctx, "--format", "xml", "a.docx"); err == nil {
		t.Error("expected error for unknown format")
	}
}

type failingCloser struct {
	bytes.Buffer
}

func (*failingCloser) Close() error { return errors.New("no space left on device") }

func TestRun_OutputCloseError(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	path := writeDocx(t, filepath.Join(t.TempDir(), "sample.docx"), sampleStyles(t))

	dst := new(failingCloser)
	orig := createOutput
	createOutput = func(string) (io.WriteCloser, error) { return dst, nil }
	t.Cleanup(func() { createOutput = orig })

	err := runCommand(t, ctx, "--format", "json", "-o", "out.json", path)
	if err == nil || !strings.Contains(err.Error(), "no space left on device") {
		t.Fatalf("expected close error to be reported, got %v", err)
	}
	if dst.Len() == 0 {
		t.Error("expected output to be written before close")
	}
}
