// Package extract implements "extract" subcommand: styles of one or more
// documents are extracted and written out in requested format.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dsx/state"
	"dsx/styles"
)

// Formats lists supported output formats.
var Formats = []string{FormatText, FormatJSON, FormatTemplate}

const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatTemplate = "template"
)

// createOutput opens destination for --output.
var createOutput = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// Flags returns command line flags of extract subcommand.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "format", Aliases: []string{"f"},
			Usage: "output `FORMAT` (supported formats: " + strings.Join(Formats, ", ") + "), overrides configuration"},
		&cli.BoolFlag{Name: "quick-format", Aliases: []string{"qf"}, Usage: "only extract styles promoted to the style gallery"},
		&cli.BoolFlag{Name: "no-flatten", Usage: "do not un-nest run and paragraph properties"},
		&cli.BoolFlag{Name: "qualified-keys", Usage: "keep namespace prefixes in property names"},
		&cli.StringFlag{Name: "font-keys", Usage: "font attributes `POLICY` (lift, namespaced)"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write results to `FILE` instead of STDOUT"},
	}
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("extract")

	sources := cmd.Args().Slice()
	if len(sources) == 0 {
		return errors.New("no input source has been specified")
	}

	if env.Options, err = options(env, cmd); err != nil {
		return err
	}

	env.Format = env.Cfg.Output.Format
	if cmd.IsSet("format") {
		env.Format = cmd.String("format")
	}

	var out io.Writer = os.Stdout
	if fname := cmd.String("output"); len(fname) > 0 {
		var f io.WriteCloser
		if f, err = createOutput(fname); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer multierr.AppendInvoke(&err, multierr.Close(f))
		out = f
	}

	w, err := newWriter(env.Format, out, &env.Cfg.Output)
	if err != nil {
		return err
	}

	log.Info("Processing starting",
		zap.Strings("sources", sources),
		zap.String("format", env.Format),
		zap.Stringer("selection", env.Options.Selection),
		zap.Bool("flatten", env.Options.Flatten))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, sources, w, log)
}

// options applies command line overrides to configured extraction options.
func options(env *state.LocalEnv, cmd *cli.Command) (styles.Options, error) {
	opts := env.Cfg.Extraction.Options()
	if cmd.Bool("quick-format") {
		opts.Selection = styles.SelectQuickFormat
	}
	if cmd.Bool("no-flatten") {
		opts.Flatten = false
	}
	if cmd.Bool("qualified-keys") {
		opts.KeyNaming = styles.KeysQualified
	}
	if cmd.IsSet("font-keys") {
		opts.FontKeys = styles.FontKeys(cmd.String("font-keys"))
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("bad extraction options: %w", err)
	}
	return opts, nil
}
