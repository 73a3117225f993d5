package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kvit-s/kvit-hints/internal/config"
	"github.com/kvit-s/kvit-hints/internal/document"
	"github.com/kvit-s/kvit-hints/internal/hints"
	"github.com/kvit-s/kvit-hints/internal/logging"
	"github.com/kvit-s/kvit-hints/internal/preview"
	"github.com/kvit-s/kvit-hints/internal/stats"
	"github.com/kvit-s/kvit-hints/internal/ui"
)

type convertFlags struct {
	docPath      string
	responsePath string
	schema       string
	encoding     string
	format       string
	diff         string
	isolate      bool
	quiet        bool
	showStats    bool
}

func newConvertCommand(g *globalFlags) *cobra.Command {
	var f convertFlags

	cmd := &cobra.Command{
		Use:   "convert --doc FILE [--response FILE|-]",
		Short: "Convert a model response into edits for a document",
		Long: `Convert reads a document and a raw model response, resolves every hint
against the document and prints the resulting edits.

The response is read from stdin when --response is omitted or "-".
Hints that cannot be placed are reported as skips and do not fail the run.
A response that is not a JSON array, or that contains a malformed hint,
is rejected as a whole (exit code 2).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd, g, &f)
		},
	}

	cmd.Flags().StringVar(&f.docPath, "doc", "", "document the hints refer to (required)")
	cmd.Flags().StringVar(&f.responsePath, "response", "-", "file holding the raw model response, - for stdin")
	cmd.Flags().StringVar(&f.schema, "schema", "", "hint schema: prefix_suffix or line_range")
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "position encoding: utf-16 or utf-8")
	cmd.Flags().StringVar(&f.format, "format", "", "output format: text or json")
	cmd.Flags().StringVar(&f.diff, "diff", "", "diff preview: none, unified or inline")
	cmd.Flags().BoolVar(&f.isolate, "isolate", false, "report malformed hints instead of rejecting the batch")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "print only edits and diffs")
	cmd.Flags().BoolVar(&f.showStats, "stats", false, "print a conversion stats block")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}

// loadConfig reads the config file (if any) and layers flag overrides on top.
func loadConfig(g *globalFlags, f *convertFlags) (*config.Config, error) {
	cfg := config.Default()
	if g.configPath != "" {
		loaded, err := config.Load(g.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.schema != "" {
		cfg.Hints.Schema = f.schema
	}
	if f.isolate {
		cfg.Hints.ShapeErrors = string(hints.ShapeIsolate)
	}
	if f.encoding != "" {
		cfg.Document.PositionEncoding = f.encoding
	}
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.diff != "" {
		cfg.Output.Diff = f.diff
	}
	if g.color != "" {
		cfg.Output.Color = g.color
	}
	if g.logPath != "" {
		cfg.Log.Path = g.logPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, g *globalFlags, f *convertFlags) error {
	cfg, err := loadConfig(g, f)
	if err != nil {
		return err
	}

	out := ui.NewWriter(cmd.OutOrStdout(), cmd.ErrOrStderr(), colorEnabled(cfg.Output.Color, cmd.OutOrStdout()))
	out.SetQuiet(f.quiet)
	if g.configPath != "" {
		out.Info("config: " + g.configPath)
	}
	jsonMode := cfg.Output.Format == "json"

	logger, err := logging.NewLogger(cfg.Log.Path, cfg.Log.Development, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	docBytes, err := os.ReadFile(f.docPath)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	raw, err := readResponse(cmd.InOrStdin(), f.responsePath)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	opts, err := cfg.ConverterOptions()
	if err != nil {
		return err
	}
	doc := document.NewTextDocument(string(docBytes), cfg.Encoding())
	logger = logger.With(zap.String("doc", f.docPath))
	logger.Debug("document loaded",
		zap.Int("bytes", len(docBytes)),
		zap.Int("lines", doc.LineCount()),
		zap.Stringer("newline", doc.Newline()),
		zap.String("encoding", string(doc.Encoding())),
	)
	conv := hints.NewConverter(opts, logger)

	res, err := conv.Convert(raw, doc)
	if err != nil {
		if jsonMode {
			failed := stats.ConversionStats{Conversions: 1, Failed: 1}
			j := failed.ToJSON()
			if werr := out.WriteJSON(ui.JSONOutput{Error: errorJSON(err), Stats: &j}); werr != nil {
				return werr
			}
		} else {
			out.Error(err.Error())
		}
		return fmt.Errorf("%w: %w", ErrBatchRejected, err)
	}

	var (
		unified string
		inline  []preview.Segment
	)
	if cfg.Output.Diff != "none" {
		after, applyErr := preview.Apply(doc, res.Edits)
		if applyErr != nil {
			// Overlapping edits are still valid converter output
			logger.Error("diff preview", applyErr)
			out.Warn(fmt.Sprintf("no diff preview: %v", applyErr))
		} else if cfg.Output.Diff == "unified" {
			name := filepath.Base(f.docPath)
			if unified, err = preview.Unified(doc.Text(), after, name); err != nil {
				return fmt.Errorf("diff: %w", err)
			}
		} else {
			inline = preview.Inline(doc.Text(), after)
		}
	}

	if jsonMode {
		j := res.Stats.ToJSON()
		rejected := make([]map[string]any, 0, len(res.Rejected))
		for _, r := range res.Rejected {
			rejected = append(rejected, r.ToJSON())
		}
		return out.WriteJSON(ui.JSONOutput{
			Edits:    res.Edits,
			Skips:    res.Skips,
			Rejected: rejected,
			Stats:    &j,
			Diff:     unified,
		})
	}

	out.Header(fmt.Sprintf("%s: %s, %s", filepath.Base(f.docPath),
		ui.Plural(res.Stats.Edits, "edit"), ui.Plural(res.Stats.Skipped(), "skip")))
	out.Edits(res.Edits)
	out.Skips(res.Skips)
	out.Rejected(res.Rejected)
	if unified != "" {
		out.UnifiedDiff(unified)
	}
	if preview.Changed(inline) {
		out.InlineDiff(inline)
	}
	out.Summary(&res.Stats, utf8.RuneCount(docBytes))
	if f.showStats {
		res.Stats.PrintTo(cmd.OutOrStdout())
	}
	return nil
}

func readResponse(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// errorJSON returns the structured form of a batch-level error.
func errorJSON(err error) map[string]any {
	var pe *hints.ParseError
	if errors.As(err, &pe) {
		return pe.ToJSON()
	}
	var se *hints.ShapeError
	if errors.As(err, &se) {
		return se.ToJSON()
	}
	return map[string]any{"success": false, "error": err.Error()}
}
