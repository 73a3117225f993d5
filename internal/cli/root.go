// Package cli provides the cobra command tree for kvit-hints.
package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version    string
	CommitHash string
	CommitDate string
	BuildDate  string
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	color      string
	logPath    string
}

// NewRootCommand creates the root kvit-hints command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var g globalFlags

	rootCmd := &cobra.Command{
		Use:   "kvit-hints",
		Short: "Turn LLM edit hints into precise document edits",
		Long: `kvit-hints converts the JSON edit hints returned by a language model into
LSP-style text edits against a document.

Two hint shapes are understood: prefix/existing/suffix anchors, which are
located by textual context, and 1-based line ranges. Hints that cannot be
placed unambiguously are skipped rather than guessed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&g.color, "color", "", "colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&g.logPath, "log", "", "log file path (overrides config)")

	rootCmd.AddCommand(newConvertCommand(&g))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// colorEnabled decides whether output to w gets ANSI color.
// In auto mode, color is enabled only if w is a TTY and NO_COLOR is not set.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := w.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
