package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alde/photoedit/internal/logging"
	"github.com/alde/photoedit/pkg/content"
	"github.com/alde/photoedit/pkg/pyramid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Set at build time with -ldflags "-X github.com/alde/photoedit/cmd.GitSHA=..."
var GitSHA = "NA"

const version = "0.1.0"

var (
	logLevel string
	logFile  string
	logJSON  bool

	levels   int
	maxSize  string
	maxBytes string
	reduce   bool
	filter   string
	dpi      int
	page     int

	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "photoedit",
	Short: "Crop, rotate and adjust photos",
	Long: `Photoedit edits photos the way a handset photo editor does: the image is
loaded into a pyramid of halved copies, edits are kept as a crop, a quarter
turn rotation and a brightness offset, and previews are rendered from the
smallest copy that still has enough detail.

Reads JPEG, PNG, GIF, BMP, TIFF and WebP images and single PDF pages.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
			logCloser = nil
		}
	},
}

// Execute runs the command line with the process arguments.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Run executes the command line with args, writing command output to out.
// Every flag starts from its default, whatever an earlier Run set.
func Run(ctx context.Context, args []string, out io.Writer) error {
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	defer rootCmd.SetOut(nil)
	return rootCmd.ExecuteContext(ctx)
}

// resetFlags restores the defaults of cmd's flags and those of its
// subcommands.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.StringVar(&logFile, "log-file", "", "Write logs to this file, rotated by size")
	pf.BoolVar(&logJSON, "log-json", false, "Log as JSON")

	pf.IntVar(&levels, "levels", pyramid.DefaultLevels, "Number of pyramid levels, the original included")
	pf.StringVar(&maxSize, "max-size", "1600x1200", "Largest editable image, as WIDTHxHEIGHT (caps the pixel area)")
	pf.StringVar(&maxBytes, "max-bytes", "2MiB", "Largest encoded file when its dimensions cannot be read up front")
	pf.BoolVar(&reduce, "reduce", false, "Open a scaled copy of oversized images instead of refusing them")
	pf.StringVar(&filter, "filter", "box", fmt.Sprintf("Pyramid resampling filter %v", pyramid.ResamplerNames()))
	pf.IntVar(&dpi, "dpi", content.DefaultDPI, "Render resolution for PDF pages")
	pf.IntVar(&page, "page", 1, "PDF page to open")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, ok := logging.ParseLevel(logLevel)

	w := cmd.ErrOrStderr()
	if logFile != "" {
		fw := logging.FileWriter(logFile)
		logCloser = fw
		w = fw
	}
	slog.SetDefault(logging.Logger(w, logJSON, level))

	if !ok {
		slog.Warn("invalid log level, defaulting to INFO", "level", logLevel)
	}
	return nil
}
