package cmd

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alde/photoedit/internal/logging"
	"github.com/alde/photoedit/internal/worker"
	"github.com/alde/photoedit/pkg/content"
	"github.com/alde/photoedit/pkg/display"
	"github.com/alde/photoedit/pkg/progress"
	"github.com/spf13/cobra"
)

var (
	batchOutDir    string
	batchWorkers   int
	batchThumbnail bool
	batchDisplay   string
	batchFlags     edits
)

var batchCmd = &cobra.Command{
	Use:   "batch [images...]",
	Short: "Apply the same edits to many images",
	Long: `Apply the same edits to every image and save the results into a
directory, keeping the file names. Each image is loaded and edited on its
own worker.

With --thumbnail the results are scaled to the list thumbnail size of the
chosen display instead of being saved at full resolution.

Examples:
  photoedit batch *.jpg --out-dir rotated --rotate 1
  photoedit batch *.jpg --out-dir thumbs --thumbnail --display hd --workers 4`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "Output directory (required)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Number of worker goroutines (0 = auto)")
	batchCmd.Flags().BoolVar(&batchThumbnail, "thumbnail", false, "Save list thumbnails instead of full images")
	batchCmd.Flags().StringVar(&batchDisplay, "display", display.DefaultProfile, fmt.Sprintf("Display profile %v", display.Names()))
	batchCmd.Flags().IntVar(&batchFlags.rotate, "rotate", 0, "Quarter turns clockwise")
	batchCmd.Flags().StringVar(&batchFlags.crop, "crop", "", "Crop rectangle X,Y,WIDTHxHEIGHT in the rotated image")
	batchCmd.Flags().Float64Var(&batchFlags.brightness, "brightness", 0, "Brightness offset from -1 to 1")

	batchCmd.MarkFlagRequired("out-dir")
}

// editJob edits one image and saves it into a directory.
type editJob struct {
	path  string
	out   string
	edits edits
	thumb image.Point
}

func (j *editJob) ID() string { return j.path }

func (j *editJob) Process(ctx context.Context) error {
	ctx = logging.AppendCtx(ctx, slog.String("image", j.path))

	s, err := openSession(ctx, j.path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := j.edits.apply(s.engine); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	img := s.engine.Image()
	if j.thumb != (image.Point{}) {
		img = s.engine.Thumbnail(j.thumb)
	}

	dst := content.NewFileDestination(j.out)
	if err := s.store.Save(img, dst); err != nil {
		return err
	}

	slog.DebugContext(ctx, "saved", "path", dst.Path(), "format", dst.Format())
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	profile, err := display.GetProfile(batchDisplay)
	if err != nil {
		return fmt.Errorf("display profile error: %w", err)
	}
	if _, err := storeConfig(); err != nil {
		return err
	}
	outputs, err := outputPaths(batchOutDir, args)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var thumb image.Point
	if batchThumbnail {
		thumb = profile.Thumbnail()
	}

	pool := worker.NewPool(cmd.Context(), batchWorkers)
	pool.WithProgress(progress.NewTracker(cmd.ErrOrStderr(), pool.WorkerCount(), len(args)))
	pool.Start()

	go func() {
		for i, path := range args {
			pool.Submit(&editJob{path: path, out: outputs[i], edits: batchFlags, thumb: thumb})
		}
		pool.Stop()
	}()

	failed := 0
	for r := range pool.Results() {
		if r.Error != nil {
			failed++
			slog.Error("image failed", "image", r.JobID, "error", r.Error)
			continue
		}
		slog.Debug("image done", "image", r.JobID, "duration", r.Duration)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d of %d images to %s\n", len(args)-failed, len(args), batchOutDir)
	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(args))
	}
	return nil
}

// outputPaths returns where each input is saved inside outDir. Inputs that
// share a file name would overwrite each other and are refused.
func outputPaths(outDir string, inputs []string) ([]string, error) {
	outputs := make([]string, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, path := range inputs {
		name := filepath.Base(path)
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("both %s and %s would be saved as %s", prev, path, filepath.Join(outDir, name))
		}
		seen[name] = path
		outputs[i] = filepath.Join(outDir, name)
	}
	return outputs, nil
}
