package cmd

import (
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/alde/photoedit/pkg/content"
	"github.com/alde/photoedit/pkg/display"
	"github.com/alde/photoedit/pkg/pyramid"
	"github.com/alde/photoedit/pkg/transform"
	"github.com/spf13/cobra"
)

var (
	previewOutput  string
	previewDisplay string
	previewZoom    float64
	previewRect    string
	previewFlags   edits
)

var previewCmd = &cobra.Command{
	Use:   "preview [image]",
	Short: "Render what the editor shows on a display",
	Long: `Render the part of an edited image that is visible in a display's view.

Without --zoom the image is zoomed to fit the view, as the editor does when
an image is opened. --rect selects the visible part in display coordinates
as X,Y,WIDTHxHEIGHT; it defaults to the whole view.

Examples:
  photoedit preview photo.jpg -o view.png --display vga
  photoedit preview photo.jpg -o zoomed.png --zoom 2 --rect 200,100,240x276`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "", "Output file path (required)")
	previewCmd.Flags().StringVar(&previewDisplay, "display", display.DefaultProfile, fmt.Sprintf("Display profile %v", display.Names()))
	previewCmd.Flags().Float64Var(&previewZoom, "zoom", 0, fmt.Sprintf("Zoom from %g to %g (0 = fit to view)", transform.MinZoom, transform.MaxZoom))
	previewCmd.Flags().StringVar(&previewRect, "rect", "", "Visible rectangle X,Y,WIDTHxHEIGHT in display coordinates")
	previewCmd.Flags().IntVar(&previewFlags.rotate, "rotate", 0, "Quarter turns clockwise")
	previewCmd.Flags().StringVar(&previewFlags.crop, "crop", "", "Crop rectangle X,Y,WIDTHxHEIGHT in the rotated image")
	previewCmd.Flags().Float64Var(&previewFlags.brightness, "brightness", 0, "Brightness offset from -1 to 1")

	previewCmd.MarkFlagRequired("output")
}

func runPreview(cmd *cobra.Command, args []string) error {
	profile, err := display.GetProfile(previewDisplay)
	if err != nil {
		return fmt.Errorf("display profile error: %w", err)
	}

	s, err := openSession(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	if err := previewFlags.apply(s.engine); err != nil {
		return err
	}

	view := profile.View()
	zoom := previewZoom
	if zoom <= 0 {
		zoom = transform.FitZoom(s.engine.Size(), view)
	}
	s.engine.SetZoom(zoom)

	visible := image.Rectangle{Max: view}
	if previewRect != "" {
		visible, err = parseRect(previewRect)
		if err != nil {
			return fmt.Errorf("invalid --rect: %w", err)
		}
	}

	img := s.engine.Preview(visible)
	if img == nil {
		return fmt.Errorf("rectangle %v shows nothing of the %v display image", visible, s.engine.Size())
	}

	format := pyramid.NormalizeFormat(filepath.Ext(previewOutput))
	if !pyramid.CanEncode(format) {
		format = pyramid.DefaultFallbackFormat
	}

	dst := content.NewFileDestination(previewOutput)
	err = dst.Write(format, func(w io.Writer) error {
		return pyramid.Encode(w, img, format)
	})
	if err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d at zoom %.3g, level %d)\n",
		dst.Path(), img.Rect.Dx(), img.Rect.Dy(), s.engine.Zoom(), s.store.Level(s.engine.Zoom()))
	return nil
}
