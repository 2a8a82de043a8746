package cmd

import (
	"fmt"

	"github.com/alde/photoedit/pkg/content"
	"github.com/alde/photoedit/pkg/display"
	"github.com/alde/photoedit/pkg/transform"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var infoDisplay string

var infoCmd = &cobra.Command{
	Use:   "info [image]",
	Short: "Show how an image loads",
	Long: `Load an image and show its size, format, pyramid levels and the zoom
range the editor would offer for it on the chosen display.

Examples:
  photoedit info photo.jpg
  photoedit info scan.pdf --page 3 --dpi 100 --display vga`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&infoDisplay, "display", display.DefaultProfile, fmt.Sprintf("Display profile %v", display.Names()))
}

func runInfo(cmd *cobra.Command, args []string) error {
	profile, err := display.GetProfile(infoDisplay)
	if err != nil {
		return fmt.Errorf("display profile error: %w", err)
	}

	s, err := openSession(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	store := s.store

	fmt.Fprintf(out, "Image: %s\n", s.src.Name())
	if fs, ok := s.src.(*content.FileSource); ok {
		fmt.Fprintf(out, "Type: %s\n", fs.MIME())
	}
	if pdf, ok := s.src.(*content.PDFSource); ok {
		fmt.Fprintf(out, "Pages: %d\n", pdf.PageCount())
	}
	if n, err := s.src.ByteSize(); err == nil {
		fmt.Fprintf(out, "File size: %s\n", humanize.Bytes(uint64(n)))
	}

	size := store.Size()
	fmt.Fprintf(out, "Status: %s\n", store.Status())
	fmt.Fprintf(out, "Size: %dx%d (%s pixels)\n", size.X, size.Y, humanize.Comma(int64(size.X*size.Y)))
	fmt.Fprintf(out, "Format: %s\n", store.Format())
	fmt.Fprintf(out, "Saves as: %s\n", store.SaveFormat())
	fmt.Fprintf(out, "Read-only: %t\n", store.IsReadOnly())

	fmt.Fprintf(out, "Levels:\n")
	for i := 0; i < store.Levels(); i++ {
		b := store.Image(i).Rect
		fmt.Fprintf(out, "  %d: %dx%d (1/%d)\n", i, b.Dx(), b.Dy(), 1<<i)
	}

	view := profile.View()
	lo, hi := transform.ZoomRange(size, view)
	fit := transform.FitZoom(size, view)
	fmt.Fprintf(out, "Display: %s, view %dx%d\n", profile.Name, view.X, view.Y)
	fmt.Fprintf(out, "Zoom range: %g to %g, fit %.3g (level %d)\n",
		transform.ZoomScales[lo], transform.ZoomScales[hi], fit, store.Level(fit))

	thumb := s.engine.Thumbnail(profile.Thumbnail())
	if thumb != nil {
		fmt.Fprintf(out, "Thumbnail: %dx%d\n", thumb.Rect.Dx(), thumb.Rect.Dy())
	}
	return nil
}

