package cmd

import (
	"fmt"
	"os"

	"github.com/alde/photoedit/pkg/content"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	editOutput string
	editFlags  edits
)

var editCmd = &cobra.Command{
	Use:   "edit [image]",
	Short: "Rotate, crop and brighten an image and save it",
	Long: `Apply edits to an image and save the full resolution result.

The image is rotated first, then cropped. The crop rectangle is given in
the rotated image, as X,Y,WIDTHxHEIGHT. Brightness ranges from -1 to 1.

Without --output the image is saved over the original, which fails for
read-only files and PDF pages. When the original format cannot be written
the image is saved as PNG and the file extension changes to match.

Examples:
  photoedit edit photo.jpg --rotate 1 -o rotated.jpg
  photoedit edit photo.jpg --crop 100,50,800x600 --brightness 0.2
  photoedit edit scan.pdf --page 2 -o page2.png`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVarP(&editOutput, "output", "o", "", "Output file path (default: overwrite the input)")
	editCmd.Flags().IntVar(&editFlags.rotate, "rotate", 0, "Quarter turns clockwise")
	editCmd.Flags().StringVar(&editFlags.crop, "crop", "", "Crop rectangle X,Y,WIDTHxHEIGHT in the rotated image")
	editCmd.Flags().Float64Var(&editFlags.brightness, "brightness", 0, "Brightness offset from -1 to 1")
}

func runEdit(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	s, err := openSession(cmd.Context(), inputPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := editFlags.apply(s.engine); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	target := editOutput
	if target == "" {
		if !s.engine.IsChanged() {
			fmt.Fprintln(out, "No changes to save")
			return nil
		}
		if s.store.IsReadOnly() {
			return fmt.Errorf("%s is read-only, use --output to save a copy", inputPath)
		}
		target = inputPath
	}

	dst := content.NewFileDestination(target)
	if err := s.store.Save(s.engine.Image(), dst); err != nil {
		return err
	}
	s.engine.SetCheckpoint()

	size := s.engine.Size()
	info, err := os.Stat(dst.Path())
	if err != nil {
		return fmt.Errorf("failed to stat saved image: %w", err)
	}
	fmt.Fprintf(out, "Saved %s (%s, %dx%d, %s)\n",
		dst.Path(), dst.Format(), size.X, size.Y, humanize.Bytes(uint64(info.Size())))
	return nil
}
