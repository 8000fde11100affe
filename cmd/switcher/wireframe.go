package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/akmonengine/switcher"
	"github.com/spf13/cobra"
)

func newWireframeCommand(opts *options) *cobra.Command {
	var (
		output    string
		colorMode string
	)

	cmd := &cobra.Command{
		Use:   "wireframe <scene>",
		Short: "Export the blended boundaries of the scene volumes as Wavefront OBJ",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd, args[0], nil)
			if err != nil {
				return err
			}

			if colorMode == "" {
				colorMode = s.config.Visualization.ColorMode
			}
			mode, err := switcher.ParseColorMode(colorMode)
			if err != nil {
				return err
			}

			snapshot, _ := s.switcher.GetVolumeSnapshot(false)
			v := s.config.Visualization
			drawn, err := s.switcher.Emitter.EmitAll(snapshot, mode, v.Thickness, v.Lifetime)
			if drawn == 0 && err != nil {
				return err
			}
			s.logger.Info("wireframe", "volumes", drawn, "lines", len(s.recorder.Lines()))

			if output == "" || output == "-" {
				return s.recorder.WriteOBJ(cmd.OutOrStdout())
			}
			return writeOBJFile(output, s.recorder.WriteOBJ)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&colorMode, "color", "", "color mode: fixed or priority (default from config)")

	return cmd
}

// writeOBJFile creates path and fills it with write. A failed close is
// reported since the last buffered lines may not have reached the disk.
func writeOBJFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := write(f); err != nil {
		return errors.Join(err, f.Close())
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
