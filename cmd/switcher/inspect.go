package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/akmonengine/switcher"
	"github.com/akmonengine/switcher/volume"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newInspectCommand(opts *options) *cobra.Command {
	var position []float64

	cmd := &cobra.Command{
		Use:   "inspect <scene>",
		Short: "Print the volume snapshot at the camera",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd, args[0], nil)
			if err != nil {
				return err
			}
			if len(position) > 0 {
				if len(position) != 3 {
					return fmt.Errorf("--at needs 3 components, got %d", len(position))
				}
				s.scene.MoveCamera(mgl64.Vec3{position[0], position[1], position[2]})
			}

			s.switcher.Attach()
			snapshot, _ := s.switcher.GetVolumeSnapshot(false)
			return printSnapshot(cmd.OutOrStdout(), s, snapshot)
		},
	}
	cmd.Flags().Float64SliceVar(&position, "at", nil, "camera position x,y,z")

	return cmd
}

func printSnapshot(w io.Writer, s *session, snapshot *switcher.Snapshot) error {
	out := termenv.NewOutput(w)
	header := out.String().Bold()

	if position, ok := snapshot.Observer(); ok {
		fmt.Fprintf(w, "%s %.1f %.1f %.1f\n", header.Styled("camera"), position.X(), position.Y(), position.Z())
	} else {
		fmt.Fprintf(w, "%s none\n", header.Styled("camera"))
	}

	effective, _ := snapshot.Effective()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header.Styled("VOLUME\tPRIORITY\tENABLED\tINSIDE\tDISTANCE"))

	// reverse order, highest priority first
	names := snapshot.Names()
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		status, _ := snapshot.Status(name)

		distance := fmt.Sprintf("%.2f", status.Distance)
		if status.Distance >= volume.BigNumber {
			distance = "inf"
		}

		style := out.String()
		switch {
		case name == effective:
			style = style.Bold().Foreground(out.Color("#00ff00"))
		case status.Inside && status.Enabled:
			style = style.Foreground(out.Color("#00aa00"))
		case !status.Enabled:
			style = style.Faint()
		}

		fmt.Fprintln(tw, style.Styled(fmt.Sprintf("%s\t%g\t%t\t%t\t%s", name, status.Priority, status.Enabled, status.Inside, distance)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s %g\n", header.Styled("max priority"), snapshot.MaxPriority())
	if effective == "" {
		effective = "none"
	}
	fmt.Fprintf(w, "%s %s\n", header.Styled("effective"), effective)
	for _, o := range snapshot.AmbiguousOverlaps() {
		warning := out.String().Foreground(out.Color("#ffaa00"))
		fmt.Fprintln(w, warning.Styled(fmt.Sprintf("overlap %s and %s share priority %g", o.A, o.B, o.Priority)))
	}

	state := s.switcher.Overrides.State()
	fmt.Fprintf(w, "%s %t\n", header.Styled("overrides"), state.Enabled)

	settings, err := s.switcher.Overrides.QueryEffectiveSettings()
	if err != nil {
		fmt.Fprintf(w, "%s %v\n", header.Styled("settings"), err)
		return nil
	}
	for _, category := range switcher.Categories {
		fmt.Fprintf(w, "  %s %s\n", category, settings.Method(category))
	}
	fmt.Fprintf(w, "%s %t\n", header.Styled("hardware ray tracing"), s.switcher.HardwareRayTracing())

	return nil
}
