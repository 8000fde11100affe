package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/akmonengine/switcher"
	"github.com/akmonengine/switcher/host"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var actionNames = map[string]switcher.Action{
	"toggle":      switcher.ActionToggleOverrides,
	"cycle-gi":    switcher.ActionCycleGlobalIllumination,
	"cycle-refl":  switcher.ActionCycleReflection,
	"toggle-hwrt": switcher.ActionToggleHardwareRayTracing,
	"disable-all": switcher.ActionDisableAllVolumes,
}

// scheduledAction is an action requested once the simulation clock reaches at
type scheduledAction struct {
	at     float64
	action switcher.Action
	name   string
}

// parseScheduledAction parses "seconds:name", e.g. "1.5:cycle-gi"
func parseScheduledAction(s string) (scheduledAction, error) {
	at, name, ok := strings.Cut(s, ":")
	if !ok {
		at, name = "0", s
	}

	seconds, err := strconv.ParseFloat(at, 64)
	if err != nil {
		return scheduledAction{}, fmt.Errorf("action %q: %w", s, err)
	}
	action, ok := actionNames[name]
	if !ok {
		return scheduledAction{}, fmt.Errorf("action %q: unknown action %q", s, name)
	}

	return scheduledAction{at: seconds, action: action, name: name}, nil
}

func newSimulateCommand(opts *options) *cobra.Command {
	var (
		duration float64
		dt       float64
		actions  []string
	)

	cmd := &cobra.Command{
		Use:   "simulate <scene>",
		Short: "Move the camera along its path and print containment events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dt <= 0 {
				return fmt.Errorf("--dt must be positive, got %v", dt)
			}

			scheduled := make([]scheduledAction, 0, len(actions))
			for _, a := range actions {
				action, err := parseScheduledAction(a)
				if err != nil {
					return err
				}
				scheduled = append(scheduled, action)
			}

			w := cmd.OutOrStdout()
			clock := 0.0
			s, err := opts.load(cmd, args[0], func(value float64) {
				fmt.Fprintf(w, "%8.3fs  report %.1f fps\n", clock, value)
			})
			if err != nil {
				return err
			}
			subscribe(w, s.switcher, func() float64 { return clock })

			s.switcher.Attach()
			for ; clock < duration; clock += dt {
				if err := cmd.Context().Err(); err != nil {
					return err
				}

				for i := 0; i < len(scheduled); {
					if scheduled[i].at <= clock {
						fmt.Fprintf(w, "%8.3fs  action %s\n", clock, scheduled[i].name)
						s.switcher.Request(scheduled[i].action)
						scheduled = append(scheduled[:i], scheduled[i+1:]...)
						continue
					}
					i++
				}

				s.scene.Advance(dt)
				s.switcher.Tick(dt)
			}

			snapshot := s.switcher.Registry.Snapshot()
			return printSnapshot(w, s, snapshot)
		},
	}
	cmd.Flags().Float64Var(&duration, "duration", 10, "simulated seconds")
	cmd.Flags().Float64Var(&dt, "dt", 1.0/60, "tick length in seconds")
	cmd.Flags().StringArrayVar(&actions, "action", nil, "seconds:action to request, one of toggle, cycle-gi, cycle-refl, toggle-hwrt, disable-all")

	return cmd
}

func newWatchCommand(opts *options) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch <scene>",
		Short: "Tick in real time and rebuild when the scene file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %v", interval)
			}

			w := cmd.OutOrStdout()
			start := time.Now()
			elapsed := func() float64 { return time.Since(start).Seconds() }

			s, err := opts.load(cmd, args[0], func(value float64) {
				fmt.Fprintf(w, "%8.3fs  report %.1f fps\n", elapsed(), value)
			})
			if err != nil {
				return err
			}
			subscribe(w, s.switcher, elapsed)

			watcher, err := host.NewWatcher(s.scene.Path(), s.logger)
			if err != nil {
				return err
			}
			defer watcher.Close()
			go watcher.Run(cmd.Context())

			s.switcher.Attach()

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			last := time.Now()

			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case <-watcher.Changes():
					if err := s.scene.Reload(); err != nil {
						s.logger.Error("reload scene", "err", err)
						continue
					}
					snapshot, _ := s.switcher.GetVolumeSnapshot(true)
					fmt.Fprintf(w, "%8.3fs  reloaded, %d volumes\n", elapsed(), snapshot.Len())
				case now := <-ticker.C:
					dt := now.Sub(last).Seconds()
					last = now
					s.scene.Advance(dt)
					s.switcher.Tick(dt)
				}
			}
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 100*time.Millisecond, "tick interval")

	return cmd
}

// subscribe prints containment events as they are flushed
func subscribe(w io.Writer, s *switcher.Switcher, clock func() float64) {
	out := termenv.NewOutput(w)
	enter := out.String().Foreground(out.Color("#00aa00"))
	exit := out.String().Foreground(out.Color("#aa0000"))
	changed := out.String().Bold()

	s.Events.Subscribe(switcher.VOLUME_ENTER, func(event switcher.Event) {
		e := event.(switcher.VolumeEnterEvent)
		fmt.Fprintf(w, "%8.3fs  %s %s (priority %g)\n", clock(), enter.Styled("enter"), e.Volume, e.Priority)
	})
	s.Events.Subscribe(switcher.VOLUME_EXIT, func(event switcher.Event) {
		e := event.(switcher.VolumeExitEvent)
		fmt.Fprintf(w, "%8.3fs  %s %s\n", clock(), exit.Styled("exit"), e.Volume)
	})
	s.Events.Subscribe(switcher.EFFECTIVE_CHANGED, func(event switcher.Event) {
		e := event.(switcher.EffectiveChangedEvent)
		current := e.Current
		if current == "" {
			current = "none"
		}
		fmt.Fprintf(w, "%8.3fs  %s %s\n", clock(), changed.Styled("effective"), current)
	})
}
