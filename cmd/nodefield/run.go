package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/nodefield/audio"
	"github.com/lixenwraith/nodefield/config"
	"github.com/lixenwraith/nodefield/core"
	"github.com/lixenwraith/nodefield/input"
	"github.com/lixenwraith/nodefield/parameter"
	"github.com/lixenwraith/nodefield/physics"
	"github.com/lixenwraith/nodefield/render"
	"github.com/lixenwraith/nodefield/simulation"
	"github.com/lixenwraith/nodefield/status"
)

type runOptions struct {
	fps   int
	sound bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Render the node field in the terminal",
		Long: `Render the node field full-screen at a fixed frame rate.

Keys: m toggles kinematic/inertial floating, s toggles sound,
space pauses, q or Esc quits. In inertial mode mouse movement
strengthens the pull toward the attractor.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logPath, _ := cmd.Flags().GetString("log")
			logFile, err := setupLogging(logPath)
			if err != nil {
				return err
			}
			if logFile != nil {
				defer logFile.Close()
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if opts.fps <= 0 {
				return fmt.Errorf("%w: fps must be positive, got %d", config.ErrInvalid, opts.fps)
			}
			return runSandbox(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().IntVar(&opts.fps, "fps", parameter.DefaultFPS, "Frame rate")
	cmd.Flags().BoolVar(&opts.sound, "sound", false, "Chime when a pulse arrives")
	return cmd
}

// sandbox holds the interactive loop state
type sandbox struct {
	screen  tcell.Screen
	sim     *simulation.Simulation
	scene   *render.Scene
	pointer *input.Pointer
	chime   *audio.Chime

	frame     *simulation.Frame
	paused    bool
	soundOn   bool
	soundOpen bool
}

func runSandbox(ctx context.Context, cfg *config.Config, opts runOptions) error {
	sim, err := simulation.New(cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	// Panic recovery: restore the terminal before reporting
	core.SetCrashScreen(screen)
	defer core.SetCrashScreen(nil)
	defer func() {
		core.HandleCrash(recover())
	}()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	sb := &sandbox{
		screen:  screen,
		sim:     sim,
		scene:   render.NewScene(screen, render.DefaultCamera(), render.DefaultPalette()),
		pointer: input.NewPointer(opts.fps),
		chime:   audio.NewChime(cfg.Graph.MaxDistance),
	}
	defer sb.chime.Cleanup()
	if opts.sound {
		sb.toggleSound()
	}

	eventChan := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// screen finalized
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	ticker := time.NewTicker(time.Second / time.Duration(opts.fps))
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			if quit := sb.handle(input.Translate(ev)); quit {
				return nil
			}
		case <-ticker.C:
			sb.tick(time.Since(start).Seconds())
		}
	}
}

// handle applies one intent, returns true on quit
func (sb *sandbox) handle(in input.Intent) bool {
	switch in.Type {
	case input.IntentQuit:
		return true
	case input.IntentPause:
		sb.paused = !sb.paused
	case input.IntentToggleMode:
		if sb.sim.Mode() == physics.ModeInertial {
			sb.sim.SetMode(physics.ModeKinematic)
		} else {
			sb.sim.SetMode(physics.ModeInertial)
		}
	case input.IntentToggleSound:
		sb.toggleSound()
	case input.IntentResize:
		sb.screen.Sync()
	case input.IntentPointer:
		sb.pointer.Move(in.X, in.Y)
	case input.IntentFocus:
		sb.pointer.SetVisible(in.Focused)
	}
	return false
}

// toggleSound opens the speaker on first use, then flips mute
func (sb *sandbox) toggleSound() {
	if !sb.soundOpen {
		if err := sb.chime.Initialize(); err != nil {
			log.Printf("audio unavailable: %v", err)
			return
		}
		sb.soundOpen = true
		sb.soundOn = true
		return
	}
	sb.soundOn = sb.chime.ToggleMute()
}

// tick advances the simulation unless withheld, then redraws
// A withheld frame leaves a gap in elapsed time that the next Update clamps
func (sb *sandbox) tick(elapsed float64) {
	sb.pointer.Tick()
	focused := sb.pointer.Visible()

	if !sb.paused && focused {
		sb.frame = sb.sim.Update(simulation.FrameInput{
			Elapsed:       elapsed,
			PointerOffset: sb.pointer.Offset(),
		})

		conns := sb.sim.Connections()
		for _, p := range sb.frame.Retired {
			sb.chime.Play(conns[p.Connection].Distance)
		}
	}

	// field drifts toward the smoothed cursor, holding its place while the pointer is away
	if x, y, ok := sb.pointer.Position(); ok {
		w, h := sb.scene.ViewSize()
		sb.scene.SetOffset(
			(x-float64(w)/2)*parameter.FollowStrength,
			(y-float64(h)/2)*parameter.FollowStrength,
		)
	}

	sb.scene.Draw(sb.frame, formatHUD(sb.sim, sb.paused, focused, sb.soundOn))
}

// formatHUD renders the status line from the simulation's metrics registry
func formatHUD(sim *simulation.Simulation, paused, focused, soundOn bool) string {
	state := ""
	switch {
	case paused:
		state = " PAUSED"
	case !focused:
		state = " IDLE"
	}
	sound := "off"
	if soundOn {
		sound = "on"
	}

	m := sim.Metrics()
	hud := fmt.Sprintf(" %s  nodes %d  edges %d  frames %d  pulses %d (+%d -%d)  clamped %d  vmax %.2f",
		sim.Mode(), len(sim.Nodes()), len(sim.Connections()),
		m.Counter(status.Frames),
		int(m.Gauge(status.PulsesActive)), m.Counter(status.PulsesSpawned), m.Counter(status.PulsesRetired),
		m.Counter(status.ClampedSteps), m.Gauge(status.MaxSpeed))
	if sim.Mode() == physics.ModeInertial {
		hud += fmt.Sprintf("  gravity x%.2f", m.Gauge(status.GravityFactor))
	}
	return hud + fmt.Sprintf("  sound %s  seed %d%s   [m]ode [s]ound [space] pause [q]uit", sound, sim.Seed(), state)
}
