package main

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/nodefield/config"
	"github.com/lixenwraith/nodefield/graph"
	"github.com/lixenwraith/nodefield/parameter"
	"github.com/lixenwraith/nodefield/simulation"
	"github.com/lixenwraith/nodefield/status"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(parameter.ColorPulse))

	labelStyle = lipgloss.NewStyle().
			Width(18).
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#AAAAAA"})

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(parameter.ColorPulse))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(parameter.ColorConnection)).
			Padding(0, 1)
)

func newStatsCmd() *cobra.Command {
	var frames, fps int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Run the simulation headless and report graph and pulse statistics",
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
			report, err := collectStats(cfg, frames, fps)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.Render())
			return nil
		},
	}

	cmd.Flags().IntVar(&frames, "frames", 300, "Number of frames to simulate")
	cmd.Flags().IntVar(&fps, "fps", parameter.DefaultFPS, "Simulated frame rate")
	return cmd
}

// metricLabels names registry keys in the report and HUD; unknown keys print as-is
var metricLabels = map[string]string{
	status.Frames:        "frames",
	status.ClampedSteps:  "clamped steps",
	status.PulsesSpawned: "pulses spawned",
	status.PulsesRetired: "pulses retired",
	status.VelocityClamp: "velocity clamps",
	status.Elapsed:       "elapsed (s)",
	status.MaxSpeed:      "max speed",
	status.PulsesActive:  "pulses active",
	status.GravityFactor: "gravity factor",
}

func metricLabel(key string) string {
	if label, ok := metricLabels[key]; ok {
		return label
	}
	return key
}

// metricRow is one registry entry formatted for display
type metricRow struct {
	Key   string
	Value string
}

// statsReport summarizes a headless run
type statsReport struct {
	Seed    uint64
	Mode    string
	Nodes   int
	Edges   int
	Degrees []int // histogram, index is degree

	Frames         int64
	Spawned        int64
	Retired        int64
	ClampedSteps   int64
	VelocityClamps int64
	Active         int
	Elapsed        float64
	MaxSpeed       float64
	GravityFactor  float64

	// Metrics lists every registry entry, counters then gauges, each sorted by key
	Metrics []metricRow
}

// collectStats drives frames fixed steps of 1/fps with a still pointer
// Steps longer than max_frame_step are clamped and counted like a stalled frame
func collectStats(cfg *config.Config, frames, fps int) (*statsReport, error) {
	if frames < 0 {
		return nil, fmt.Errorf("%w: frames must be non-negative, got %d", config.ErrInvalid, frames)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("%w: fps must be positive, got %d", config.ErrInvalid, fps)
	}

	sim, err := simulation.New(cfg)
	if err != nil {
		return nil, err
	}

	step := 1 / float64(fps)
	for i := 0; i < frames; i++ {
		sim.Update(simulation.FrameInput{Elapsed: float64(i) * step})
	}

	m := sim.Metrics()
	report := &statsReport{
		Seed:           sim.Seed(),
		Mode:           sim.Mode().String(),
		Nodes:          len(sim.Nodes()),
		Edges:          len(sim.Connections()),
		Frames:         m.Counter(status.Frames),
		Spawned:        m.Counter(status.PulsesSpawned),
		Retired:        m.Counter(status.PulsesRetired),
		ClampedSteps:   m.Counter(status.ClampedSteps),
		VelocityClamps: m.Counter(status.VelocityClamp),
		Active:         int(m.Gauge(status.PulsesActive)),
		Elapsed:        m.Gauge(status.Elapsed),
		MaxSpeed:       m.Gauge(status.MaxSpeed),
		GravityFactor:  m.Gauge(status.GravityFactor),
		Metrics:        make([]metricRow, 0, m.TotalCount()),
	}

	m.Counters.Range(func(key string, v *atomic.Int64) {
		report.Metrics = append(report.Metrics, metricRow{Key: key, Value: fmt.Sprintf("%d", v.Load())})
	})
	m.Gauges.Range(func(key string, v *status.AtomicFloat) {
		report.Metrics = append(report.Metrics, metricRow{Key: key, Value: fmt.Sprintf("%.3f", v.Get())})
	})

	for _, d := range graph.Degrees(report.Nodes, sim.Connections()) {
		for len(report.Degrees) <= d {
			report.Degrees = append(report.Degrees, 0)
		}
		report.Degrees[d]++
	}
	return report, nil
}

// Render formats the report for a terminal
func (r *statsReport) Render() string {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
	}

	rows := []string{
		titleStyle.Render("nodefield stats"),
		"",
		row("seed", fmt.Sprintf("%d", r.Seed)),
		row("mode", r.Mode),
		row("nodes", fmt.Sprintf("%d", r.Nodes)),
		row("edges", fmt.Sprintf("%d", r.Edges)),
		"",
		titleStyle.Render(fmt.Sprintf("metrics (%d)", len(r.Metrics))),
	}
	for _, m := range r.Metrics {
		rows = append(rows, row(metricLabel(m.Key), m.Value))
	}

	rows = append(rows, "", titleStyle.Render("degree histogram"))
	for d, count := range r.Degrees {
		bar := barStyle.Render(strings.Repeat("■", count))
		rows = append(rows, row(fmt.Sprintf("degree %d", d), fmt.Sprintf("%3d ", count))+bar)
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
