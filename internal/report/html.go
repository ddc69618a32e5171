package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"msrcli/pkg/contracts/domain"
)

// Options controls what the generated report shows. Nil range bounds mean
// auto scale, matching the axis behavior of the original plotting tool.
type Options struct {
	ShowTotal    bool
	ShowMax      bool
	PlotSpectrum bool

	AccMinG *float64
	AccMaxG *float64
	TMinMs  *float64
	TMaxMs  *float64
	PSMinG2 *float64
	PSMaxG2 *float64
}

// DefaultOptions returns the options used when no flags are given.
func DefaultOptions() Options {
	return Options{ShowTotal: true, ShowMax: true, PlotSpectrum: true}
}

// Generator builds HTML reports from shock events.
type Generator struct {
	opts Options
}

// NewGenerator creates a report generator.
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

// WriteHTML renders the report for the given events into a file.
func (g *Generator) WriteHTML(path string, events []*domain.ShockEvent) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	return g.Render(f, events)
}

// Render writes the report HTML to w.
func (g *Generator) Render(w io.Writer, events []*domain.ShockEvent) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)

	for _, event := range events {
		page.AddCharts(g.timeSeriesChart(event))
		if g.opts.PlotSpectrum && len(event.Spectrum.FreqHz) > 0 {
			page.AddCharts(g.spectrumChart(event))
		}
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func (g *Generator) timeSeriesChart(event *domain.ShockEvent) *charts.Line {
	title := fmt.Sprintf("Event %s", event.EventID)
	subtitle := fmt.Sprintf("%.1f Hz, %.1f ms", event.SamplingFrequencyHz(), event.DurationMs())
	if !event.Timestamp.IsZero() {
		subtitle = event.Timestamp.Format("2006-01-02 15:04:05") + ", " + subtitle
	}
	if g.opts.ShowTotal && g.opts.ShowMax {
		subtitle += fmt.Sprintf(", Max: %.1f g", event.MaxG)
	}

	yAxis := opts.YAxis{Name: "Acceleration [g]"}
	if g.opts.AccMinG != nil {
		yAxis.Min = *g.opts.AccMinG
	}
	if g.opts.AccMaxG != nil {
		yAxis.Max = *g.opts.AccMaxG
	}

	xAxis := opts.XAxis{Name: "Time [ms]"}
	if g.opts.TMinMs != nil {
		xAxis.Min = *g.opts.TMinMs
	}
	if g.opts.TMaxMs != nil {
		xAxis.Max = *g.opts.TMaxMs
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(yAxis),
	)

	line.SetXAxis(axisLabels(event.TMs)).
		AddSeries("X", lineData(event.XG)).
		AddSeries("Y", lineData(event.YG)).
		AddSeries("Z", lineData(event.ZG))
	if g.opts.ShowTotal {
		line.AddSeries("Total", lineData(event.TotalG))
	}
	return line
}

func (g *Generator) spectrumChart(event *domain.ShockEvent) *charts.Line {
	yAxis := opts.YAxis{Name: "Power Spectrum [g²]", Type: "log"}
	if g.opts.PSMinG2 != nil {
		yAxis.Min = *g.opts.PSMinG2
	}
	if g.opts.PSMaxG2 != nil {
		yAxis.Max = *g.opts.PSMaxG2
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Event %s Power Spectrum", event.EventID)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Frequency [Hz]"}),
		charts.WithYAxisOpts(yAxis),
	)

	line.SetXAxis(axisLabels(event.Spectrum.FreqHz)).
		AddSeries("X", lineData(event.Spectrum.XPower)).
		AddSeries("Y", lineData(event.Spectrum.YPower)).
		AddSeries("Z", lineData(event.Spectrum.ZPower))
	return line
}

func axisLabels(values []float64) []string {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = fmt.Sprintf("%g", v)
	}
	return labels
}

func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}
