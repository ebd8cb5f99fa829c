package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// htmlTimeFormat is the x-axis label format of the dashboard.
const htmlTimeFormat = "02 Jan 15:04"

// WriteHTML renders the dashboard to w: a smooth filled-area hydrograph with
// a mean-sea-level mark line, a range slider and a unified axis tooltip.
func WriteHTML(w io.Writer, rep *Report) error {
	if err := rep.check(); err != nil {
		return err
	}

	msl := rep.Series.Mean()

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Tide analysis",
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Tide analysis",
			Subtitle: fmt.Sprintf("Location: %s | Zone: %s | Type: %s",
				rep.position(), rep.Zone.Name, rep.Classification.Type),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
		charts.WithXAxisOpts(opts.XAxis{Name: fmt.Sprintf("Time (%s)", rep.Zone.Name)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Elevation (m)"}),
	)

	x := make([]string, len(rep.Series))
	y := make([]opts.LineData, len(rep.Series))
	for i, obs := range rep.Series {
		x[i] = obs.Time.Format(htmlTimeFormat)
		y[i] = opts.LineData{Value: obs.Elevation}
	}

	line.SetXAxis(x).AddSeries("Elevation (m)", y,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.4}),
		charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
			Name:  fmt.Sprintf("MSL (%.2fm)", msl),
			YAxis: msl,
		}),
	)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("report: render dashboard: %w", err)
	}
	return nil
}

// WriteHTMLFile renders the dashboard to path.
func WriteHTMLFile(path string, rep *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteHTML(f, rep)
}
