package core

// chart.go turns a column of a stored table into a chart-library-agnostic
// payload. Unsupported requests yield EmptyChart rather than an error.

import (
	"sort"
	"time"
)

// Chart types accepted by PrepareChartData.
const (
	ChartBar  = "bar"
	ChartPie  = "pie"
	ChartLine = "line"
)

// DateColumn is the column line charts are plotted against.
const DateColumn = "date"

var (
	barFillColors = []string{
		"rgba(255, 99, 132, 0.8)",
		"rgba(54, 162, 235, 0.8)",
		"rgba(255, 205, 86, 0.8)",
		"rgba(75, 192, 192, 0.8)",
		"rgba(153, 102, 255, 0.8)",
		"rgba(255, 159, 64, 0.8)",
	}
	barBorderColors = []string{
		"rgba(255, 99, 132, 1)",
		"rgba(54, 162, 235, 1)",
		"rgba(255, 205, 86, 1)",
		"rgba(75, 192, 192, 1)",
		"rgba(153, 102, 255, 1)",
		"rgba(255, 159, 64, 1)",
	}
	pieColors = []string{
		"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0",
		"#9966FF", "#FF9F40", "#FF6384", "#C9CBCF",
	}
)

const (
	lineBorderColor = "rgba(75, 192, 192, 1)"
	lineFillColor   = "rgba(75, 192, 192, 0.2)"
	lineTension     = 0.1
)

// ChartPayload is a set of labelled series ready for a charting library.
type ChartPayload struct {
	Labels    []string `json:"labels"`
	Datasets  []Series `json:"datasets"`
	ChartType string   `json:"chart_type,omitempty"`
}

// Series is one series of a chart. Colour fields hold either a single
// colour or one colour per label.
type Series struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor any       `json:"backgroundColor,omitempty"`
	BorderColor     any       `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
}

// EmptyChart returns the payload used for unsupported chart requests.
func EmptyChart() ChartPayload {
	return ChartPayload{Labels: []string{}, Datasets: []Series{}}
}

// PrepareChartData builds the payload for chartType over column.
func PrepareChartData(t *Table, chartType, column string) ChartPayload {
	switch chartType {
	case ChartBar:
		col := t.Column(column)
		if col == nil {
			return EmptyChart()
		}
		counts := ValueCounts(col)
		return ChartPayload{
			Labels: counts.Keys(),
			Datasets: []Series{{
				Label:           DisplayName(column) + " Distribution",
				Data:            counts.Values(),
				BackgroundColor: cyclePalette(barFillColors, len(counts)),
				BorderColor:     cyclePalette(barBorderColors, len(counts)),
				BorderWidth:     1,
			}},
			ChartType: ChartBar,
		}

	case ChartPie:
		col := t.Column(column)
		if col == nil {
			return EmptyChart()
		}
		counts := ValueCounts(col)
		return ChartPayload{
			Labels: counts.Keys(),
			Datasets: []Series{{
				Data:            counts.Values(),
				BackgroundColor: cyclePalette(pieColors, len(counts)),
			}},
			ChartType: ChartPie,
		}

	case ChartLine:
		dates, values := t.Column(DateColumn), t.Column(column)
		if dates == nil || values == nil {
			return EmptyChart()
		}
		labels, sums := timeSeries(dates, values)
		return ChartPayload{
			Labels: labels,
			Datasets: []Series{{
				Label:           DisplayName(column) + " Over Time",
				Data:            sums,
				BorderColor:     lineBorderColor,
				BackgroundColor: lineFillColor,
				Tension:         lineTension,
			}},
			ChartType: ChartLine,
		}
	}

	return EmptyChart()
}

// timeSeries sums values per calendar day of dates, oldest first.
// Rows whose date does not parse are left out.
func timeSeries(dates, values *Column) ([]string, []float64) {
	type point struct {
		day time.Time
		sum float64
	}
	index := make(map[time.Time]int)
	var points []point

	for i, c := range dates.Cells {
		if c.Missing {
			continue
		}
		d, ok := ParseDate(c.Text)
		if !ok {
			continue
		}
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		v, _ := numberAt(values, i)
		if pos, ok := index[day]; ok {
			points[pos].sum += v
			continue
		}
		index[day] = len(points)
		points = append(points, point{day: day, sum: v})
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].day.Before(points[j].day) })

	labels := make([]string, len(points))
	sums := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.day.Format("2006-01-02")
		sums[i] = p.sum
	}
	return labels, sums
}

// cyclePalette returns n colours, repeating the palette as needed.
func cyclePalette(palette []string, n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}
