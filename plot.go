package pundit

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// SentimentSeriesPlot renders aggregate sentiment over time, one line per
// rating, and saves it to path (format inferred from the extension).
func SentimentSeriesPlot(groups []GroupScore, path string) error {
	p := plot.New()
	p.Title.Text = "Sentiment by rating over time"
	p.X.Label.Text = "Day"
	p.Y.Label.Text = "Aggregate sentiment"

	series := make(map[string]plotter.XYs)
	var order []string
	for _, g := range groups {
		if _, ok := series[g.Rating]; !ok {
			order = append(order, g.Rating)
		}
		series[g.Rating] = append(series[g.Rating], plotter.XY{X: float64(g.Day), Y: g.Score})
	}

	for i, rating := range order {
		line, err := plotter.NewLine(series[rating])
		if err != nil {
			return fmt.Errorf("building sentiment series for %q: %w", rating, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(rating, line)
	}
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving sentiment plot: %w", err)
	}
	return nil
}

// ContributionPlot renders the n terms with the largest absolute contribution
// to the corpus sentiment total as a bar chart.
func ContributionPlot(contribs []TermContribution, n int, path string) error {
	if n > len(contribs) {
		n = len(contribs)
	}
	contribs = contribs[:n]

	p := plot.New()
	p.Title.Text = "Sentiment contribution by term"
	p.Y.Label.Text = "Score x occurrences"

	values := make(plotter.Values, len(contribs))
	names := make([]string, len(contribs))
	for i, c := range contribs {
		values[i] = c.Total
		names[i] = c.Term
	}

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return fmt.Errorf("building contribution bars: %w", err)
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 1.2
	p.X.Tick.Label.XAlign = -0.9

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving contribution plot: %w", err)
	}
	return nil
}

// TopicSummaryPlot renders expected corpus-wide topic proportions, each bar
// labeled with the topic's top words.
func TopicSummaryPlot(model *TopicModel, labelWords int, path string) error {
	p := plot.New()
	p.Title.Text = "Expected topic proportions"
	p.Y.Label.Text = "Proportion"

	summary := model.Summary()
	top := model.TopWords(labelWords)

	values := make(plotter.Values, len(summary))
	names := make([]string, len(summary))
	for topic, prop := range summary {
		values[topic] = prop
		label := fmt.Sprintf("%d", topic+1)
		if len(top[topic]) > 0 {
			label += ":"
			for i, wt := range top[topic] {
				if i > 0 {
					label += ","
				}
				label += wt.Term
			}
		}
		names[topic] = label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return fmt.Errorf("building topic summary bars: %w", err)
	}
	bars.Color = plotutil.Color(2)
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 1.2
	p.X.Tick.Label.XAlign = -0.9

	if err := p.Save(9*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving topic summary plot: %w", err)
	}
	return nil
}
