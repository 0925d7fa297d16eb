package core

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	m "cryptoforecast/data/models"
)

const (
	PlotFileName = "crypto_regression.png"
	plotTitle    = "Cryptocurrency Price Predictions Using Linear Regression"
	plotWidth    = 12 * vg.Inch
	plotHeight   = 8 * vg.Inch
	scatterAlpha = 0.6
)

var dashes = []vg.Length{vg.Points(6), vg.Points(3)}

// RenderForecastPlot draws every table's actual prices as a scatter and its in-sample
// predictions as a dashed line on one chart, then saves it to path. The format follows the extension.
func RenderForecastPlot(tables []*m.PriceTable, path string) error {
	p := plot.New()
	p.Title.Text = plotTitle
	p.X.Label.Text = "Days"
	p.Y.Label.Text = "Price (USD)"
	p.Legend.Top = true
	p.Legend.Left = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{Y: 128}
	grid.Vertical.Dashes = dashes
	grid.Horizontal.Color = color.Gray{Y: 128}
	grid.Horizontal.Dashes = dashes
	p.Add(grid)

	for i, table := range tables {
		actual, predicted := plotPoints(table)
		lineColor := plotutil.Color(i)

		scatter, err := plotter.NewScatter(actual)
		if err != nil {
			return fmt.Errorf("error building scatter for %s: %w", table.Symbol, err)
		}
		scatter.GlyphStyle.Color = withAlpha(lineColor, scatterAlpha)
		scatter.GlyphStyle.Radius = vg.Points(2)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}

		line, err := plotter.NewLine(predicted)
		if err != nil {
			return fmt.Errorf("error building regression line for %s: %w", table.Symbol, err)
		}
		line.LineStyle.Color = lineColor
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Dashes = dashes

		p.Add(scatter, line)
		p.Legend.Add(fmt.Sprintf("%s Actual Prices", table.Symbol), scatter)
		p.Legend.Add(fmt.Sprintf("%s Regression Line", table.Symbol), line)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating plot directory: %w", err)
	}

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("error saving plot to %s: %w", path, err)
	}

	return nil
}

// plotPoints skips rows the forecaster has not filled in yet.
func plotPoints(table *m.PriceTable) (actual, predicted plotter.XYs) {
	for _, r := range table.Rows {
		if !r.DayOffset.Valid {
			continue
		}
		day := float64(r.DayOffset.Int64)
		actual = append(actual, plotter.XY{X: day, Y: r.Price})
		if r.PredictedPrice.Valid {
			predicted = append(predicted, plotter.XY{X: day, Y: r.PredictedPrice.Float64})
		}
	}
	return
}

func withAlpha(c color.Color, alpha float64) color.Color {
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	nrgba.A = uint8(alpha * 255)
	return nrgba
}
