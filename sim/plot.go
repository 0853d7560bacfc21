package sim

import (
	"fmt"
	"image/color"

	"github.com/omarmustafa130/go-histogram/matrix"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// beliefGrid implements plotter.GridXYZ.
// Grid row 0 is drawn at the top of the plot.
type beliefGrid struct {
	m mat.Matrix
}

func (g beliefGrid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g beliefGrid) Z(c, r int) float64 {
	rows, _ := g.m.Dims()
	return g.m.At(rows-1-r, c)
}

func (g beliefGrid) X(c int) float64 {
	return float64(c)
}

func (g beliefGrid) Y(r int) float64 {
	return float64(r)
}

// NewBeliefPlot creates a heat map of beliefs b with the true robot pose marked by a cross.
// It returns error if b is not a valid probability grid or if the truth lies outside of it.
func NewBeliefPlot(b mat.Matrix, truth Pose) (*plot.Plot, error) {
	if err := matrix.Validate(b); err != nil {
		return nil, err
	}

	rows, cols := b.Dims()
	if truth.Row < 0 || truth.Row >= rows || truth.Col < 0 || truth.Col >= cols {
		return nil, fmt.Errorf("Invalid truth pose: %v", truth)
	}

	p := plot.New()

	p.Title.Text = "Beliefs"
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Row"

	heat := plotter.NewHeatMap(beliefGrid{m: b}, palette.Heat(12, 1))
	heat.Min = 0
	heat.Max = mat.Max(b)
	if heat.Max <= 0 {
		heat.Max = 1
	}
	p.Add(heat)

	truthScatter, err := plotter.NewScatter(plotter.XYs{{X: float64(truth.Col), Y: float64(rows - 1 - truth.Row)}})
	if err != nil {
		return nil, fmt.Errorf("Failed to create scatter: %v", err)
	}
	truthScatter.GlyphStyle.Color = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	truthScatter.Shape = draw.CrossGlyph{}
	truthScatter.GlyphStyle.Radius = vg.Points(6)

	p.Add(truthScatter)

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend
	p.Legend.Add("truth", truthScatter)

	return p, nil
}

// NewTracePlot creates a plot of the belief held in the true robot cell
// and in the most likely cell over the simulation steps in recs.
// It returns error if recs contains fewer than 2 records or if the plot fails to be created.
func NewTracePlot(recs []Record) (*plot.Plot, error) {
	if len(recs) < 2 {
		return nil, fmt.Errorf("Invalid number of records: %d", len(recs))
	}

	p := plot.New()

	p.Title.Text = "Localization"
	p.X.Label.Text = "Step"
	p.Y.Label.Text = "Belief"
	p.Y.Min = 0
	p.Y.Max = 1

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	truthData := make(plotter.XYs, len(recs))
	estData := make(plotter.XYs, len(recs))
	var hits plotter.XYs
	for i, rec := range recs {
		truthData[i].X = float64(rec.Step)
		truthData[i].Y = rec.TruthBelief
		estData[i].X = float64(rec.Step)
		estData[i].Y = rec.Prob
		if rec.Hit() {
			hits = append(hits, plotter.XY{X: float64(rec.Step), Y: rec.Prob})
		}
	}

	truthLine, err := plotter.NewLine(truthData)
	if err != nil {
		return nil, fmt.Errorf("Failed to create line: %v", err)
	}
	truthLine.LineStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	truthLine.LineStyle.Width = vg.Points(1.5)

	p.Add(truthLine)
	p.Legend.Add("truth belief", truthLine)

	estLine, err := plotter.NewLine(estData)
	if err != nil {
		return nil, fmt.Errorf("Failed to create line: %v", err)
	}
	estLine.LineStyle.Color = color.RGBA{R: 169, G: 169, B: 169, A: 255}
	estLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(estLine)
	p.Legend.Add("estimate belief", estLine)

	if len(hits) > 0 {
		hitScatter, err := plotter.NewScatter(hits)
		if err != nil {
			return nil, fmt.Errorf("Failed to create scatter: %v", err)
		}
		hitScatter.GlyphStyle.Color = color.RGBA{G: 200, A: 255}
		hitScatter.Shape = draw.PyramidGlyph{}
		hitScatter.GlyphStyle.Radius = vg.Points(3)

		p.Add(hitScatter)
		p.Legend.Add("localized", hitScatter)
	}

	return p, nil
}
