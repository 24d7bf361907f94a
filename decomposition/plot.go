package decomposition

import (
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/featkit/pkg/errors"
)

// ScreePlot は保持した主成分ごとの説明分散比の棒グラフと累積比の折れ線を描く
//
// 返した plot.Plot の保存は呼び出し側で行う:
//
//	p, err := decomposition.ScreePlot(m)
//	if err != nil {
//		return err
//	}
//	err = p.Save(4*vg.Inch, 3*vg.Inch, "scree.png")
func ScreePlot(m *PCAModel) (*plot.Plot, error) {
	ratios := m.ExplainedVarianceRatio()

	p := plot.New()
	p.Title.Text = "Scree plot"
	p.X.Label.Text = "Component"
	p.Y.Label.Text = "Explained variance ratio"

	bars, err := plotter.NewBarChart(plotter.Values(ratios), vg.Points(20))
	if err != nil {
		return nil, errors.Wrap(err, "ScreePlot: bar chart")
	}
	bars.Color = color.Gray{Y: 160}

	cumulative := make(plotter.XYs, len(ratios))
	var running float64
	for i, r := range ratios {
		running += r
		cumulative[i].X = float64(i)
		cumulative[i].Y = running
	}
	line, err := plotter.NewLine(cumulative)
	if err != nil {
		return nil, errors.Wrap(err, "ScreePlot: cumulative line")
	}
	line.LineStyle.Width = vg.Points(1.5)

	p.Add(bars, line)
	// Add は累積比の丸め誤差で範囲を広げるので後から固定する
	p.Y.Min = 0
	p.Y.Max = 1
	p.Legend.Add("ratio", bars)
	p.Legend.Add("cumulative", line)
	p.Legend.Top = true

	names := make([]string, len(ratios))
	for i := range names {
		names[i] = "PC" + strconv.Itoa(i+1)
	}
	p.NominalX(names...)

	return p, nil
}
