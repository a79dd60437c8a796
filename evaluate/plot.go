package evaluate

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/tslearn/pkg/errors"
	"github.com/YuminosukeSato/tslearn/timeseries"
)

// Plot は元系列・訓練予測・テスト予測の3本の折れ線グラフを作成する。
// 予測曲線はAlignForPlotで元系列のインデックスに揃えてから描画する。
func Plot(original *timeseries.Series, rep *Report, windowLen int) (*plot.Plot, error) {
	trainCurve, testCurve := AlignForPlot(original.Len(), rep, windowLen)

	p := plot.New()
	p.Title.Text = original.Name
	p.X.Label.Text = "Time step"
	p.Y.Label.Text = "Value"

	err := plotutil.AddLines(p,
		"Observed", curveXYs(original.Values),
		"Train forecast", curveXYs(trainCurve),
		"Test forecast", curveXYs(testCurve),
	)
	if err != nil {
		return nil, errors.Wrap(err, "evaluate.Plot: add lines")
	}

	return p, nil
}

// SavePNG はプロットをPNGファイルとして保存する
func SavePNG(p *plot.Plot, path string) error {
	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "evaluate.SavePNG: %s", path)
	}
	return nil
}

// curveXYs はNaNをスキップして曲線を点列に変換する
func curveXYs(values []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(i), Y: v})
	}
	return xys
}
