// Package evaluate は学習済みモデルの訓練・テスト評価とプロット整列を提供する
package evaluate

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tslearn/core/model"
	"github.com/YuminosukeSato/tslearn/dataset"
	"github.com/YuminosukeSato/tslearn/metrics"
	"github.com/YuminosukeSato/tslearn/pkg/errors"
	"github.com/YuminosukeSato/tslearn/timeseries"
)

// Harness は学習済みモデル・フィット済みスケーラー・ウィンドウ変換を束ねて
// 訓練／テスト両区間の評価を一括実行する。
//
// スケーラーは訓練データでフィット済みであること。Evaluateは同じ統計量で
// 両区間を変換するため、テスト区間でフィットし直すことはない。
type Harness struct {
	Model  model.Predictor
	Scaler model.InvertibleTransformer
	Window *dataset.SlidingWindow
}

// NewHarness は新しいHarnessを作成する
func NewHarness(m model.Predictor, s model.InvertibleTransformer, w *dataset.SlidingWindow) *Harness {
	return &Harness{Model: m, Scaler: s, Window: w}
}

// Report は評価結果。RMSEと予測値はいずれも逆変換後の元スケール。
type Report struct {
	TrainRMSE float64
	TestRMSE  float64

	// TrainPred / TestPred は各区間のウィンドウごとの1ステップ先予測。
	// 要素iは区間内インデックスi+Lの値に対応する。
	TrainPred []float64
	TestPred  []float64
}

// Evaluate は両区間を正規化→ウィンドウ化→推論→逆変換し、
// 元スケールでのRMSEを区間ごとに計算する。
func (h *Harness) Evaluate(train, test *timeseries.Series) (*Report, error) {
	trainPred, trainRMSE, err := h.evaluatePartition(train)
	if err != nil {
		return nil, errors.Wrap(err, "Harness.Evaluate: train partition")
	}

	testPred, testRMSE, err := h.evaluatePartition(test)
	if err != nil {
		return nil, errors.Wrap(err, "Harness.Evaluate: test partition")
	}

	return &Report{
		TrainRMSE: trainRMSE,
		TestRMSE:  testRMSE,
		TrainPred: trainPred,
		TestPred:  testPred,
	}, nil
}

func (h *Harness) evaluatePartition(s *timeseries.Series) ([]float64, float64, error) {
	scaled, err := h.Scaler.Transform(seriesMatrix(s))
	if err != nil {
		return nil, 0, err
	}

	X, yScaled, err := h.Window.MakeMatrix(scaled)
	if err != nil {
		return nil, 0, err
	}

	predScaled, err := h.Model.Predict(X)
	if err != nil {
		return nil, 0, err
	}

	pred, err := h.Scaler.InverseTransform(predScaled)
	if err != nil {
		return nil, 0, err
	}
	y, err := h.Scaler.InverseTransform(yScaled)
	if err != nil {
		return nil, 0, err
	}

	rmse, err := metrics.RMSEMatrix(y, pred)
	if err != nil {
		return nil, 0, err
	}

	rows, _ := pred.Dims()
	values := make([]float64, rows)
	for i := 0; i < rows; i++ {
		values[i] = pred.At(i, 0)
	}
	return values, rmse, nil
}

// seriesMatrix は系列をn×1行列としてコピーする
func seriesMatrix(s *timeseries.Series) *mat.Dense {
	values := make([]float64, s.Len())
	copy(values, s.Values)
	return mat.NewDense(s.Len(), 1, values)
}

// AlignForPlot は予測値を元系列のインデックスに揃えた2本の曲線を返す。
// ウィンドウ化のトリムにより、訓練予測は元系列のインデックスLから、
// テスト予測はインデックス len(TrainPred)+2L+1（= 訓練区間長+L）から
// 始まる。予測の存在しない位置はNaNで埋める。
func AlignForPlot(originalLen int, rep *Report, windowLen int) (trainCurve, testCurve []float64) {
	trainCurve = nanSlice(originalLen)
	testCurve = nanSlice(originalLen)

	for i, v := range rep.TrainPred {
		if idx := i + windowLen; idx < originalLen {
			trainCurve[idx] = v
		}
	}

	testOffset := len(rep.TrainPred) + 2*windowLen + 1
	for i, v := range rep.TestPred {
		if idx := i + testOffset; idx < originalLen {
			testCurve[idx] = v
		}
	}

	return trainCurve, testCurve
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
