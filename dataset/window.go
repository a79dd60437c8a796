// Package dataset は時系列から教師あり学習用のデータセットを構築する
package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tslearn/pkg/errors"
)

// SlidingWindow は1次元系列を (入力ウィンドウ, 次の値) の教師ありペアに
// 変換するトランスフォーム。長さNの系列とウィンドウ長Lに対し、
//
//	(S[i:i+L], S[i+L])  for i = 0 … N-L-2
//
// のちょうど max(0, N-L-1) 個のペアを順序を保ったまま生成する。
// 系列末尾のL+1要素が構造的に切り捨てられるのは意図した境界トリムであり、
// Evaluatorのプロット整列もこのトリムを前提にしている。
//
// 訓練・テストをまたぐウィンドウが生成されないよう、分割後の各部分系列に
// 対して個別にMakeを呼ぶこと。
type SlidingWindow struct {
	// Length は入力ウィンドウの長さ（モデル入力の時刻ステップ数）
	Length int
}

// NewSlidingWindow は新しいSlidingWindowを作成する
func NewSlidingWindow(length int) *SlidingWindow {
	return &SlidingWindow{Length: length}
}

// Count は長さnの系列から生成されるペア数 max(0, n-L-1) を返す
func (w *SlidingWindow) Count(n int) int {
	pairs := n - w.Length - 1
	if pairs < 0 {
		return 0
	}
	return pairs
}

// Make は系列から教師ありペアを構築する。
// Xは (ペア数 × L) の行列、yは (ペア数 × 1) の列ベクトル行列。
// 系列が短すぎてペアが1つも作れない場合はErrSeriesTooShortを返す。
// 決定的で乱数は使用しない。
func (w *SlidingWindow) Make(series []float64) (X, y *mat.Dense, err error) {
	if w.Length <= 0 {
		return nil, nil, errors.NewValidationError("window_length", "must be positive", w.Length)
	}

	pairs := w.Count(len(series))
	if pairs == 0 {
		return nil, nil, errors.Wrapf(errors.ErrSeriesTooShort,
			"SlidingWindow.Make: need more than %d values, got %d", w.Length+1, len(series))
	}

	X = mat.NewDense(pairs, w.Length, nil)
	y = mat.NewDense(pairs, 1, nil)

	for i := 0; i < pairs; i++ {
		for t := 0; t < w.Length; t++ {
			X.Set(i, t, series[i+t])
		}
		y.Set(i, 0, series[i+w.Length])
	}

	return X, y, nil
}

// MakeMatrix はn×1行列として渡された系列をMakeに委譲する。
// スケーラーの出力をそのままウィンドウ化するための補助。
func (w *SlidingWindow) MakeMatrix(series mat.Matrix) (X, y *mat.Dense, err error) {
	r, c := series.Dims()
	if c != 1 {
		return nil, nil, errors.NewDimensionError("SlidingWindow.MakeMatrix", 1, c, 1)
	}

	values := make([]float64, r)
	for i := 0; i < r; i++ {
		values[i] = series.At(i, 0)
	}
	return w.Make(values)
}
