// Package timeseries は単変量時系列の読み込みと分割を提供する
package timeseries

import (
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/tslearn/pkg/errors"
)

// Series は等間隔にサンプリングされた単変量時系列を表す。
// Valuesは読み込み後は不変として扱う。Labelsは各時点のラベル
// （例: "1949-01"）で、存在しない場合は空スライスのまま。
type Series struct {
	Name   string
	Labels []string
	Values []float64
}

// New は値のスライスから新しいSeriesを作成する
func New(values []float64) *Series {
	return &Series{Values: values}
}

// Len は系列の長さを返す
func (s *Series) Len() int {
	return len(s.Values)
}

// Min は系列の最小値を返す
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	min := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max は系列の最大値を返す
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	max := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Mean は系列の算術平均を返す
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Std は系列の標本標準偏差を返す
func (s *Series) Std() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.StdDev(s.Values, nil)
}

// Split は系列を前方・後方の2つの部分系列に分割する。
// 先頭の floor(len * frac) 個が訓練側になる。分割点をまたぐ
// ウィンドウが作られないよう、呼び出し側は分割後の各部分系列に
// 対して個別にウィンドウ化を行うこと。
func (s *Series) Split(frac float64) (train, test *Series, err error) {
	if frac <= 0 || frac >= 1 {
		return nil, nil, errors.NewValidationError("frac", "must be in (0, 1)", frac)
	}
	if len(s.Values) == 0 {
		return nil, nil, errors.NewValueError("Series.Split", "empty series")
	}

	cut := int(float64(len(s.Values)) * frac)

	train = &Series{Name: s.Name, Values: s.Values[:cut]}
	test = &Series{Name: s.Name, Values: s.Values[cut:]}
	if len(s.Labels) == len(s.Values) {
		train.Labels = s.Labels[:cut]
		test.Labels = s.Labels[cut:]
	}
	return train, test, nil
}
