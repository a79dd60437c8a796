package rnn

import "math"

// Optimizer は名前付きパラメータグループに対して勾配降下の1ステップを適用する。
// 学習ループは各イテレーションの先頭でAdvanceを1回呼び、続けて全グループに
// 対してUpdateを呼ぶ。
type Optimizer interface {
	// Advance は新しい最適化ステップの開始を通知する（Adamのバイアス補正用）
	Advance()

	// Update はパラメータグループをその勾配でインプレース更新する
	Update(name string, params, grads []float64)
}

// SGD は素朴な勾配降下法
//
//	w[i] = w[i] - lr · g[i]
type SGD struct {
	lr float64
}

// NewSGD は指定した学習率のSGDを作成する
func NewSGD(lr float64) *SGD {
	return &SGD{lr: lr}
}

// Advance はSGDでは何もしない
func (s *SGD) Advance() {}

// Update は1ステップの勾配降下を適用する
func (s *SGD) Update(_ string, params, grads []float64) {
	for i := range params {
		params[i] -= s.lr * grads[i]
	}
}

// Adam はバイアス補正付きのAdamオプティマイザ
//
// 更新則:
//
//	m[i] = β1·m[i] + (1-β1)·g[i]
//	v[i] = β2·v[i] + (1-β2)·g[i]²
//	m̂[i] = m[i] / (1 - β1^t)
//	v̂[i] = v[i] / (1 - β2^t)
//	w[i] = w[i] - lr · m̂[i] / (√v̂[i] + ε)
//
// モーメントはパラメータグループ名をキーに保持する。
type Adam struct {
	lr           float64
	beta1, beta2 float64
	eps          float64
	step         int
	m, v         map[string][]float64
}

// NewAdam は指定した学習率のAdamを作成する。
// 標準的なデフォルト値を使用する: β1=0.9, β2=0.999, ε=1e-8。
func NewAdam(lr float64) *Adam {
	return &Adam{
		lr:    lr,
		beta1: 0.9,
		beta2: 0.999,
		eps:   1e-8,
		m:     make(map[string][]float64),
		v:     make(map[string][]float64),
	}
}

// Advance はステップカウンタを進める
func (a *Adam) Advance() {
	a.step++
}

// Update は1ステップのAdam更新を適用する
func (a *Adam) Update(name string, params, grads []float64) {
	m, ok := a.m[name]
	if !ok {
		m = make([]float64, len(params))
		a.m[name] = m
	}
	v, ok := a.v[name]
	if !ok {
		v = make([]float64, len(params))
		a.v[name] = v
	}

	bc1 := 1 - math.Pow(a.beta1, float64(a.step))
	bc2 := 1 - math.Pow(a.beta2, float64(a.step))

	for i := range params {
		g := grads[i]

		m[i] = a.beta1*m[i] + (1-a.beta1)*g
		v[i] = a.beta2*v[i] + (1-a.beta2)*g*g

		mHat := m[i] / bc1
		vHat := v[i] / bc2

		params[i] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
	}
}
