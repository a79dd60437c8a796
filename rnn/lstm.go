package rnn

import (
	"math"
	"math/rand"
)

// lstmParams は単層LSTMと線形出力ヘッドの全パラメータを保持する。
// 入力はスカラー系列（入力次元1）で、再帰重みwh*はH×H行列を
// 行優先で平坦化したもの（行jが前時刻の隠れ状態からユニットjへの重み）。
type lstmParams struct {
	hidden int

	// 入力重み（各ゲートにつき長さH）
	wxi, wxf, wxg, wxo []float64
	// 再帰重み（各ゲートにつき長さH*H、行優先）
	whi, whf, whg, who []float64
	// バイアス（各ゲートにつき長さH）
	bi, bf, bg, bo []float64
	// 出力ヘッド: ŷ = why·h_last + by[0]
	why []float64
	by  []float64
}

// newLSTMParams はゼロ初期化されたパラメータ集合を作成する
func newLSTMParams(hidden int) *lstmParams {
	return &lstmParams{
		hidden: hidden,
		wxi:    make([]float64, hidden),
		wxf:    make([]float64, hidden),
		wxg:    make([]float64, hidden),
		wxo:    make([]float64, hidden),
		whi:    make([]float64, hidden*hidden),
		whf:    make([]float64, hidden*hidden),
		whg:    make([]float64, hidden*hidden),
		who:    make([]float64, hidden*hidden),
		bi:     make([]float64, hidden),
		bf:     make([]float64, hidden),
		bg:     make([]float64, hidden),
		bo:     make([]float64, hidden),
		why:    make([]float64, hidden),
		by:     make([]float64, 1),
	}
}

// initRandom は全重みを U(-k, k)（k = 1/√H）で初期化する
func (p *lstmParams) initRandom(rng *rand.Rand) {
	k := 1.0 / math.Sqrt(float64(p.hidden))
	for _, group := range p.groupOrder() {
		g := p.group(group)
		for i := range g {
			g[i] = (rng.Float64()*2 - 1) * k
		}
	}
}

// groupOrder はパラメータグループ名を決定的な順序で返す
func (p *lstmParams) groupOrder() []string {
	return []string{
		"wxi", "wxf", "wxg", "wxo",
		"whi", "whf", "whg", "who",
		"bi", "bf", "bg", "bo",
		"why", "by",
	}
}

// group は名前からパラメータグループのスライスを返す
func (p *lstmParams) group(name string) []float64 {
	switch name {
	case "wxi":
		return p.wxi
	case "wxf":
		return p.wxf
	case "wxg":
		return p.wxg
	case "wxo":
		return p.wxo
	case "whi":
		return p.whi
	case "whf":
		return p.whf
	case "whg":
		return p.whg
	case "who":
		return p.who
	case "bi":
		return p.bi
	case "bf":
		return p.bf
	case "bg":
		return p.bg
	case "bo":
		return p.bo
	case "why":
		return p.why
	case "by":
		return p.by
	default:
		return nil
	}
}

// zero は全グループをゼロクリアする（勾配バッファの初期化に使用）
func (p *lstmParams) zero() {
	for _, name := range p.groupOrder() {
		g := p.group(name)
		for i := range g {
			g[i] = 0
		}
	}
}

// lstmCache はBPTTに必要な順伝播の中間値を1サンプル分保持する
type lstmCache struct {
	x []float64 // 入力ウィンドウ

	// タイムステップごとのゲート活性と状態（各 steps×H）
	i, f, g, o [][]float64
	c, h       [][]float64
}

func newLSTMCache(steps, hidden int) *lstmCache {
	alloc := func() [][]float64 {
		m := make([][]float64, steps)
		for t := range m {
			m[t] = make([]float64, hidden)
		}
		return m
	}
	return &lstmCache{
		x: make([]float64, steps),
		i: alloc(), f: alloc(), g: alloc(), o: alloc(),
		c: alloc(), h: alloc(),
	}
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// forward はウィンドウを1ステップずつ処理し、最終隠れ状態の線形射影を返す。
// cacheがnilでなければBPTT用の中間値を記録する。
// 隠れ状態・セル状態はゼロから開始する。
func (p *lstmParams) forward(window []float64, cache *lstmCache) float64 {
	H := p.hidden
	hPrev := make([]float64, H)
	cPrev := make([]float64, H)
	hCur := make([]float64, H)
	cCur := make([]float64, H)

	for t, x := range window {
		for j := 0; j < H; j++ {
			sumI := p.wxi[j]*x + p.bi[j]
			sumF := p.wxf[j]*x + p.bf[j]
			sumG := p.wxg[j]*x + p.bg[j]
			sumO := p.wxo[j]*x + p.bo[j]
			row := j * H
			for k := 0; k < H; k++ {
				hk := hPrev[k]
				sumI += p.whi[row+k] * hk
				sumF += p.whf[row+k] * hk
				sumG += p.whg[row+k] * hk
				sumO += p.who[row+k] * hk
			}

			iGate := sigmoid(sumI)
			fGate := sigmoid(sumF)
			gGate := math.Tanh(sumG)
			oGate := sigmoid(sumO)

			cNew := fGate*cPrev[j] + iGate*gGate
			hNew := oGate * math.Tanh(cNew)

			if cache != nil {
				cache.i[t][j] = iGate
				cache.f[t][j] = fGate
				cache.g[t][j] = gGate
				cache.o[t][j] = oGate
				cache.c[t][j] = cNew
				cache.h[t][j] = hNew
			}
			cCur[j] = cNew
			hCur[j] = hNew
		}
		if cache != nil {
			cache.x[t] = x
		}
		hPrev, hCur = hCur, hPrev
		cPrev, cCur = cCur, cPrev
	}

	out := p.by[0]
	for j := 0; j < H; j++ {
		out += p.why[j] * hPrev[j]
	}
	return out
}

// backward は出力勾配dyから全パラメータ勾配をgradsに加算する。
// cacheには対応するforwardの中間値が入っていること。
// 勾配はクリアせず加算するため、フルバッチではサンプルごとに呼び出して
// 勾配を蓄積できる。
func (p *lstmParams) backward(dy float64, cache *lstmCache, grads *lstmParams) {
	H := p.hidden
	steps := len(cache.x)

	dh := make([]float64, H)
	dc := make([]float64, H)

	// 出力ヘッド
	last := cache.h[steps-1]
	for j := 0; j < H; j++ {
		grads.why[j] += dy * last[j]
		dh[j] = dy * p.why[j]
	}
	grads.by[0] += dy

	dhPrev := make([]float64, H)
	dcPrev := make([]float64, H)

	for t := steps - 1; t >= 0; t-- {
		x := cache.x[t]
		var hPrev, cPrev []float64
		if t > 0 {
			hPrev = cache.h[t-1]
			cPrev = cache.c[t-1]
		} else {
			hPrev = make([]float64, H)
			cPrev = make([]float64, H)
		}

		for k := 0; k < H; k++ {
			dhPrev[k] = 0
		}

		for j := 0; j < H; j++ {
			iGate := cache.i[t][j]
			fGate := cache.f[t][j]
			gGate := cache.g[t][j]
			oGate := cache.o[t][j]
			tanhC := math.Tanh(cache.c[t][j])

			dO := dh[j] * tanhC * oGate * (1 - oGate)
			dcTotal := dc[j] + dh[j]*oGate*(1-tanhC*tanhC)

			dI := dcTotal * gGate * iGate * (1 - iGate)
			dF := dcTotal * cPrev[j] * fGate * (1 - fGate)
			dG := dcTotal * iGate * (1 - gGate*gGate)

			grads.wxi[j] += dI * x
			grads.wxf[j] += dF * x
			grads.wxg[j] += dG * x
			grads.wxo[j] += dO * x
			grads.bi[j] += dI
			grads.bf[j] += dF
			grads.bg[j] += dG
			grads.bo[j] += dO

			row := j * H
			for k := 0; k < H; k++ {
				hk := hPrev[k]
				grads.whi[row+k] += dI * hk
				grads.whf[row+k] += dF * hk
				grads.whg[row+k] += dG * hk
				grads.who[row+k] += dO * hk

				dhPrev[k] += dI*p.whi[row+k] + dF*p.whf[row+k] + dG*p.whg[row+k] + dO*p.who[row+k]
			}

			dcPrev[j] = dcTotal * fGate
		}

		dh, dhPrev = dhPrev, dh
		dc, dcPrev = dcPrev, dc
	}
}
