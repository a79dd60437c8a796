// Package rnn は単変量時系列予測のための再帰型回帰モデルを提供する
package rnn

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tslearn/core/model"
	"github.com/YuminosukeSato/tslearn/core/parallel"
	"github.com/YuminosukeSato/tslearn/metrics"
	"github.com/YuminosukeSato/tslearn/pkg/errors"
	"github.com/YuminosukeSato/tslearn/pkg/log"
)

// LSTMRegressor は長さLのスカラー系列ウィンドウから次の1値を予測する
// 単層LSTM回帰モデル。再帰セルがウィンドウを1ステップずつ処理して
// 隠れ状態を持ち回り、最終隠れ状態のみを活性化なしの線形層に通して
// スカラー出力を得る。
//
// 学習はフルバッチ勾配降下: 各イテレーションで訓練集合全体を順伝播し、
// 二乗誤差の総和（SSE）を損失としてBPTTで逆伝播、オプティマイザで
// 1ステップ更新して勾配をクリアする。イテレーション数は固定で、
// 早期終了や収束判定は行わない。シード固定で決定的。
type LSTMRegressor struct {
	model.BaseEstimator

	// ハイパーパラメータ
	hiddenSize   int
	epochs       int
	learningRate float64
	seed         int64
	optimizer    OptimizerKind
	clipNorm     float64
	verbosity    int

	// 学習済み状態
	params *lstmParams

	// NFeaturesIn_ は学習時のウィンドウ長（scikit-learn互換の命名）
	NFeaturesIn_ int

	// LossCurve_ はイテレーションごとの訓練損失（SSE）の履歴
	LossCurve_ []float64
}

// NewLSTMRegressor は新しいLSTMRegressorを作成する
//
// デフォルト: hidden=32, epochs=1000, lr=0.01, optimizer=adam, seed=42
//
// 使用例:
//
//	reg := rnn.NewLSTMRegressor(
//	    rnn.WithHiddenSize(32),
//	    rnn.WithEpochs(1000),
//	    rnn.WithSeed(42),
//	)
//	err := reg.Fit(X, y)
//	pred, err := reg.Predict(X)
func NewLSTMRegressor(opts ...Option) *LSTMRegressor {
	r := &LSTMRegressor{
		hiddenSize:   32,
		epochs:       1000,
		learningRate: 0.01,
		seed:         42,
		optimizer:    OptimizerAdam,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *LSTMRegressor) newOptimizer() (Optimizer, error) {
	switch r.optimizer {
	case OptimizerAdam:
		return NewAdam(r.learningRate), nil
	case OptimizerSGD:
		return NewSGD(r.learningRate), nil
	default:
		return nil, errors.NewValidationError("optimizer", "must be adam or sgd", string(r.optimizer))
	}
}

// Fit はウィンドウ化された訓練データでモデルを学習させる。
// Xは (サンプル数 × ウィンドウ長)、yは (サンプル数 × 1) であること。
// 損失や勾配にNaN・Infが現れた場合はNumericalInstabilityErrorを返す。
func (r *LSTMRegressor) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LSTMRegressor.Fit")

	nSamples, windowLen := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 || windowLen == 0 {
		return errors.NewModelError("LSTMRegressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if yRows != nSamples {
		return errors.NewDimensionError("LSTMRegressor.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("LSTMRegressor.Fit", "y must be a column vector")
	}
	if r.hiddenSize <= 0 {
		return errors.NewValidationError("hidden_size", "must be positive", r.hiddenSize)
	}
	if r.epochs <= 0 {
		return errors.NewValidationError("epochs", "must be positive", r.epochs)
	}
	if r.learningRate <= 0 {
		return errors.NewValidationError("learning_rate", "must be positive", r.learningRate)
	}

	opt, err := r.newOptimizer()
	if err != nil {
		return err
	}

	// 入力を行ごとのウィンドウにコピーして学習中のAtコールを避ける
	windows := make([][]float64, nSamples)
	targets := make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		w := make([]float64, windowLen)
		for t := 0; t < windowLen; t++ {
			w[t] = X.At(i, t)
		}
		windows[i] = w
		targets[i] = y.At(i, 0)
	}

	rng := rand.New(rand.NewSource(r.seed))
	r.params = newLSTMParams(r.hiddenSize)
	r.params.initRandom(rng)
	r.NFeaturesIn_ = windowLen
	r.LossCurve_ = make([]float64, 0, r.epochs)

	grads := newLSTMParams(r.hiddenSize)
	cache := newLSTMCache(windowLen, r.hiddenSize)

	var logger log.Logger
	if r.verbosity > 0 {
		logger = log.GetLoggerWithName("rnn.trainer")
		logger.Info("Training started",
			log.ModelNameKey, "LSTMRegressor",
			log.OperationKey, log.OperationFit,
			log.SamplesKey, nSamples,
			log.FeaturesKey, windowLen,
			log.HiddenSizeKey, r.hiddenSize,
			log.LearningRateKey, r.learningRate,
			log.RandomSeedKey, r.seed,
		)
	}

	for epoch := 0; epoch < r.epochs; epoch++ {
		grads.zero()
		loss := 0.0

		// フルバッチ: 訓練集合全体で勾配を蓄積する
		for i := range windows {
			pred := r.params.forward(windows[i], cache)
			diff := pred - targets[i]
			loss += diff * diff
			r.params.backward(2*diff, cache, grads)
		}

		if err := errors.CheckScalar("loss", loss, epoch); err != nil {
			return errors.Wrap(err, "LSTMRegressor.Fit: training diverged")
		}

		if r.clipNorm > 0 {
			gradSlices := make([][]float64, 0, len(grads.groupOrder()))
			for _, name := range grads.groupOrder() {
				gradSlices = append(gradSlices, grads.group(name))
			}
			norm := errors.GradientNorm(gradSlices...)
			if norm > r.clipNorm {
				errors.ScaleGradients(r.clipNorm/norm, gradSlices...)
			}
		}

		opt.Advance()
		for _, name := range r.params.groupOrder() {
			opt.Update(name, r.params.group(name), grads.group(name))
		}

		r.LossCurve_ = append(r.LossCurve_, loss)

		if logger != nil && epoch%100 == 0 {
			logger.Debug("Training progress",
				log.EpochKey, epoch,
				log.LossKey, loss,
			)
		}
	}

	// 固定予算の学習なので収束判定はしないが、損失が初期値より悪化して
	// 終わった場合は警告を出す
	if first, last := r.LossCurve_[0], r.LossCurve_[len(r.LossCurve_)-1]; last > first {
		errors.Warn(errors.NewConvergenceWarning("LSTMRegressor", r.epochs,
			fmt.Sprintf("final loss %.6g exceeds initial loss %.6g", last, first)))
	}

	if logger != nil {
		logger.Info("Training finished",
			log.EpochKey, r.epochs,
			log.LossKey, r.LossCurve_[len(r.LossCurve_)-1],
		)
	}

	r.SetFitted()
	return nil
}

// Predict は各ウィンドウに対する1ステップ先の予測を行う。
// 勾配は記録しない。結果は (サンプル数 × 1) の行列。
func (r *LSTMRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("LSTMRegressor", "Predict")
	}

	nSamples, windowLen := X.Dims()
	if windowLen != r.NFeaturesIn_ {
		return nil, errors.NewDimensionError("LSTMRegressor.Predict", r.NFeaturesIn_, windowLen, 1)
	}

	result := mat.NewDense(nSamples, 1, nil)

	// 推論はサンプル独立なので大きなバッチでは並列化する
	const parallelThreshold = 256
	parallel.ParallelizeWithThreshold(nSamples, parallelThreshold, func(start, end int) {
		window := make([]float64, windowLen)
		for i := start; i < end; i++ {
			for t := 0; t < windowLen; t++ {
				window[t] = X.At(i, t)
			}
			result.Set(i, 0, r.params.forward(window, nil))
		}
	})

	return result, nil
}

// Score は決定係数（R²）を計算する
func (r *LSTMRegressor) Score(X, y mat.Matrix) (float64, error) {
	pred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}

	yVec, err := metrics.ColumnVec("LSTMRegressor.Score", y)
	if err != nil {
		return 0, err
	}
	predVec, err := metrics.ColumnVec("LSTMRegressor.Score", pred)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(yVec, predVec)
}

// GetParams はモデルのハイパーパラメータを返す
func (r *LSTMRegressor) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"hidden_size":   r.hiddenSize,
		"epochs":        r.epochs,
		"learning_rate": r.learningRate,
		"optimizer":     string(r.optimizer),
		"seed":          r.seed,
		"gradient_clip": r.clipNorm,
	}
}

// String はモデルの文字列表現を返す
func (r *LSTMRegressor) String() string {
	return fmt.Sprintf("LSTMRegressor(hidden_size=%d, epochs=%d, learning_rate=%g, optimizer=%s)",
		r.hiddenSize, r.epochs, r.learningRate, r.optimizer)
}
