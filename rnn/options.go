package rnn

// OptimizerKind は学習に使うオプティマイザの種類
type OptimizerKind string

const (
	// OptimizerAdam はAdamオプティマイザ（デフォルト）
	OptimizerAdam OptimizerKind = "adam"
	// OptimizerSGD は素朴な勾配降下法
	OptimizerSGD OptimizerKind = "sgd"
)

// Option はLSTMRegressorを設定する関数
type Option func(*LSTMRegressor)

// WithHiddenSize は再帰層の隠れ状態の幅を設定する
func WithHiddenSize(n int) Option {
	return func(r *LSTMRegressor) {
		r.hiddenSize = n
	}
}

// WithEpochs はフルバッチ勾配降下のイテレーション数を設定する
func WithEpochs(n int) Option {
	return func(r *LSTMRegressor) {
		r.epochs = n
	}
}

// WithLearningRate は学習率を設定する
func WithLearningRate(lr float64) Option {
	return func(r *LSTMRegressor) {
		r.learningRate = lr
	}
}

// WithSeed は重み初期化の乱数シードを設定する。
// 同一シード・同一データでの学習は決定的になる。
func WithSeed(seed int64) Option {
	return func(r *LSTMRegressor) {
		r.seed = seed
	}
}

// WithOptimizer はオプティマイザの種類を設定する
func WithOptimizer(kind OptimizerKind) Option {
	return func(r *LSTMRegressor) {
		r.optimizer = kind
	}
}

// WithGradientClip は勾配全体のL2ノルムの上限を設定する（0で無効）
func WithGradientClip(maxNorm float64) Option {
	return func(r *LSTMRegressor) {
		r.clipNorm = maxNorm
	}
}

// WithVerbosity はログ出力の冗長度を設定する（0で学習ログ無効）
func WithVerbosity(v int) Option {
	return func(r *LSTMRegressor) {
		r.verbosity = v
	}
}
