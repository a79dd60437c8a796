// Package log defines standard attribute keys for forecasting operations.
//
// Using these standard keys keeps log output consistent across packages and
// enables structured filtering of training and evaluation logs. The keys
// follow a hierarchical naming convention (e.g. "model.name", "data.samples").
package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model or transformer.
	// Examples: "LSTMRegressor", "MinMaxScaler", "SlidingWindow"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "evaluate"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "rnn", "preprocessing", "evaluate"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	// Examples: "training", "inference", "preprocessing"
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (windows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the window length (model input width).
	FeaturesKey = "data.features"

	// SeriesLengthKey indicates the length of the raw series being processed.
	SeriesLengthKey = "data.series_length"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// LossKey records the training loss value.
	LossKey = "metrics.loss"

	// RMSEKey records root-mean-squared error on a partition.
	RMSEKey = "metrics.rmse"

	// IterationKey records the current iteration during training.
	IterationKey = "training.iteration"

	// EpochKey records the current epoch during training.
	EpochKey = "training.epoch"
)

// Hyperparameters and Configuration
const (
	// LearningRateKey records the learning rate for gradient-based training.
	LearningRateKey = "hyperparams.learning_rate"

	// HiddenSizeKey records the recurrent hidden width.
	HiddenSizeKey = "hyperparams.hidden_size"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute value constants for common operations.
const (
	// Standard operations
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationEvaluate     = "evaluate"

	// Standard phases
	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"
)
