// Package tslearn provides univariate time-series forecasting for Go,
// built around a small recurrent (LSTM) regressor with a
// scikit-learn-like API.
//
// The library covers the full forecasting loop: load a series, normalize
// it, turn it into supervised sliding-window pairs, train a recurrent
// regressor with full-batch gradient descent, and evaluate train/test
// fit quality in the original scale.
//
// # Quick Start
//
// Forecasting the classic airline passengers series:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/tslearn/dataset"
//	    "github.com/YuminosukeSato/tslearn/evaluate"
//	    "github.com/YuminosukeSato/tslearn/preprocessing"
//	    "github.com/YuminosukeSato/tslearn/rnn"
//	    "github.com/YuminosukeSato/tslearn/timeseries"
//	)
//
//	func main() {
//	    series, err := timeseries.LoadCSV("airline-passengers.csv", timeseries.DefaultCSVOptions())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    train, test, _ := series.Split(0.67)
//
//	    scaler := preprocessing.NewMinMaxScalerDefault()
//	    window := dataset.NewSlidingWindow(3)
//	    model := rnn.NewLSTMRegressor(rnn.WithHiddenSize(32), rnn.WithSeed(42))
//
//	    // ... fit scaler and model on the training partition ...
//
//	    report, err := evaluate.NewHarness(model, scaler, window).Evaluate(train, test)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("Test RMSE: %.2f\n", report.TestRMSE)
//	}
//
// See examples/airline for the complete program.
//
// # Packages
//
//   - timeseries: CSV loading, series statistics, ordered train/test split
//   - preprocessing: MinMaxScaler and StandardScaler with inverse transforms
//   - dataset: sliding-window supervised pair construction
//   - rnn: LSTMRegressor with Adam/SGD full-batch training
//   - metrics: MSE, RMSE, MAE, MAPE, R²
//   - evaluate: train/test harness, plot alignment, chart rendering
//   - core/model: shared estimator interfaces and base types
//   - core/parallel: parallel batch helpers
//   - pkg/errors, pkg/log: structured errors and logging
//
// # Determinism
//
// Training is fully deterministic for a fixed seed: the same data, options
// and seed always reproduce the same parameters and predictions.
//
// # License
//
// tslearn is released under the MIT License.
package tslearn
