package evaluate

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tslearn/dataset"
	"github.com/YuminosukeSato/tslearn/preprocessing"
	"github.com/YuminosukeSato/tslearn/timeseries"
)

// lastValueModel predicts the final value of each window, the persistence
// baseline. On a unit-step ramp its error is exactly one per step.
type lastValueModel struct{}

func (lastValueModel) Predict(X mat.Matrix) (mat.Matrix, error) {
	rows, cols := X.Dims()
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		out.Set(i, 0, X.At(i, cols-1))
	}
	return out, nil
}

func rampSeries(start, n int) *timeseries.Series {
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(start + i)
	}
	return timeseries.New(values)
}

func fitScaler(t *testing.T, train *timeseries.Series) *preprocessing.MinMaxScaler {
	t.Helper()
	scaler := preprocessing.NewMinMaxScalerDefault()
	if err := scaler.Fit(seriesMatrix(train)); err != nil {
		t.Fatalf("scaler.Fit failed: %v", err)
	}
	return scaler
}

func TestHarnessEvaluatePersistenceBaseline(t *testing.T) {
	train := rampSeries(0, 10)
	test := rampSeries(10, 7)

	h := NewHarness(lastValueModel{}, fitScaler(t, train), dataset.NewSlidingWindow(3))

	rep, err := h.Evaluate(train, test)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	// Persistence on a unit-step ramp is off by exactly one everywhere.
	if math.Abs(rep.TrainRMSE-1.0) > 1e-9 {
		t.Errorf("TrainRMSE = %v, want 1.0", rep.TrainRMSE)
	}
	if math.Abs(rep.TestRMSE-1.0) > 1e-9 {
		t.Errorf("TestRMSE = %v, want 1.0", rep.TestRMSE)
	}

	if len(rep.TrainPred) != 6 {
		t.Fatalf("len(TrainPred) = %d, want 6", len(rep.TrainPred))
	}
	if len(rep.TestPred) != 3 {
		t.Fatalf("len(TestPred) = %d, want 3", len(rep.TestPred))
	}

	// Predictions come back in original units after inverse transform.
	wantTrain := []float64{2, 3, 4, 5, 6, 7}
	for i, want := range wantTrain {
		if math.Abs(rep.TrainPred[i]-want) > 1e-9 {
			t.Errorf("TrainPred[%d] = %v, want %v", i, rep.TrainPred[i], want)
		}
	}
	wantTest := []float64{12, 13, 14}
	for i, want := range wantTest {
		if math.Abs(rep.TestPred[i]-want) > 1e-9 {
			t.Errorf("TestPred[%d] = %v, want %v", i, rep.TestPred[i], want)
		}
	}
}

func TestHarnessEvaluateTooShortPartition(t *testing.T) {
	train := rampSeries(0, 10)
	test := rampSeries(10, 3)

	h := NewHarness(lastValueModel{}, fitScaler(t, train), dataset.NewSlidingWindow(3))

	if _, err := h.Evaluate(train, test); err == nil {
		t.Error("expected error for test partition shorter than window")
	}
}

func TestAlignForPlot(t *testing.T) {
	const (
		windowLen   = 3
		originalLen = 17
	)
	rep := &Report{
		TrainPred: []float64{2, 3, 4, 5, 6, 7},
		TestPred:  []float64{12, 13, 14},
	}

	trainCurve, testCurve := AlignForPlot(originalLen, rep, windowLen)

	if len(trainCurve) != originalLen || len(testCurve) != originalLen {
		t.Fatalf("curve lengths = %d, %d, want %d", len(trainCurve), len(testCurve), originalLen)
	}

	// Train predictions occupy indices L … L+pairs-1.
	for i := 0; i < originalLen; i++ {
		want := math.NaN()
		if i >= 3 && i <= 8 {
			want = float64(i - 1)
		}
		got := trainCurve[i]
		if math.IsNaN(want) != math.IsNaN(got) || (!math.IsNaN(want) && got != want) {
			t.Errorf("trainCurve[%d] = %v, want %v", i, got, want)
		}
	}

	// Test predictions start at len(TrainPred)+2L+1 = 13, the index of the
	// first predictable value in the test partition.
	for i := 0; i < originalLen; i++ {
		want := math.NaN()
		if i >= 13 && i <= 15 {
			want = float64(i - 1)
		}
		got := testCurve[i]
		if math.IsNaN(want) != math.IsNaN(got) || (!math.IsNaN(want) && got != want) {
			t.Errorf("testCurve[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestPlotAndSavePNG(t *testing.T) {
	train := rampSeries(0, 10)
	test := rampSeries(10, 7)

	h := NewHarness(lastValueModel{}, fitScaler(t, train), dataset.NewSlidingWindow(3))
	rep, err := h.Evaluate(train, test)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	original := rampSeries(0, 17)
	original.Name = "ramp"
	p, err := Plot(original, rep, 3)
	if err != nil {
		t.Fatalf("Plot failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "forecast.png")
	if err := SavePNG(p, path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty PNG at %s", path)
	}
}
