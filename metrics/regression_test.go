package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestRMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{1, 2, 3, 4, 5}),
			yPred:     mat.NewVecDense(5, []float64{1, 2, 3, 4, 5}),
			want:      0.0,
			tolerance: 1e-12,
		},
		{
			name:      "constant offset",
			yTrue:     mat.NewVecDense(4, []float64{1, 2, 3, 4}),
			yPred:     mat.NewVecDense(4, []float64{2, 3, 4, 5}),
			want:      1.0,
			tolerance: 1e-12,
		},
		{
			name:      "mixed errors",
			yTrue:     mat.NewVecDense(3, []float64{10, 20, 30}),
			yPred:     mat.NewVecDense(3, []float64{12, 18, 33}),
			want:      math.Sqrt(17.0 / 3.0),
			tolerance: 1e-12,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1, 2, 3}),
			yPred:   mat.NewVecDense(2, []float64{1, 2}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RMSE(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RMSE() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("RMSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMSE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5})

	got, err := MSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MSE() error = %v", err)
	}
	if math.Abs(got-0.25) > 1e-12 {
		t.Errorf("MSE() = %v, want 0.25", got)
	}
}

func TestMAE(t *testing.T) {
	yTrue := mat.NewVecDense(3, []float64{10, 20, 30})
	yPred := mat.NewVecDense(3, []float64{12, 18, 33})

	got, err := MAE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MAE() error = %v", err)
	}
	if math.Abs(got-7.0/3.0) > 1e-12 {
		t.Errorf("MAE() = %v, want %v", got, 7.0/3.0)
	}
}

func TestMAPE(t *testing.T) {
	t.Run("skips zero targets", func(t *testing.T) {
		yTrue := mat.NewVecDense(3, []float64{0, 100, 200})
		yPred := mat.NewVecDense(3, []float64{5, 110, 180})

		got, err := MAPE(yTrue, yPred)
		if err != nil {
			t.Fatalf("MAPE() error = %v", err)
		}
		if math.Abs(got-10.0) > 1e-12 {
			t.Errorf("MAPE() = %v, want 10", got)
		}
	})

	t.Run("all zeros is an error", func(t *testing.T) {
		yTrue := mat.NewVecDense(2, []float64{0, 0})
		yPred := mat.NewVecDense(2, []float64{1, 1})
		if _, err := MAPE(yTrue, yPred); err == nil {
			t.Error("expected error for all-zero targets")
		}
	})
}

func TestR2Score(t *testing.T) {
	t.Run("perfect fit", func(t *testing.T) {
		y := mat.NewVecDense(4, []float64{1, 2, 3, 4})
		got, err := R2Score(y, y)
		if err != nil {
			t.Fatalf("R2Score() error = %v", err)
		}
		if math.Abs(got-1.0) > 1e-12 {
			t.Errorf("R2Score() = %v, want 1", got)
		}
	})

	t.Run("mean predictor scores zero", func(t *testing.T) {
		yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
		yPred := mat.NewVecDense(4, []float64{2.5, 2.5, 2.5, 2.5})
		got, err := R2Score(yTrue, yPred)
		if err != nil {
			t.Fatalf("R2Score() error = %v", err)
		}
		if math.Abs(got) > 1e-12 {
			t.Errorf("R2Score() = %v, want 0", got)
		}
	})

	t.Run("no variance is an error", func(t *testing.T) {
		yTrue := mat.NewVecDense(3, []float64{5, 5, 5})
		yPred := mat.NewVecDense(3, []float64{4, 5, 6})
		if _, err := R2Score(yTrue, yPred); err == nil {
			t.Error("expected error for constant yTrue")
		}
	})
}

func TestRMSEMatrix(t *testing.T) {
	yTrue := mat.NewDense(3, 1, []float64{1, 2, 3})
	yPred := mat.NewDense(3, 1, []float64{2, 3, 4})

	got, err := RMSEMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("RMSEMatrix() error = %v", err)
	}
	if math.Abs(got-1.0) > 1e-12 {
		t.Errorf("RMSEMatrix() = %v, want 1", got)
	}

	// Multi-column input is rejected.
	if _, err := RMSEMatrix(mat.NewDense(2, 2, nil), mat.NewDense(2, 2, nil)); err == nil {
		t.Error("expected error for multi-column input")
	}
}
