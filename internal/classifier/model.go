package classifier

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Class labels as trained: 0 is fabricated, 1 is genuine
const (
	ClassFake = 0
	ClassReal = 1
)

// probabilities are clamped away from 0 and 1 before taking logs
const lossEpsilon = 1e-12

// FitOptions control batch gradient descent
type FitOptions struct {
	Features     int
	MaxEpochs    int
	LearningRate float64
	L2Penalty    float64
	Tolerance    float64
}

// DefaultFitOptions returns the training defaults for the given feature count
func DefaultFitOptions(features int) FitOptions {
	return FitOptions{
		Features:     features,
		MaxEpochs:    300,
		LearningRate: 1.0,
		L2Penalty:    1e-4,
		Tolerance:    1e-6,
	}
}

// FitSummary reports how training ended
type FitSummary struct {
	Epochs    int
	FinalLoss float64
	Converged bool
}

// Model is a binary logistic-regression classifier over sparse rows.
// Weights are read-only after Fit and safe for concurrent Proba calls.
type Model struct {
	Weights []float64
	Bias    float64
}

// NewModel creates an unfitted model
func NewModel() *Model {
	return &Model{}
}

// Fitted reports whether weights have been learned or loaded
func (m *Model) Fitted() bool {
	return len(m.Weights) > 0
}

// Fit learns weights by full-batch gradient descent with L2 regularization.
// Training stops at MaxEpochs or when the mean log-loss stops moving by more
// than Tolerance between epochs.
func (m *Model) Fit(rows []TermVector, labels []int, opts FitOptions) FitSummary {
	m.Weights = make([]float64, opts.Features)
	m.Bias = 0

	grad := make([]float64, opts.Features)
	losses := make([]float64, len(rows))
	n := float64(len(rows))

	summary := FitSummary{FinalLoss: math.Inf(1)}
	prevLoss := math.Inf(1)

	for epoch := 0; epoch < opts.MaxEpochs; epoch++ {
		for i := range grad {
			grad[i] = 0
		}
		var biasGrad float64

		for i, row := range rows {
			p := m.Proba(row)
			y := float64(labels[i])
			diff := p - y
			for idx, val := range row {
				grad[idx] += diff * val
			}
			biasGrad += diff
			losses[i] = logLoss(p, y)
		}

		floats.Scale(1/n, grad)
		if opts.L2Penalty > 0 {
			floats.AddScaled(grad, opts.L2Penalty/n, m.Weights)
		}
		floats.AddScaled(m.Weights, -opts.LearningRate, grad)
		m.Bias -= opts.LearningRate * biasGrad / n

		loss := stat.Mean(losses, nil)
		summary.Epochs = epoch + 1
		summary.FinalLoss = loss
		if math.Abs(prevLoss-loss) < opts.Tolerance {
			summary.Converged = true
			break
		}
		prevLoss = loss
	}
	return summary
}

// Proba returns P(class 1), the probability that the row is genuine
func (m *Model) Proba(row TermVector) float64 {
	z := m.Bias
	for idx, val := range row {
		if idx < len(m.Weights) {
			z += m.Weights[idx] * val
		}
	}
	return sigmoid(z)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func logLoss(p, y float64) float64 {
	p = math.Min(math.Max(p, lossEpsilon), 1-lossEpsilon)
	return -(y*math.Log(p) + (1-y)*math.Log(1-p))
}
