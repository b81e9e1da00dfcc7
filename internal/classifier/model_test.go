package classifier

import (
	"testing"
)

// fitToyModel trains on a linearly separable two-feature problem:
// feature 0 marks fake samples, feature 1 marks real ones.
func fitToyModel(t *testing.T) *Model {
	t.Helper()
	rows := []TermVector{
		{0: 1},
		{0: 1},
		{0: 0.8, 1: 0.2},
		{1: 1},
		{1: 1},
		{1: 0.8, 0: 0.2},
	}
	labels := []int{ClassFake, ClassFake, ClassFake, ClassReal, ClassReal, ClassReal}

	m := NewModel()
	summary := m.Fit(rows, labels, DefaultFitOptions(2))
	if summary.Epochs == 0 {
		t.Fatal("expected at least one training epoch")
	}
	return m
}

func TestModelFitSeparatesClasses(t *testing.T) {
	m := fitToyModel(t)

	if p := m.Proba(TermVector{0: 1}); p >= 0.5 {
		t.Errorf("P(real) for a fake-marked row = %v, want < 0.5", p)
	}
	if p := m.Proba(TermVector{1: 1}); p <= 0.5 {
		t.Errorf("P(real) for a real-marked row = %v, want > 0.5", p)
	}
}

func TestModelProbaRange(t *testing.T) {
	m := fitToyModel(t)

	rows := []TermVector{
		{},
		{0: 1},
		{1: 1},
		{0: 0.5, 1: 0.5},
	}
	for _, row := range rows {
		if p := m.Proba(row); p < 0 || p > 1 {
			t.Errorf("Proba(%v) = %v, out of [0,1]", row, p)
		}
	}
}

func TestModelLossDecreases(t *testing.T) {
	rows := []TermVector{{0: 1}, {1: 1}}
	labels := []int{ClassFake, ClassReal}

	short := NewModel()
	opts := DefaultFitOptions(2)
	opts.MaxEpochs = 1
	opts.Tolerance = 0
	lossAfterOne := short.Fit(rows, labels, opts).FinalLoss

	long := NewModel()
	opts.MaxEpochs = 100
	lossAfterMany := long.Fit(rows, labels, opts).FinalLoss

	if lossAfterMany >= lossAfterOne {
		t.Errorf("loss after 100 epochs (%v) should be below loss after 1 epoch (%v)",
			lossAfterMany, lossAfterOne)
	}
}

func TestModelFitIsDeterministic(t *testing.T) {
	rows := []TermVector{{0: 1}, {1: 1}, {0: 0.3, 1: 0.7}}
	labels := []int{ClassFake, ClassReal, ClassReal}

	a := NewModel()
	a.Fit(rows, labels, DefaultFitOptions(2))
	b := NewModel()
	b.Fit(rows, labels, DefaultFitOptions(2))

	if a.Bias != b.Bias {
		t.Errorf("bias differs between identical fits: %v vs %v", a.Bias, b.Bias)
	}
	for i := range a.Weights {
		if a.Weights[i] != b.Weights[i] {
			t.Errorf("weight %d differs between identical fits: %v vs %v", i, a.Weights[i], b.Weights[i])
		}
	}
}
