package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brainseg/ragseg/classifier"
)

func TestStubLogistic_NotFittedError(t *testing.T) {
	c := classifier.NewStubLogistic(0.1, 10)
	_, err := c.Predict([]float64{1, 2})
	require.ErrorIs(t, err, classifier.ErrNotFitted)
}

func TestStubLogistic_LearnsSeparableData(t *testing.T) {
	c := classifier.NewStubLogistic(0.5, 500)
	X := [][]float64{{0.0}, {0.1}, {0.9}, {1.0}}
	y := []float64{0, 0, 1, 1}
	require.NoError(t, c.Fit(X, y, nil))

	low, err := c.Predict([]float64{0.05})
	require.NoError(t, err)
	high, err := c.Predict([]float64{0.95})
	require.NoError(t, err)
	require.Less(t, low, high)
}

func TestStubLogistic_Deterministic(t *testing.T) {
	X := [][]float64{{0.0}, {1.0}}
	y := []float64{0, 1}

	c1 := classifier.NewStubLogistic(0.3, 20)
	require.NoError(t, c1.Fit(X, y, nil))
	p1, _ := c1.Predict([]float64{0.5})

	c2 := classifier.NewStubLogistic(0.3, 20)
	require.NoError(t, c2.Fit(X, y, nil))
	p2, _ := c2.Predict([]float64{0.5})

	require.Equal(t, p1, p2)
}
