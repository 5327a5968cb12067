package piemenu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveByName(t *testing.T) {
	for _, name := range []string{"ease-out", "ease_out", "easeOut", "EASEOUT"} {
		c, err := CurveByName(name)
		require.NoError(t, err, name)
		assert.InDelta(t, EaseOut(0.5), c(0.5), 1e-12, name)
	}

	_, err := CurveByName("wobble")
	assert.ErrorContains(t, err, `unknown curve "wobble"`)
}

func TestCurve_EndPoints(t *testing.T) {
	for name, c := range curvesByName {
		assert.InDelta(t, 0, c.transform(0), 1e-12, name)
		assert.InDelta(t, 1, c.transform(1), 1e-12, name)
	}
}

func TestCurve_Transform(t *testing.T) {
	var nilCurve Curve
	assert.Equal(t, 0.25, nilCurve.transform(0.25))
	assert.Equal(t, 1.0, EaseOutBack.transform(1.5))
	assert.Equal(t, 0.0, Decelerate.transform(-1))

	nan := Curve(func(float64) float64 { return math.NaN() })
	assert.Equal(t, 0.5, nan.transform(0.5))

	assert.Greater(t, EaseOutBack(0.8), 1.0, "overshoots mid-run")
}
