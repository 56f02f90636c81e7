package viscosity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointOn(p Params, t float64) Point {
	return Point{T: t, LogViscosity: p.A + p.B/(t-p.T0)}
}

func TestFitRoundTrip(t *testing.T) {
	for _, want := range []Params{
		{A: -3, B: 5000, T0: 250},
		{A: -5.0535, B: 6514.04, T0: 166.02},
		{A: -1.2, B: 2100, T0: 410},
		{A: 0.5, B: 900, T0: -20},
	} {
		got, ok := Fit(
			pointOn(want, want.T0+300),
			pointOn(want, want.T0+700),
			pointOn(want, want.T0+1300),
		)
		require.True(t, ok, "%+v", want)
		assert.InDelta(t, want.A, got.A, 1e-6)
		assert.InEpsilon(t, want.B, got.B, 1e-8)
		assert.InDelta(t, want.T0, got.T0, 1e-6)
	}
}

func TestFitOrderIndependentOfInput(t *testing.T) {
	want := Params{A: -2.5, B: 4200, T0: 300}
	got, ok := Fit(
		pointOn(want, 1500),
		pointOn(want, 600),
		pointOn(want, 900),
	)
	require.True(t, ok)
	assert.InDelta(t, want.T0, got.T0, 1e-6)
}

func TestFitDegenerate(t *testing.T) {
	cases := map[string][3]Point{
		"equal first pair":  {{1000, 5}, {800, 5}, {600, 10}},
		"equal second pair": {{1000, 2}, {800, 7}, {600, 7 + 5e-6}},
		"same temperature":  {{800, 2}, {800, 6}, {600, 12}},
		"linear":            {{0, 1}, {1, 2}, {2, 3}},
	}
	for name, c := range cases {
		p, ok := Fit(c[0], c[1], c[2])
		assert.False(t, ok, name)
		assert.Equal(t, Params{}, p, name)
	}
}

func TestViscosityAt(t *testing.T) {
	p := Params{A: -3, B: 5000, T0: 200}

	v, ok := p.ViscosityAt(700)
	require.True(t, ok)
	assert.InDelta(t, 7.0, v, 1e-12)

	for _, temp := range []float64{200, 200.05, 199.95, 150} {
		_, ok := p.ViscosityAt(temp)
		assert.False(t, ok, temp)
	}
	_, ok = p.ViscosityAt(200.2)
	assert.True(t, ok)
}

func TestTemperatureAt(t *testing.T) {
	p := Params{A: -3, B: 5000, T0: 200}

	temp, ok := p.TemperatureAt(7)
	require.True(t, ok)
	assert.InDelta(t, 700.0, temp, 1e-9)

	for _, logEta := range []float64{-3, -2.9995, -3.0005} {
		_, ok := p.TemperatureAt(logEta)
		assert.False(t, ok, logEta)
	}

	tg, ok := p.GlassTransition()
	require.True(t, ok)
	assert.InDelta(t, 200+5000/14.3, tg, 1e-9)

	ts, ok := p.StrainPoint()
	require.True(t, ok)
	assert.Less(t, ts, tg)

	flat := Params{A: LogViscosityGlassTransition, B: 1000, T0: 100}
	_, ok = flat.GlassTransition()
	assert.False(t, ok)
}

func TestForwardInverseAgree(t *testing.T) {
	p := Params{A: -5.0535, B: 6514.04, T0: 166.02}
	for _, temp := range []float64{500, 800, 1200, 1600} {
		v, ok := p.ViscosityAt(temp)
		require.True(t, ok)
		back, ok := p.TemperatureAt(v)
		require.True(t, ok)
		assert.InDelta(t, temp, back, 1e-8)
	}
}

func TestSample(t *testing.T) {
	p := Params{A: -5.053516, B: 6514.039805, T0: 166.023647}
	pts := Sample(p, DefaultSweep)
	require.Len(t, pts, 91)
	assert.Equal(t, 800.0, pts[0].T)
	assert.Equal(t, 1700.0, pts[90].T)
	for i := 1; i < len(pts); i++ {
		assert.Less(t, pts[i].LogViscosity, pts[i-1].LogViscosity)
	}
}

func TestSampleWindow(t *testing.T) {
	p := Params{A: -3, B: 5000, T0: 900}
	pts := Sample(p, DefaultSweep)
	require.Len(t, pts, 53)
	assert.Equal(t, 1180.0, pts[0].T)
	for _, pt := range pts {
		assert.Greater(t, pt.T, p.T0)
		assert.Greater(t, pt.LogViscosity, DefaultSweep.MinLog)
		assert.Less(t, pt.LogViscosity, DefaultSweep.MaxLog)
	}

	assert.Nil(t, Sample(p, Sweep{Start: 800, End: 1700}))
	assert.Nil(t, Sample(p, Sweep{Start: 1700, End: 800, Step: 10}))
}
