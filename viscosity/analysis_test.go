package viscosity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leeigin12-coder/Viscosity/glass"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	m, err := DefaultModel()
	require.NoError(t, err)
	return m
}

func TestAnalyzeSodaLime(t *testing.T) {
	m := testModel(t)
	a := m.Analyze(Normalize(sodaLime(), UnitMole))

	assert.InDelta(t, 1160.0, a.IsoTemperatures[ScaleWorking], 1e-6)
	assert.InDelta(t, 725.0, a.IsoTemperatures[ScaleSoftening], 1e-6)
	assert.InDelta(t, 548.0, a.IsoTemperatures[ScaleAnnealing], 1e-6)

	require.NotNil(t, a.VFT)
	assert.InDelta(t, -5.053516, a.VFT.A, 1e-5)
	assert.InDelta(t, 6514.039805, a.VFT.B, 1e-4)
	assert.InDelta(t, 166.023647, a.VFT.T0, 1e-5)

	require.NotNil(t, a.GlassTransition)
	assert.InDelta(t, 564.350212, *a.GlassTransition, 1e-4)
	assert.Less(t, *a.GlassTransition, a.IsoTemperatures[ScaleWorking])
	assert.Greater(t, *a.GlassTransition, a.VFT.T0)

	require.NotNil(t, a.StrainPoint)
	assert.InDelta(t, 499.162702, *a.StrainPoint, 1e-4)

	// 曲线经过三个等粘度点
	for _, iso := range isoScales {
		v, ok := a.VFT.ViscosityAt(a.IsoTemperatures[iso.scale])
		require.True(t, ok)
		assert.InDelta(t, iso.logViscosity, v, 1e-9)
	}
	assert.Len(t, a.Curve(DefaultSweep), 91)
}

func TestAnalyzeBorosilicateWeight(t *testing.T) {
	m := testModel(t)

	var c Composition
	c[glass.SiO2] = 80
	c[glass.B2O3] = 13
	c[glass.Na2O] = 4
	c[glass.Al2O3] = 2
	c[glass.K2O] = 1

	mol := m.Analyze(Normalize(c, UnitMole))
	require.NotNil(t, mol.VFT)
	assert.InDelta(t, 1412.38, mol.IsoTemperatures[ScaleWorking], 1e-6)
	require.NotNil(t, mol.GlassTransition)
	assert.InDelta(t, 639.540382, *mol.GlassTransition, 1e-4)

	// 同样的数字按 wt% 解释时成分不同，结果也不同
	wt := m.Analyze(Normalize(c, UnitWeight))
	assert.NotEqual(t, mol.IsoTemperatures[ScaleWorking], wt.IsoTemperatures[ScaleWorking])
}

func TestAnalyzeEmptyComposition(t *testing.T) {
	a := testModel(t).Analyze(Composition{})

	assert.Equal(t, 130.0, a.IsoTemperatures[ScaleWorking])
	require.NotNil(t, a.VFT)
	assert.InDelta(t, -453.996815, a.VFT.T0, 1e-5)
}

func TestAnalyzeNoFit(t *testing.T) {
	m, err := NewModel(map[Scale]map[string]float64{
		ScaleWorking:   {"Constant": 900},
		ScaleSoftening: {"Constant": 900},
		ScaleAnnealing: {"Constant": 900},
	})
	require.NoError(t, err)

	a := m.Analyze(sodaLime())
	assert.Equal(t, 900.0, a.IsoTemperatures[ScaleSoftening])
	assert.Nil(t, a.VFT)
	assert.Nil(t, a.GlassTransition)
	assert.Nil(t, a.StrainPoint)
	assert.Nil(t, a.Curve(DefaultSweep))
}

func TestExecutorMatchesSerial(t *testing.T) {
	m := testModel(t)

	comps := make([]Composition, 37)
	for i := range comps {
		var c Composition
		c[glass.SiO2] = 60 + float64(i%10)
		c[glass.Na2O] = 10 + float64(i%5)
		c[glass.CaO] = 8
		c[glass.B2O3] = float64(i % 7)
		comps[i] = Normalize(c, UnitMole)
	}

	for _, workers := range []int{1, 3, 8, 64} {
		e := NewExecutor(m, workers)
		e.Run()
		res, _, err := e.DispatchTask(context.Background(), comps)
		e.Stop()

		require.NoError(t, err)
		require.Len(t, res, len(comps))
		for i, c := range comps {
			assert.Equal(t, m.Analyze(c), res[i], "workers %d item %d", workers, i)
		}
	}
}

func TestExecutorEmptyAndStopped(t *testing.T) {
	e := NewExecutor(testModel(t), 2)
	e.Run()

	res, _, err := e.DispatchTask(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res)

	e.Stop()
	e.Stop()
	_, _, err = e.DispatchTask(context.Background(), []Composition{sodaLime()})
	assert.ErrorIs(t, err, ErrExecutorStopped)
}

func TestExecutorCanceled(t *testing.T) {
	// 不启动 worker，分发只能等到 ctx 取消
	e := NewExecutor(testModel(t), 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := e.DispatchTask(ctx, []Composition{sodaLime(), sodaLime()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecutorSplit(t *testing.T) {
	for _, c := range []struct{ workers, total int }{
		{1, 1}, {4, 3}, {4, 4}, {4, 9}, {3, 100}, {8, 17},
	} {
		e := NewExecutor(nil, c.workers)
		next := 0
		for _, tk := range e.split(c.total) {
			assert.Equal(t, next, tk.start)
			assert.Greater(t, tk.end, tk.start)
			next = tk.end
		}
		assert.Equal(t, c.total, next, "%+v", c)
	}
}
