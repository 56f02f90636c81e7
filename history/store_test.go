package history

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leeigin12-coder/Viscosity/calculator"
	"github.com/leeigin12-coder/Viscosity/glass"
	"github.com/leeigin12-coder/Viscosity/viscosity"
)

func model(t *testing.T) *viscosity.Model {
	t.Helper()
	m, err := viscosity.DefaultModel()
	require.NoError(t, err)
	return m
}

func circle(d float64) calculator.Input {
	return calculator.Input{
		Material: glass.MaterialSoda,
		Shape:    calculator.ShapeCircle,
		D1:       d,
		LengthMM: 100,
		Mode:     calculator.ModeGravity,
		HeadMM:   500,
	}
}

func sodaLime() viscosity.Composition {
	c, _ := viscosity.FromMap(map[string]float64{"SiO2": 70, "Na2O": 15, "CaO": 10, "Al2O3": 5})
	return c
}

func TestRecordFlow(t *testing.T) {
	s := NewStore(5)
	r, err := s.RecordFlow(circle(10))
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, KindFlow, r.Kind)
	assert.Equal(t, "Circle D=10mm", r.Description)
	assert.InDelta(t, 0.27087, r.Flow.Result.MassFlowKgPerHr, 1e-4)
	assert.False(t, r.CreatedAt.IsZero())

	in := circle(10)
	in.Shape = calculator.ShapeAnnulus
	in.D2 = 4
	r, err = s.RecordFlow(in)
	require.NoError(t, err)
	assert.Equal(t, "Ring D=10/4", r.Description)

	in.Shape = "star"
	_, err = s.RecordFlow(in)
	assert.Error(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestRecordViscosity(t *testing.T) {
	s := NewStore(5)
	r := s.RecordViscosity(model(t), sodaLime(), viscosity.UnitMole)

	assert.Equal(t, KindViscosity, r.Kind)
	assert.Equal(t, "SiO2 70%, Na2O 15%, CaO 10%...", r.Description)
	require.NotNil(t, r.Viscosity.VFT)
	assert.InDelta(t, 1160.0, r.Viscosity.Working, 1e-6)
	assert.InDelta(t, 725.0, r.Viscosity.Softening, 1e-6)
	require.NotNil(t, r.Viscosity.GlassTransition)
	assert.Len(t, r.Viscosity.Components, 4)

	c, _ := viscosity.FromMap(map[string]float64{"SiO2": 72.5, "B2O3": 27.5})
	r = s.RecordViscosity(model(t), c, viscosity.UnitWeight)
	assert.Equal(t, "SiO2 72.5%, B2O3 27.5%", r.Description)

	r = s.RecordViscosity(model(t), viscosity.Composition{}, viscosity.UnitMole)
	assert.Equal(t, "Empty Composition", r.Description)
}

func TestStoreLimit(t *testing.T) {
	s := NewStore(3)
	var ids []string
	for i := 1; i <= 5; i++ {
		r, err := s.RecordFlow(circle(float64(i)))
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, ids[4], list[0].ID)
	assert.Equal(t, ids[2], list[2].ID)
	_, ok := s.Get(ids[0])
	assert.False(t, ok)
	// 环形数组绕回后仍按下标查找
	for i := 2; i < 5; i++ {
		r, ok := s.Get(ids[i])
		require.True(t, ok)
		assert.Equal(t, ids[i], r.ID)
	}

	assert.Equal(t, DefaultLimit, NewStore(0).records.Capacity())
}

func TestStoreDeleteAndClear(t *testing.T) {
	s := NewStore(10)
	a, _ := s.RecordFlow(circle(5))
	b := s.RecordViscosity(model(t), sodaLime(), viscosity.UnitMole)
	c, _ := s.RecordFlow(circle(7))

	assert.True(t, s.Delete(b.ID))
	assert.False(t, s.Delete(b.ID))
	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, c.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)

	assert.Equal(t, 2, s.Clear())
	assert.Empty(t, s.List())
	assert.Equal(t, 0, s.Clear())
}

func TestRestore(t *testing.T) {
	m := model(t)
	s := NewStore(10)

	flow, err := s.RecordFlow(circle(10))
	require.NoError(t, err)
	res, err := s.Restore(flow.ID, m)
	require.NoError(t, err)
	require.NotNil(t, res.Flow)
	assert.Equal(t, flow.Flow.Result, *res.Flow)
	assert.Nil(t, res.Analysis)

	raw := sodaLime()
	visc := s.RecordViscosity(m, raw, viscosity.UnitWeight)
	res, err = s.Restore(visc.ID, m)
	require.NoError(t, err)
	require.NotNil(t, res.Analysis)
	assert.Equal(t, m.Analyze(viscosity.Normalize(raw, viscosity.UnitWeight)), *res.Analysis)
	assert.Equal(t, visc.Viscosity.VFT, res.Analysis.VFT)

	_, err = s.Restore("missing", m)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCurves(t *testing.T) {
	m := model(t)
	s := NewStore(10)

	noFit, err := viscosity.NewModel(map[viscosity.Scale]map[string]float64{
		viscosity.ScaleWorking:   {"Constant": 900},
		viscosity.ScaleSoftening: {"Constant": 900},
		viscosity.ScaleAnnealing: {"Constant": 900},
	})
	require.NoError(t, err)

	first := s.RecordViscosity(m, sodaLime(), viscosity.UnitMole)
	s.RecordViscosity(noFit, sodaLime(), viscosity.UnitMole)
	s.RecordFlow(circle(3))
	c, _ := viscosity.FromMap(map[string]float64{"SiO2": 80, "B2O3": 13, "Na2O": 4, "Al2O3": 2, "K2O": 1})
	second := s.RecordViscosity(m, c, viscosity.UnitMole)

	curves := s.Curves(viscosity.DefaultSweep)
	require.Len(t, curves, 2)
	assert.Equal(t, second.ID, curves[0].ID)
	assert.Equal(t, "#1 SiO2 80%, B2O3 13%, Na2O ...", curves[0].Label)
	assert.Equal(t, first.ID, curves[1].ID)
	assert.Equal(t, "#2 SiO2 70%, Na2O 15%, CaO 1...", curves[1].Label)
	assert.Len(t, curves[1].Points, 91)

	s.Clear()
	assert.Empty(t, s.Curves(viscosity.DefaultSweep))
}

func TestStoreConcurrent(t *testing.T) {
	s := NewStore(DefaultLimit)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := s.RecordFlow(circle(float64(i%10 + 1)))
			if err != nil {
				panic(fmt.Sprintf("record %d: %v", i, err))
			}
			s.Get(r.ID)
			s.List()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, DefaultLimit, s.Len())
}
