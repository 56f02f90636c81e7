package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputSolvePreset(t *testing.T) {
	in := Input{
		Material: "soda",
		Density:  1, // 预设材料忽略填写值
		Shape:    ShapeCircle,
		D1:       10,
		LengthMM: 100,
		Mode:     ModeGravity,
		HeadMM:   500,
	}
	res, g, err := in.Solve()
	require.NoError(t, err)
	assert.Equal(t, "Circle D=10mm", g.Describe())
	assert.Equal(t, Solve(sodaLime, Circle{DiameterMM: 10}, Gravity{HeadMM: 500}, 100), res)
}

func TestInputSolveCustom(t *testing.T) {
	in := Input{
		Material:  "custom",
		Density:   2230,
		Viscosity: 500,
		Shape:     ShapeAnnulus,
		D1:        20,
		D2:        8,
		LengthMM:  100,
		Mode:      ModePressure,
		Bar:       0.5,
	}
	res, _, err := in.Solve()
	require.NoError(t, err)
	want := Solve(Fluid{Density: 2230, Viscosity: 500}, Annulus{OuterMM: 20, InnerMM: 8}, Applied{Bar: 0.5}, 100)
	assert.Equal(t, want, res)
	assert.Greater(t, res.MassFlowKgPerHr, 0.0)

	// custom 未填物性时为零流量而不是错误
	in.Density = 0
	res, _, err = in.Solve()
	require.NoError(t, err)
	assert.Equal(t, FlowResult{}, res)
}

func TestInputSolveErrors(t *testing.T) {
	base := Input{Material: "soda", Shape: ShapeCircle, D1: 10, LengthMM: 100, Mode: ModeGravity, HeadMM: 100}

	in := base
	in.Material = "obsidian"
	_, _, err := in.Solve()
	assert.Error(t, err)

	in = base
	in.Shape = "triangle"
	_, _, err = in.Solve()
	assert.Error(t, err)

	in = base
	in.Mode = "suction"
	_, _, err = in.Solve()
	assert.Error(t, err)
}
