package calculator

import (
	"math"
)

// 层流管道流量计算（Hagen–Poiseuille 系列解析解）
// 外部长度单位 mm，内部统一换算为 m

const (
	StandardGravity = 9.81   // m/s²
	PascalPerBar    = 100000 // Pa
	SecondsPerHour  = 3600
	mmPerM          = 1000.0
)

// 玻璃液物性
type Fluid struct {
	Density   float64 // kg/m³
	Viscosity float64 // Pa·s
}

type FlowResult struct {
	MassFlowKgPerHr float64 `json:"mass_flow_kg_per_hr"`
	VelocityMPerS   float64 `json:"velocity_m_per_s"`
}

// Solve 输入不完整或不合法时返回零流量而不是报错，
// 界面在编辑中途也会调用
func Solve(fluid Fluid, geometry Geometry, pressure Pressure, lengthMM float64) FlowResult {
	if !positive(fluid.Density) || !positive(fluid.Viscosity) || !positive(lengthMM) {
		return FlowResult{}
	}
	if geometry == nil || pressure == nil || !geometry.valid() {
		return FlowResult{}
	}
	dP := pressure.DeltaP(fluid.Density)
	if !positive(dP) {
		return FlowResult{}
	}

	length := lengthMM / mmPerM
	q := geometry.flowRate(dP, fluid.Viscosity, length) // m³/s
	area := geometry.Area()                             // m²

	var v float64
	if area > 0 {
		v = q / area
	}
	res := FlowResult{
		MassFlowKgPerHr: q * fluid.Density * SecondsPerHour,
		VelocityMPerS:   v,
	}
	if !finite(res.MassFlowKgPerHr) || !finite(res.VelocityMPerS) || res.MassFlowKgPerHr < 0 || res.VelocityMPerS < 0 {
		return FlowResult{}
	}
	return res
}

// NaN 也视为非正
func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
