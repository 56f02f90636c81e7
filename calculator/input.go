package calculator

import (
	"fmt"

	"github.com/leeigin12-coder/Viscosity/glass"
)

// Input 一次流量计算的全部参数，历史记录保存的也是它
type Input struct {
	Material  string  `json:"material"`
	Density   float64 `json:"density"`
	Viscosity float64 `json:"viscosity"`
	Shape     Shape   `json:"shape"`
	D1        float64 `json:"d1"` // 直径 / 宽 / 长轴 / 外径
	D2        float64 `json:"d2"` // 高 / 短轴 / 内径
	LengthMM  float64 `json:"length_mm"`
	Mode      Mode    `json:"mode"`
	HeadMM    float64 `json:"head_mm"`
	Bar       float64 `json:"bar"`
}

// Fluid 预设材料使用预设物性，custom 或空材料使用填写的物性
func (in Input) Fluid() (Fluid, error) {
	if in.Material == "" || in.Material == glass.MaterialCustom {
		return Fluid{Density: in.Density, Viscosity: in.Viscosity}, nil
	}
	m, ok := glass.LookupMaterial(in.Material)
	if !ok {
		return Fluid{}, fmt.Errorf("unknown material %q", in.Material)
	}
	return Fluid{Density: m.Density, Viscosity: m.Viscosity}, nil
}

// Solve 只有材料、形状、驱动方式无法识别时返回错误，数值问题按零流量处理
func (in Input) Solve() (FlowResult, Geometry, error) {
	fluid, err := in.Fluid()
	if err != nil {
		return FlowResult{}, nil, err
	}
	geometry, err := NewGeometry(in.Shape, in.D1, in.D2)
	if err != nil {
		return FlowResult{}, nil, err
	}
	pressure, err := NewPressure(in.Mode, in.HeadMM, in.Bar)
	if err != nil {
		return FlowResult{}, nil, err
	}
	return Solve(fluid, geometry, pressure, in.LengthMM), geometry, nil
}
