package calculator

import "fmt"

// 驱动压力：液柱高度或外加压力

type Mode string

const (
	ModeGravity  Mode = "gravity"
	ModePressure Mode = "pressure"
)

type Pressure interface {
	Mode() Mode
	// DeltaP 压差 Pa
	DeltaP(density float64) float64
}

type Gravity struct {
	HeadMM float64
}

func (g Gravity) Mode() Mode { return ModeGravity }

func (g Gravity) DeltaP(density float64) float64 {
	return density * StandardGravity * (g.HeadMM / mmPerM)
}

type Applied struct {
	Bar float64
}

func (a Applied) Mode() Mode { return ModePressure }

func (a Applied) DeltaP(_ float64) float64 {
	return a.Bar * PascalPerBar
}

func NewPressure(mode Mode, headMM, bar float64) (Pressure, error) {
	switch mode {
	case ModeGravity:
		return Gravity{HeadMM: headMM}, nil
	case ModePressure:
		return Applied{Bar: bar}, nil
	}
	return nil, fmt.Errorf("unknown pressure mode %q", mode)
}
