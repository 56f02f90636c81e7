package viscosity

import (
	"math"
)

// Vogel–Fulcher–Tammann: log10(η) = A + B / (T − T0)，T 单位 °C

const (
	fitTolerance       = 1e-5  // 三个点的 log 粘度至少相差这么多
	poleTolerance      = 0.1   // |T − T0| 小于它视为无定义
	asymptoteTolerance = 0.001 // |logη − A| 小于它视为无定义
)

// 由拟合曲线反求的两个特征温度
const (
	LogViscosityGlassTransition = 11.3
	LogViscosityStrain          = 14.5
)

type Params struct {
	A  float64 `json:"A"`
	B  float64 `json:"B"`
	T0 float64 `json:"T0"`
}

type Point struct {
	T            float64 `json:"T"`
	LogViscosity float64 `json:"logEta"`
}

// Fit 三点解析解。点的 log 粘度过于接近或方程退化时返回 false
func Fit(p1, p2, p3 Point) (Params, bool) {
	t1, y1 := p1.T, p1.LogViscosity
	t2, y2 := p2.T, p2.LogViscosity
	t3, y3 := p3.T, p3.LogViscosity

	if math.Abs(y1-y2) < fitTolerance || math.Abs(y2-y3) < fitTolerance {
		return Params{}, false
	}
	if t2 == t1 {
		return Params{}, false
	}

	r := (y1 - y2) / (y2 - y3)
	k := r * (t3 - t2) / (t2 - t1)
	if k == 1 {
		return Params{}, false
	}
	t0 := (t3 - k*t1) / (1 - k)
	b := (y1 - y2) * (t1 - t0) * (t2 - t0) / (t2 - t1)
	a := y1 - b/(t1-t0)

	p := Params{A: a, B: b, T0: t0}
	if !p.finite() {
		return Params{}, false
	}
	return p, true
}

// ViscosityAt 温度不高于 T0 或离 T0 太近时返回 false
func (p Params) ViscosityAt(t float64) (float64, bool) {
	d := t - p.T0
	if !(d > 0) || math.Abs(d) < poleTolerance {
		return 0, false
	}
	v := p.A + p.B/d
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// TemperatureAt logη 离 A 太近时返回 false
func (p Params) TemperatureAt(logEta float64) (float64, bool) {
	d := logEta - p.A
	if !(math.Abs(d) >= asymptoteTolerance) {
		return 0, false
	}
	t := p.T0 + p.B/d
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, false
	}
	return t, true
}

func (p Params) GlassTransition() (float64, bool) {
	return p.TemperatureAt(LogViscosityGlassTransition)
}

func (p Params) StrainPoint() (float64, bool) {
	return p.TemperatureAt(LogViscosityStrain)
}

func (p Params) finite() bool {
	for _, v := range [...]float64{p.A, p.B, p.T0} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sweep 曲线采样的温度范围和显示窗口
type Sweep struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Step   float64 `json:"step"`
	MinLog float64 `json:"min_log"`
	MaxLog float64 `json:"max_log"`
}

var DefaultSweep = Sweep{Start: 800, End: 1700, Step: 10, MinLog: -2, MaxLog: 15}

// Sample 只保留 T > T0 且 log 粘度落在 (MinLog, MaxLog) 内的点
func Sample(p Params, s Sweep) []Point {
	if !(s.Step > 0) || !(s.End >= s.Start) {
		return nil
	}
	n := int(math.Floor((s.End-s.Start)/s.Step + 1e-9))
	res := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := s.Start + float64(i)*s.Step
		if t <= p.T0 {
			continue
		}
		v := p.A + p.B/(t-p.T0)
		if v > s.MinLog && v < s.MaxLog {
			res = append(res, Point{T: t, LogViscosity: v})
		}
	}
	return res
}
