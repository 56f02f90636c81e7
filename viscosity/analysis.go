package viscosity

// Analysis 一个成分的完整计算结果。拟合失败时 VFT 及其派生值为空
type Analysis struct {
	Composition     Composition       `json:"-"`
	IsoTemperatures map[Scale]float64 `json:"iso_temperatures"`
	VFT             *Params           `json:"vft"`
	GlassTransition *float64          `json:"tg"`
	StrainPoint     *float64          `json:"t_strain"`
}

// Analyze comp 须已归一化为 mol%
func (m *Model) Analyze(comp Composition) Analysis {
	a := Analysis{
		Composition:     comp,
		IsoTemperatures: make(map[Scale]float64, len(isoScales)),
	}
	var points [len(isoScales)]Point
	for i, iso := range isoScales {
		t := m.Predict(iso.scale, comp)
		a.IsoTemperatures[iso.scale] = t
		points[i] = Point{T: t, LogViscosity: iso.logViscosity}
	}

	p, ok := Fit(points[0], points[1], points[2])
	if !ok {
		return a
	}
	a.VFT = &p
	if tg, ok := p.GlassTransition(); ok {
		a.GlassTransition = &tg
	}
	if ts, ok := p.StrainPoint(); ok {
		a.StrainPoint = &ts
	}
	return a
}

// Curve 拟合失败时为空
func (a Analysis) Curve(s Sweep) []Point {
	if a.VFT == nil {
		return nil
	}
	return Sample(*a.VFT, s)
}
