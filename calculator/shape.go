package calculator

import (
	"fmt"
	"math"
	"strconv"
)

// 截面形状
type Shape string

const (
	ShapeCircle    Shape = "circle"
	ShapeRectangle Shape = "rect"
	ShapeEllipse   Shape = "ellipse"
	ShapeAnnulus   Shape = "annulus"
)

// 矩形截面的长宽比修正系数，级数截断后的经验值，不要改精度
const RectangleCorrection = 0.630

// Geometry 截面几何，仅限下面四种
type Geometry interface {
	Shape() Shape
	// Area 截面积 m²，几何不合法时为 0
	Area() float64
	// Describe 历史记录中的简短描述
	Describe() string

	valid() bool
	flowRate(dP, mu, length float64) float64
}

type Circle struct {
	DiameterMM float64
}

func (c Circle) Shape() Shape { return ShapeCircle }

func (c Circle) valid() bool { return positive(c.DiameterMM) }

func (c Circle) radius() float64 { return c.DiameterMM / 2 / mmPerM }

func (c Circle) Area() float64 {
	if !c.valid() {
		return 0
	}
	r := c.radius()
	return math.Pi * r * r
}

func (c Circle) flowRate(dP, mu, length float64) float64 {
	r := c.radius()
	return math.Pi * math.Pow(r, 4) * dP / (8 * mu * length)
}

func (c Circle) Describe() string {
	return fmt.Sprintf("Circle D=%smm", fmtMM(c.DiameterMM))
}

// Rectangle 宽高顺序无关，内部区分长边和短边
type Rectangle struct {
	WidthMM  float64
	HeightMM float64
}

func (r Rectangle) Shape() Shape { return ShapeRectangle }

func (r Rectangle) valid() bool { return positive(r.WidthMM) && positive(r.HeightMM) }

func (r Rectangle) sides() (long, short float64) {
	w, h := r.WidthMM/mmPerM, r.HeightMM/mmPerM
	return math.Max(w, h), math.Min(w, h)
}

func (r Rectangle) Area() float64 {
	if !r.valid() {
		return 0
	}
	long, short := r.sides()
	return long * short
}

func (r Rectangle) flowRate(dP, mu, length float64) float64 {
	long, short := r.sides()
	return long * math.Pow(short, 3) * dP / (12 * mu * length) * (1 - RectangleCorrection*(short/long))
}

func (r Rectangle) Describe() string {
	return fmt.Sprintf("Rect %sx%s", fmtMM(r.WidthMM), fmtMM(r.HeightMM))
}

// Ellipse 输入为长轴和短轴全长
type Ellipse struct {
	MajorMM float64
	MinorMM float64
}

func (e Ellipse) Shape() Shape { return ShapeEllipse }

func (e Ellipse) valid() bool { return positive(e.MajorMM) && positive(e.MinorMM) }

func (e Ellipse) semiAxes() (a, b float64) {
	return e.MajorMM / 2 / mmPerM, e.MinorMM / 2 / mmPerM
}

func (e Ellipse) Area() float64 {
	if !e.valid() {
		return 0
	}
	a, b := e.semiAxes()
	return math.Pi * a * b
}

func (e Ellipse) flowRate(dP, mu, length float64) float64 {
	a, b := e.semiAxes()
	numerator := math.Pi * math.Pow(a, 3) * math.Pow(b, 3) * dP
	denominator := 4 * mu * length * (a*a + b*b)
	return numerator / denominator
}

func (e Ellipse) Describe() string {
	return fmt.Sprintf("Ellipse %sx%s", fmtMM(e.MajorMM), fmtMM(e.MinorMM))
}

// Annulus 同心环形截面，输入为内外直径，要求 0 <= inner < outer
type Annulus struct {
	OuterMM float64
	InnerMM float64
}

func (a Annulus) Shape() Shape { return ShapeAnnulus }

func (a Annulus) valid() bool {
	return positive(a.OuterMM) && a.InnerMM >= 0 && a.InnerMM < a.OuterMM
}

func (a Annulus) radii() (outer, inner float64) {
	return a.OuterMM / 2 / mmPerM, a.InnerMM / 2 / mmPerM
}

func (a Annulus) Area() float64 {
	if !a.valid() {
		return 0
	}
	outer, inner := a.radii()
	return math.Pi * (outer*outer - inner*inner)
}

func (a Annulus) flowRate(dP, mu, length float64) float64 {
	outer, inner := a.radii()
	k := inner / outer
	// 内径为 0 时 ln(1/K) 发散，退化为圆管
	bracket := 1.0
	if k > 0 {
		term1 := 1 - math.Pow(k, 4)
		term2 := math.Pow(1-k*k, 2) / math.Log(1/k)
		bracket = term1 - term2
	}
	return math.Pi * dP * math.Pow(outer, 4) / (8 * mu * length) * bracket
}

func (a Annulus) Describe() string {
	return fmt.Sprintf("Ring D=%s/%s", fmtMM(a.OuterMM), fmtMM(a.InnerMM))
}

// NewGeometry 按形状名组装几何，d1 d2 的含义依形状而定：
// circle(diameter) rect(width, height) ellipse(major, minor) annulus(outer, inner)
func NewGeometry(shape Shape, d1, d2 float64) (Geometry, error) {
	switch shape {
	case ShapeCircle:
		return Circle{DiameterMM: d1}, nil
	case ShapeRectangle:
		return Rectangle{WidthMM: d1, HeightMM: d2}, nil
	case ShapeEllipse:
		return Ellipse{MajorMM: d1, MinorMM: d2}, nil
	case ShapeAnnulus:
		return Annulus{OuterMM: d1, InnerMM: d2}, nil
	}
	return nil, fmt.Errorf("unknown shape %q", shape)
}

func fmtMM(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
