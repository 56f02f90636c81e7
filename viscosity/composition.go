package viscosity

import (
	"fmt"
	"math"
	"sort"

	"github.com/leeigin12-coder/Viscosity/glass"
)

// Composition 各氧化物含量，下标为 glass.Oxide
type Composition [glass.OxideCount]float64

type Unit string

const (
	UnitWeight Unit = "wt"
	UnitMole   Unit = "mol"
)

func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitWeight, UnitMole:
		return Unit(s), nil
	}
	return "", fmt.Errorf("unknown composition unit %q", s)
}

// 回归模型需要的交互项，在归一化后的 mol% 上计算
var InteractionTerms = []string{
	"B2O3^2",
	"B2O3*Na2O",
	"B2O3*K2O",
	"B2O3*Li2O",
	"Al2O3*Na2O",
	"Al2O3*MgO",
	"Al2O3*CaO",
	"Al2O3*Li2O",
}

var interactionTerms = mustParseTerms(InteractionTerms)

// Normalize 换算为总和 100 的 mol%。
// wt% 先除以摩尔质量；总量为 0 时返回全 0。
// 非正值（含 NaN）不参与计算
func Normalize(raw Composition, unit Unit) Composition {
	var res Composition
	var total float64
	for i, v := range raw {
		if !(v > 0) || math.IsInf(v, 1) {
			continue
		}
		if unit == UnitWeight {
			v = v / glass.MolarMass(glass.Oxide(i))
		}
		res[i] = v
		total += v
	}
	if total <= 0 {
		return Composition{}
	}
	for i := range res {
		res[i] = res[i] / total * 100
	}
	return res
}

// FromMap 按化学式组装成分，返回成分表以外的名称
func FromMap(m map[string]float64) (Composition, []string) {
	var c Composition
	var unknown []string
	for name, v := range m {
		o, ok := glass.ParseOxide(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		c[o] = v
	}
	sort.Strings(unknown)
	return c, unknown
}

// ToMap 只包含非零项
func (c Composition) ToMap() map[string]float64 {
	m := make(map[string]float64)
	for i, v := range c {
		if v != 0 {
			m[glass.Oxide(i).String()] = v
		}
	}
	return m
}

func (c Composition) Sum() float64 {
	var sum float64
	for _, v := range c {
		sum += v
	}
	return sum
}

func (c Composition) Get(o glass.Oxide) float64 {
	if !o.Valid() {
		return 0
	}
	return c[o]
}

// Interactions 常数项和交互项的取值
func (c Composition) Interactions() map[string]float64 {
	m := make(map[string]float64, len(interactionTerms)+1)
	m[ConstantTerm] = 1
	for _, t := range interactionTerms {
		m[t.String()] = t.Eval(&c)
	}
	return m
}

type Component struct {
	Name  string  `json:"name"`
	Value float64 `json:"val"`
}

// Components 正值组分，含量从大到小，相同含量按成分表顺序
func (c Composition) Components() []Component {
	res := make([]Component, 0)
	for i, v := range c {
		if v > 0 {
			res = append(res, Component{Name: glass.Oxide(i).String(), Value: v})
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Value > res[j].Value
	})
	return res
}

func mustParseTerms(names []string) []Term {
	terms := make([]Term, len(names))
	for i, name := range names {
		t, err := ParseTerm(name)
		if err != nil {
			panic(err)
		}
		terms[i] = t
	}
	return terms
}
