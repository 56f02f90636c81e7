package viscosity

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/leeigin12-coder/Viscosity/glass"
)

// 回归项：常数、单个氧化物、氧化物的整数次幂、2~3 个氧化物的乘积。
// 模型加载时解析一次，计算时不再做字符串处理

type TermKind uint8

const (
	TermConstant TermKind = iota
	TermOxide
	TermPower
	TermProduct
	TermUnknown // 引用了成分表以外的符号，取值为 0，零次幂为 1
)

const (
	ConstantTerm    = "Constant"
	MaxProductArity = 3
)

type Term struct {
	Kind   TermKind
	Oxides [MaxProductArity]glass.Oxide
	N      int // Oxides 中有效的个数
	Exp    int
	power  bool // 未知符号的幂次项，底数按 0 计
	raw    string
}

func ParseTerm(s string) (Term, error) {
	s = strings.TrimSpace(s)
	t := Term{raw: s}
	switch {
	case s == "":
		return t, fmt.Errorf("empty term")
	case s == ConstantTerm:
		t.Kind = TermConstant
	case strings.Contains(s, "*"):
		parts := strings.Split(s, "*")
		if len(parts) > MaxProductArity {
			return t, fmt.Errorf("term %q: product of %d oxides, at most %d supported", s, len(parts), MaxProductArity)
		}
		t.Kind = TermProduct
		for _, p := range parts {
			if p == "" {
				return t, fmt.Errorf("term %q: empty factor", s)
			}
			o, ok := glass.ParseOxide(p)
			if !ok {
				t.Kind = TermUnknown
				continue
			}
			t.Oxides[t.N] = o
			t.N++
		}
	case strings.Contains(s, "^"):
		parts := strings.Split(s, "^")
		if len(parts) != 2 || parts[0] == "" {
			return t, fmt.Errorf("term %q: malformed power", s)
		}
		exp, err := strconv.Atoi(parts[1])
		if err != nil || exp < 0 {
			return t, fmt.Errorf("term %q: exponent must be a non-negative integer", s)
		}
		t.Exp = exp
		o, ok := glass.ParseOxide(parts[0])
		if !ok {
			t.Kind = TermUnknown
			t.power = true
			break
		}
		t.Kind = TermPower
		t.Oxides[0] = o
		t.N = 1
	default:
		o, ok := glass.ParseOxide(s)
		if !ok {
			t.Kind = TermUnknown
			break
		}
		t.Kind = TermOxide
		t.Oxides[0] = o
		t.N = 1
	}
	return t, nil
}

// Eval 成分中没有的氧化物按 0 计
func (t Term) Eval(c *Composition) float64 {
	switch t.Kind {
	case TermConstant:
		return 1
	case TermOxide:
		return c[t.Oxides[0]]
	case TermPower:
		return math.Pow(c[t.Oxides[0]], float64(t.Exp))
	case TermProduct:
		v := 1.0
		for i := 0; i < t.N; i++ {
			v *= c[t.Oxides[i]]
		}
		return v
	case TermUnknown:
		if t.power {
			return math.Pow(0, float64(t.Exp))
		}
	}
	return 0
}

func (t Term) String() string {
	return t.raw
}
