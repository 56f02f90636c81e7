package viscosity

import (
	"fmt"
	"math"
	"sort"

	log "github.com/sirupsen/logrus"
)

type coefficient struct {
	term  Term
	value float64
}

// Model 多项式回归：T(scale) = Σ coef(term) × value(term)
// 加载后只读，可以被多个 goroutine 共用
type Model struct {
	scales map[Scale][]coefficient
}

// NewModel table 为 scale -> 项名 -> 系数。
// 项名引用成分表以外的氧化物时按 0 计并记录警告
func NewModel(table map[Scale]map[string]float64) (*Model, error) {
	m := &Model{scales: make(map[Scale][]coefficient, len(table))}
	for scale, row := range table {
		if scale == "" {
			return nil, fmt.Errorf("empty scale name")
		}
		names := make([]string, 0, len(row))
		for name := range row {
			names = append(names, name)
		}
		// 固定求和顺序，结果可复现
		sort.Strings(names)

		coefs := make([]coefficient, 0, len(names))
		for _, name := range names {
			v := row[name]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("scale %s term %q: coefficient is not finite", scale, name)
			}
			term, err := ParseTerm(name)
			if err != nil {
				return nil, fmt.Errorf("scale %s: %w", scale, err)
			}
			if term.Kind == TermUnknown {
				log.WithFields(log.Fields{
					"scale": scale,
					"term":  name,
				}).Warn("回归项包含未知氧化物，按 0 计")
			}
			coefs = append(coefs, coefficient{term: term, value: v})
		}
		m.scales[scale] = coefs
	}
	return m, nil
}

// Predict 表中没有的 scale 返回 0
func (m *Model) Predict(scale Scale, comp Composition) float64 {
	coefs, ok := m.scales[scale]
	if !ok {
		return 0
	}
	var t float64
	for _, c := range coefs {
		t += c.value * c.term.Eval(&comp)
	}
	return t
}

func (m *Model) HasScale(scale Scale) bool {
	_, ok := m.scales[scale]
	return ok
}

// Scales 按 log 粘度排序，无法解析为数字的放在最后
func (m *Model) Scales() []Scale {
	res := make([]Scale, 0, len(m.scales))
	for s := range m.scales {
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool {
		a, errA := res[i].LogViscosity()
		b, errB := res[j].LogViscosity()
		switch {
		case errA != nil && errB != nil:
			return res[i] < res[j]
		case errA != nil:
			return false
		case errB != nil:
			return true
		}
		return a < b
	})
	return res
}

// Table 系数表的副本
func (m *Model) Table() map[Scale]map[string]float64 {
	table := make(map[Scale]map[string]float64, len(m.scales))
	for scale, coefs := range m.scales {
		row := make(map[string]float64, len(coefs))
		for _, c := range coefs {
			row[c.term.String()] = c.value
		}
		table[scale] = row
	}
	return table
}
