package history

import (
	"strconv"
	"strings"
	"time"

	"github.com/leeigin12-coder/Viscosity/calculator"
	"github.com/leeigin12-coder/Viscosity/viscosity"
)

type Kind string

const (
	KindFlow      Kind = "flow"
	KindViscosity Kind = "viscosity"
)

const (
	emptyComposition = "Empty Composition"
	summaryOxides    = 3
)

type FlowEntry struct {
	Input  calculator.Input      `json:"input"`
	Result calculator.FlowResult `json:"result"`
}

// ViscosityEntry 保存原始输入（未归一化）和当时的计算结果
type ViscosityEntry struct {
	Unit            viscosity.Unit        `json:"unit"`
	Components      []viscosity.Component `json:"composition"`
	VFT             *viscosity.Params     `json:"vft"`
	Working         float64               `json:"t15"`
	Softening       float64               `json:"t66"`
	GlassTransition *float64              `json:"tg"`
}

type Record struct {
	ID          string          `json:"id"`
	Kind        Kind            `json:"type"`
	Description string          `json:"desc"`
	CreatedAt   time.Time       `json:"time"`
	Flow        *FlowEntry      `json:"flow,omitempty"`
	Viscosity   *ViscosityEntry `json:"viscosity,omitempty"`
}

// Composition 还原为原始输入
func (e *ViscosityEntry) Composition() viscosity.Composition {
	m := make(map[string]float64, len(e.Components))
	for _, c := range e.Components {
		m[c.Name] = c.Value
	}
	comp, _ := viscosity.FromMap(m)
	return comp
}

// describeComposition 取含量最高的三项，例如 "SiO2 70%, Na2O 15%, CaO 10%..."
func describeComposition(comps []viscosity.Component) string {
	if len(comps) == 0 {
		return emptyComposition
	}
	n := len(comps)
	if n > summaryOxides {
		n = summaryOxides
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = comps[i].Name + " " + strconv.FormatFloat(comps[i].Value, 'f', -1, 64) + "%"
	}
	desc := strings.Join(parts, ", ")
	if len(comps) > summaryOxides {
		desc += "..."
	}
	return desc
}
