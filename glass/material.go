package glass

import "sort"

// 流量计算用的玻璃液物性预设

type Material struct {
	Name      string  `json:"name"`
	Density   float64 `json:"density"`   // 密度 kg/m³
	Viscosity float64 `json:"viscosity"` // 动力粘度 Pa·s
}

const (
	MaterialSoda   = "soda"
	MaterialBoro   = "boro"
	MaterialLead   = "lead"
	MaterialCustom = "custom"
)

var materials = map[string]Material{
	MaterialSoda:   {Name: MaterialSoda, Density: 2500, Viscosity: 1000},
	MaterialBoro:   {Name: MaterialBoro, Density: 2230, Viscosity: 1000},
	MaterialLead:   {Name: MaterialLead, Density: 3000, Viscosity: 1000},
	MaterialCustom: {Name: MaterialCustom},
}

// LookupMaterial custom 返回零值物性，由调用方自行填写
func LookupMaterial(name string) (Material, bool) {
	m, ok := materials[name]
	return m, ok
}

func Materials() []Material {
	res := make([]Material, 0, len(materials))
	for _, m := range materials {
		res = append(res, m)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Name < res[j].Name
	})
	return res
}
