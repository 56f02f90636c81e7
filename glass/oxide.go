package glass

// 成分表中的氧化物，顺序与录入界面一致，共 54 种

type Oxide int

const (
	SiO2 Oxide = iota
	B2O3
	Al2O3
	Na2O
	K2O
	MgO
	CaO
	Li2O
	PbO
	ZrO2
	BaO
	SrO
	TiO2
	Fe2O3
	ZnO
	CeO2
	MnO2
	SO3
	As2O3
	Sb2O3
	F
	Se
	CdO
	P2O5
	NiO
	Bi2O3
	Cr2O3
	Co3O4
	La2O3
	Ga2O3
	Gd2O3
	I
	MoO3
	Nb2O5
	Nd2O3
	PdO
	Rb2O
	ReO2
	RuO2
	Sm2O3
	SnO2
	TeO2
	Pr2O3
	Rh2O3
	WO3
	V2O5
	Y2O3
	CuO
	Eu2O3
	Cs2O
	Cl
	Ag2O
	UO2
	ThO2
)

const OxideCount = int(ThO2) + 1

var oxideNames = [OxideCount]string{
	"SiO2", "B2O3", "Al2O3", "Na2O", "K2O", "MgO", "CaO", "Li2O", "PbO", "ZrO2",
	"BaO", "SrO", "TiO2", "Fe2O3", "ZnO", "CeO2", "MnO2", "SO3", "As2O3", "Sb2O3",
	"F", "Se", "CdO", "P2O5", "NiO", "Bi2O3", "Cr2O3", "Co3O4", "La2O3", "Ga2O3",
	"Gd2O3", "I", "MoO3", "Nb2O5", "Nd2O3", "PdO", "Rb2O", "ReO2", "RuO2", "Sm2O3",
	"SnO2", "TeO2", "Pr2O3", "Rh2O3", "WO3", "V2O5", "Y2O3", "CuO", "Eu2O3", "Cs2O",
	"Cl", "Ag2O", "UO2", "ThO2",
}

var oxideIndex = make(map[string]Oxide, OxideCount)

func init() {
	for i, name := range oxideNames {
		oxideIndex[name] = Oxide(i)
	}
}

func (o Oxide) Valid() bool {
	return o >= 0 && int(o) < OxideCount
}

func (o Oxide) String() string {
	if !o.Valid() {
		return "Oxide(?)"
	}
	return oxideNames[o]
}

// ParseOxide 按化学式查找氧化物，区分大小写
func ParseOxide(name string) (Oxide, bool) {
	o, ok := oxideIndex[name]
	return o, ok
}

// Oxides 按录入顺序返回全部氧化物
func Oxides() []Oxide {
	res := make([]Oxide, OxideCount)
	for i := range res {
		res[i] = Oxide(i)
	}
	return res
}
