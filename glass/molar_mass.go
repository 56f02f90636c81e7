package glass

// 摩尔质量 g/mol
const DefaultMolarMass = 100.0

var molarMass = [OxideCount]float64{
	SiO2: 60.08, B2O3: 69.62, Al2O3: 101.96, Na2O: 61.98, K2O: 94.20,
	MgO: 40.30, CaO: 56.08, Li2O: 29.88, PbO: 223.20, ZrO2: 123.22,
	BaO: 153.33, SrO: 103.62, TiO2: 79.87, Fe2O3: 159.69, ZnO: 81.38,
	CeO2: 172.11, MnO2: 86.94, SO3: 80.06, As2O3: 197.84, Sb2O3: 291.50,
	F: 19.00, Se: 78.96, CdO: 128.41, P2O5: 141.94, NiO: 74.69,
	Bi2O3: 465.96, Cr2O3: 151.99, Co3O4: 240.80, La2O3: 325.81, Ga2O3: 187.44,
	Gd2O3: 362.50, I: 126.90, MoO3: 143.94, Nb2O5: 265.81, Nd2O3: 336.48,
	PdO: 122.42, Rb2O: 186.94, ReO2: 218.21, RuO2: 133.07, Sm2O3: 348.72,
	SnO2: 150.71, TeO2: 159.60, Pr2O3: 329.81, Rh2O3: 253.81, WO3: 231.84,
	V2O5: 181.88, Y2O3: 225.81, CuO: 79.55, Eu2O3: 351.93, Cs2O: 281.81,
	Cl: 35.45, Ag2O: 231.74, UO2: 270.03, ThO2: 264.04,
}

// MolarMass 表中缺失时按 100 g/mol 处理，不报错
func MolarMass(o Oxide) float64 {
	if !o.Valid() || molarMass[o] <= 0 {
		return DefaultMolarMass
	}
	return molarMass[o]
}
