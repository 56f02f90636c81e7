package viscosity

import (
	"strconv"
)

// Scale 回归表中的等粘度点编号，值为 log10(η / Pa·s)
type Scale string

const (
	ScaleWorking   Scale = "1.5"
	ScaleSoftening Scale = "6.6"
	ScaleAnnealing Scale = "12"
)

// VFT 拟合使用的三个等粘度点，经验取值，保持原精度
const (
	LogViscosityWorking   = 1.5
	LogViscositySoftening = 6.6
	LogViscosityAnnealing = 12.0
)

var isoScales = [3]struct {
	scale        Scale
	logViscosity float64
}{
	{ScaleWorking, LogViscosityWorking},
	{ScaleSoftening, LogViscositySoftening},
	{ScaleAnnealing, LogViscosityAnnealing},
}

// IsoScales 按粘度从低到高
func IsoScales() []Scale {
	return []Scale{ScaleWorking, ScaleSoftening, ScaleAnnealing}
}

func (s Scale) LogViscosity() (float64, error) {
	return strconv.ParseFloat(string(s), 64)
}
