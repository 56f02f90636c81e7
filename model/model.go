package model

import (
	"github.com/leeigin12-coder/Viscosity/calculator"
	"github.com/leeigin12-coder/Viscosity/history"
	"github.com/leeigin12-coder/Viscosity/viscosity"
)

// websocket 消息，Content 为各请求/响应结构体的 JSON
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 请求类型，响应类型为请求类型加 _result，出错时为 error
const (
	TypeFlow            = "flow"
	TypeMaterials       = "materials"
	TypeNormalize       = "normalize"
	TypeViscosity       = "viscosity"
	TypeViscAtTemp      = "visc_at_temp"
	TypeTempAtVisc      = "temp_at_visc"
	TypeCurve           = "curve"
	TypeBatch           = "batch"
	TypeRecordFlow      = "record_flow"
	TypeRecordViscosity = "record_viscosity"
	TypeHistory         = "history"
	TypeDelete          = "delete"
	TypeClear           = "clear"
	TypeRestore         = "restore"

	TypeError    = "error"
	ResultSuffix = "_result"
)

func ResultType(reqType string) string {
	return reqType + ResultSuffix
}

// 流量计算请求。数值不做校验，不合法时结果为零流量
type FlowReq struct {
	Material  string  `json:"material" validate:"omitempty,oneof=soda boro lead custom"`
	Density   float64 `json:"density"`
	Viscosity float64 `json:"viscosity"`
	Shape     string  `json:"shape" validate:"required,oneof=circle rect ellipse annulus"`
	D1        float64 `json:"d1"`
	D2        float64 `json:"d2"`
	LengthMM  float64 `json:"length_mm"`
	Mode      string  `json:"mode" validate:"required,oneof=gravity pressure"`
	HeadMM    float64 `json:"head_mm"`
	Bar       float64 `json:"bar"`
}

func (r FlowReq) Input() calculator.Input {
	return calculator.Input{
		Material:  r.Material,
		Density:   r.Density,
		Viscosity: r.Viscosity,
		Shape:     calculator.Shape(r.Shape),
		D1:        r.D1,
		D2:        r.D2,
		LengthMM:  r.LengthMM,
		Mode:      calculator.Mode(r.Mode),
		HeadMM:    r.HeadMM,
		Bar:       r.Bar,
	}
}

type FlowReply struct {
	calculator.FlowResult
	Description string `json:"desc"`
}

type CompositionReq struct {
	Unit        string             `json:"unit" validate:"required,oneof=wt mol"`
	Composition map[string]float64 `json:"composition" validate:"dive,keys,oxide,endkeys,gte=0"`
}

// Parse 校验通过后调用，未知氧化物已被拒绝
func (r CompositionReq) Parse() (viscosity.Composition, viscosity.Unit, error) {
	unit, err := viscosity.ParseUnit(r.Unit)
	if err != nil {
		return viscosity.Composition{}, "", err
	}
	comp, _ := viscosity.FromMap(r.Composition)
	return comp, unit, nil
}

type NormalizeReply struct {
	Composition  map[string]float64 `json:"composition"`
	Total        float64            `json:"total"`
	Interactions map[string]float64 `json:"interactions"`
}

type AnalysisReply struct {
	Normalized map[string]float64 `json:"normalized"`
	viscosity.Analysis
	Curve []viscosity.Point `json:"curve"`
}

func NewAnalysisReply(a viscosity.Analysis, sweep viscosity.Sweep) AnalysisReply {
	curve := a.Curve(sweep)
	if curve == nil {
		curve = []viscosity.Point{}
	}
	return AnalysisReply{
		Normalized: a.Composition.ToMap(),
		Analysis:   a,
		Curve:      curve,
	}
}

type ViscAtTempReq struct {
	VFT viscosity.Params `json:"vft"`
	T   float64          `json:"t"`
}

type TempAtViscReq struct {
	VFT    viscosity.Params `json:"vft"`
	LogEta float64          `json:"log_eta"`
}

// EvalReply 无定义时 Defined 为 false，Value 为空
type EvalReply struct {
	Defined bool     `json:"defined"`
	Value   *float64 `json:"value"`
}

func NewEvalReply(v float64, ok bool) EvalReply {
	if !ok {
		return EvalReply{}
	}
	return EvalReply{Defined: true, Value: &v}
}

type SweepReq struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end" validate:"gtfield=Start"`
	Step   float64 `json:"step" validate:"gt=0"`
	MinLog float64 `json:"min_log"`
	MaxLog float64 `json:"max_log" validate:"gtfield=MinLog"`
}

type CurveReq struct {
	VFT   viscosity.Params `json:"vft"`
	Sweep *SweepReq        `json:"sweep" validate:"omitempty"`
}

type CurveReply struct {
	Points []viscosity.Point `json:"points"`
}

type BatchReq struct {
	Items []CompositionReq `json:"items" validate:"required,min=1,max=1000,dive"`
}

type BatchReply struct {
	Results []AnalysisReply `json:"results"`
	CostMS  float64         `json:"cost_ms"`
}

type IDReq struct {
	ID string `json:"id" validate:"required,uuid"`
}

type HistoryReply struct {
	Records []history.Record  `json:"records"`
	Curves  []history.Overlay `json:"curves"`
}

type DeleteReply struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type ClearReply struct {
	Cleared int `json:"cleared"`
}

type ErrorReply struct {
	Request string `json:"request"`
	Error   string `json:"error"`
}
