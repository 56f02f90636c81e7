package server

import (
	"context"
	"fmt"
	"math"

	"github.com/leeigin12-coder/Viscosity/glass"
	"github.com/leeigin12-coder/Viscosity/model"
	"github.com/leeigin12-coder/Viscosity/viscosity"
)

// 单次曲线请求的最大采样点数
const maxCurvePoints = 10000

func normalized(req model.CompositionReq) (viscosity.Composition, error) {
	raw, unit, err := req.Parse()
	if err != nil {
		return viscosity.Composition{}, err
	}
	return viscosity.Normalize(raw, unit), nil
}

func handleFlow(_ context.Context, _ *Hub, content string) (interface{}, error) {
	var req model.FlowReq
	if err := decode(content, &req); err != nil {
		return nil, err
	}
	res, g, err := req.Input().Solve()
	if err != nil {
		return nil, err
	}
	return model.FlowReply{FlowResult: res, Description: g.Describe()}, nil
}

func handleMaterials(_ context.Context, _ *Hub, _ string) (interface{}, error) {
	return glass.Materials(), nil
}

func handleNormalize(_ context.Context, _ *Hub, content string) (interface{}, error) {
	var req model.CompositionReq
	if err := decode(content, &req); err != nil {
		return nil, err
	}
	comp, err := normalized(req)
	if err != nil {
		return nil, err
	}
	return model.NormalizeReply{
		Composition:  comp.ToMap(),
		Total:        comp.Sum(),
		Interactions: comp.Interactions(),
	}, nil
}

func handleViscosity(_ context.Context, h *Hub, content string) (interface{}, error) {
	var req model.CompositionReq
	if err := decode(content, &req); err != nil {
		return nil, err
	}
	comp, err := normalized(req)
	if err != nil {
		return nil, err
	}
	a := h.s.regression.Analyze(comp)
	return model.NewAnalysisReply(a, h.s.sweep), nil
}

func handleViscAtTemp(_ context.Context, _ *Hub, content string) (interface{}, error) {
	var req model.ViscAtTempReq
	if err := decode(content, &req); err != nil {
		return nil, err
	}
	return model.NewEvalReply(req.VFT.ViscosityAt(req.T)), nil
}

func handleTempAtVisc(_ context.Context, _ *Hub, content string) (interface{}, error) {
	var req model.TempAtViscReq
	if err := decode(content, &req); err != nil {
		return nil, err
	}
	return model.NewEvalReply(req.VFT.TemperatureAt(req.LogEta)), nil
}

func handleCurve(_ context.Context, h *Hub, content string) (interface{}, error) {
	var req model.CurveReq
	if err := decode(content, &req); err != nil {
		return nil, err
	}
	sweep := h.s.sweep
	if req.Sweep != nil {
		sweep = viscosity.Sweep(*req.Sweep)
		if n := math.Floor((sweep.End-sweep.Start)/sweep.Step) + 1; n > maxCurvePoints {
			return nil, fmt.Errorf("sweep has %.0f points, at most %d allowed", n, maxCurvePoints)
		}
	}
	points := viscosity.Sample(req.VFT, sweep)
	if points == nil {
		points = []viscosity.Point{}
	}
	return model.CurveReply{Points: points}, nil
}

func handleBatch(ctx context.Context, h *Hub, content string) (interface{}, error) {
	var req model.BatchReq
	if err := decode(content, &req); err != nil {
		return nil, err
	}
	comps := make([]viscosity.Composition, len(req.Items))
	for i, item := range req.Items {
		comp, err := normalized(item)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		comps[i] = comp
	}
	h.s.metrics.ObserveBatch(len(comps))

	results, cost, err := h.s.executor.DispatchTask(ctx, comps)
	if err != nil {
		return nil, err
	}
	reply := model.BatchReply{
		Results: make([]model.AnalysisReply, len(results)),
		CostMS:  float64(cost.Microseconds()) / 1000,
	}
	for i, a := range results {
		reply.Results[i] = model.NewAnalysisReply(a, h.s.sweep)
	}
	return reply, nil
}

func handleRecordFlow(_ context.Context, h *Hub, content string) (interface{}, error) {
	var req model.FlowReq
	if err := decode(content, &req); err != nil {
		return nil, err
	}
	return h.history.RecordFlow(req.Input())
}

func handleRecordViscosity(_ context.Context, h *Hub, content string) (interface{}, error) {
	var req model.CompositionReq
	if err := decode(content, &req); err != nil {
		return nil, err
	}
	raw, unit, err := req.Parse()
	if err != nil {
		return nil, err
	}
	return h.history.RecordViscosity(h.s.regression, raw, unit), nil
}

func handleHistory(_ context.Context, h *Hub, _ string) (interface{}, error) {
	return model.HistoryReply{
		Records: h.history.List(),
		Curves:  h.history.Curves(h.s.sweep),
	}, nil
}

func handleDelete(_ context.Context, h *Hub, content string) (interface{}, error) {
	var req model.IDReq
	if err := decode(content, &req); err != nil {
		return nil, err
	}
	return model.DeleteReply{ID: req.ID, Deleted: h.history.Delete(req.ID)}, nil
}

func handleClear(_ context.Context, h *Hub, _ string) (interface{}, error) {
	return model.ClearReply{Cleared: h.history.Clear()}, nil
}

func handleRestore(_ context.Context, h *Hub, content string) (interface{}, error) {
	var req model.IDReq
	if err := decode(content, &req); err != nil {
		return nil, err
	}
	return h.history.Restore(req.ID, h.s.regression)
}
