package history

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/leeigin12-coder/Viscosity/calculator"
	"github.com/leeigin12-coder/Viscosity/deque"
	"github.com/leeigin12-coder/Viscosity/viscosity"
)

const (
	DefaultLimit = 20
	labelLength  = 25
)

var ErrNotFound = errors.New("history record not found")

// Store 最近的计算记录，最新的在前，超过上限时丢弃最旧的
type Store struct {
	mu      sync.RWMutex
	records deque.Deque[Record]
	now     func() time.Time
}

func NewStore(limit int) *Store {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Store{
		records: deque.NewArrDeque[Record](limit),
		now:     time.Now,
	}
}

func (s *Store) RecordFlow(in calculator.Input) (Record, error) {
	res, g, err := in.Solve()
	if err != nil {
		return Record{}, err
	}
	r := Record{
		Kind:        KindFlow,
		Description: g.Describe(),
		Flow:        &FlowEntry{Input: in, Result: res},
	}
	return s.add(r), nil
}

// RecordViscosity raw 为原始输入，按 unit 归一化后计算
func (s *Store) RecordViscosity(m *viscosity.Model, raw viscosity.Composition, unit viscosity.Unit) Record {
	a := m.Analyze(viscosity.Normalize(raw, unit))
	comps := raw.Components()
	r := Record{
		Kind:        KindViscosity,
		Description: describeComposition(comps),
		Viscosity: &ViscosityEntry{
			Unit:            unit,
			Components:      comps,
			VFT:             a.VFT,
			Working:         a.IsoTemperatures[viscosity.ScaleWorking],
			Softening:       a.IsoTemperatures[viscosity.ScaleSoftening],
			GlassTransition: a.GlassTransition,
		},
	}
	return s.add(r)
}

func (s *Store) add(r Record) Record {
	r.ID = uuid.NewString()
	r.CreatedAt = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records.IsFull() {
		dropped, _ := s.records.RemoveLast()
		log.WithFields(log.Fields{
			"id":    dropped.ID,
			"type":  dropped.Kind,
			"limit": s.records.Capacity(),
		}).Debug("历史记录已满，丢弃最旧记录")
	}
	s.records.AddFirst(r)
	log.WithFields(log.Fields{
		"id":   r.ID,
		"type": r.Kind,
		"desc": r.Description,
	}).Info("保存历史记录")
	return r
}

// List 最新的在前
func (s *Store) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]Record, 0, s.records.Size())
	s.records.Traverse(func(_ int, r *Record) bool {
		res = append(res, *r)
		return true
	})
	return res
}

func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := 0; i < s.records.Size(); i++ {
		if r := s.records.Get(i); r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.records.RemoveIf(func(r Record) bool { return r.ID == id })
	if n > 0 {
		log.WithField("id", id).Info("删除历史记录")
	}
	return n > 0
}

// Clear 返回清除的条数
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.records.Size()
	s.records.Clear()
	log.WithField("count", n).Info("清空历史记录")
	return n
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records.Size()
}

// Restored 按记录中的输入重新计算的结果
type Restored struct {
	Record   Record                 `json:"record"`
	Flow     *calculator.FlowResult `json:"flow,omitempty"`
	Analysis *viscosity.Analysis    `json:"analysis,omitempty"`
}

func (s *Store) Restore(id string, m *viscosity.Model) (Restored, error) {
	r, ok := s.Get(id)
	if !ok {
		return Restored{}, ErrNotFound
	}
	res := Restored{Record: r}
	switch r.Kind {
	case KindFlow:
		flow, _, err := r.Flow.Input.Solve()
		if err != nil {
			return Restored{}, err
		}
		res.Flow = &flow
	case KindViscosity:
		a := m.Analyze(viscosity.Normalize(r.Viscosity.Composition(), r.Viscosity.Unit))
		res.Analysis = &a
	}
	return res, nil
}

// Overlay 历史记录的粘度曲线，用于和当前曲线叠加显示
type Overlay struct {
	ID     string            `json:"id"`
	Label  string            `json:"label"`
	Points []viscosity.Point `json:"points"`
}

// Curves 只包含拟合成功的粘度记录，顺序与 List 一致
func (s *Store) Curves(sweep viscosity.Sweep) []Overlay {
	res := make([]Overlay, 0)
	for _, r := range s.List() {
		if r.Kind != KindViscosity || r.Viscosity.VFT == nil {
			continue
		}
		desc := r.Description
		if len(desc) > labelLength {
			desc = desc[:labelLength] + "..."
		}
		res = append(res, Overlay{
			ID:     r.ID,
			Label:  "#" + strconv.Itoa(len(res)+1) + " " + desc,
			Points: viscosity.Sample(*r.Viscosity.VFT, sweep),
		})
	}
	return res
}
