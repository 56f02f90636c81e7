package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/leeigin12-coder/Viscosity/history"
	"github.com/leeigin12-coder/Viscosity/model"
)

type handlerFunc func(ctx context.Context, h *Hub, content string) (interface{}, error)

var handlers map[string]handlerFunc

func init() {
	handlers = map[string]handlerFunc{
		model.TypeFlow:            handleFlow,
		model.TypeMaterials:       handleMaterials,
		model.TypeNormalize:       handleNormalize,
		model.TypeViscosity:       handleViscosity,
		model.TypeViscAtTemp:      handleViscAtTemp,
		model.TypeTempAtVisc:      handleTempAtVisc,
		model.TypeCurve:           handleCurve,
		model.TypeBatch:           handleBatch,
		model.TypeRecordFlow:      handleRecordFlow,
		model.TypeRecordViscosity: handleRecordViscosity,
		model.TypeHistory:         handleHistory,
		model.TypeDelete:          handleDelete,
		model.TypeClear:           handleClear,
		model.TypeRestore:         handleRestore,
	}
}

// Hub 单个连接的请求处理，请求按到达顺序串行处理
type Hub struct {
	s       *Server
	conn    *websocket.Conn
	history *history.Store
	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
	done  chan struct{}
}

func NewHub(s *Server, conn *websocket.Conn) *Hub {
	return &Hub{
		s:       s,
		conn:    conn,
		history: history.NewStore(s.historyLimit),
		msg:     make(chan model.Msg, 10),
		reply:   make(chan model.Msg, 10),
		done:    make(chan struct{}),
	}
}

func (h *Hub) handleResponse() {
	defer close(h.done)
	for reply := range h.reply {
		if err := h.conn.WriteJSON(&reply); err != nil {
			log.WithFields(log.Fields{
				"type": reply.Type,
				"err":  err,
			}).Warn("发送消息失败")
		}
	}
}

func (h *Hub) handleRequest(ctx context.Context) {
	defer close(h.reply)
	for msg := range h.msg {
		h.reply <- h.dispatch(ctx, msg)
	}
}

func (h *Hub) dispatch(ctx context.Context, msg model.Msg) model.Msg {
	start := time.Now()
	handle, ok := handlers[msg.Type]
	if !ok {
		log.WithField("type", msg.Type).Warn("no such type")
		h.s.metrics.ObserveRequest("unknown", time.Since(start), true)
		return errorReply(msg.Type, fmt.Errorf("no such type %q", msg.Type))
	}

	before := h.history.Len()
	res, err := handle(ctx, h, msg.Content)
	h.s.metrics.AddHistory(h.history.Len() - before)
	h.s.metrics.ObserveRequest(msg.Type, time.Since(start), err != nil)
	if err != nil {
		log.WithFields(log.Fields{
			"type": msg.Type,
			"err":  err,
		}).Warn("请求处理失败")
		return errorReply(msg.Type, err)
	}

	data, err := json.Marshal(res)
	if err != nil {
		log.WithFields(log.Fields{
			"type": msg.Type,
			"err":  err,
		}).Error("响应序列化失败")
		return errorReply(msg.Type, err)
	}
	return model.Msg{
		Type:    model.ResultType(msg.Type),
		Content: string(data),
	}
}

func errorReply(reqType string, err error) model.Msg {
	data, _ := json.Marshal(model.ErrorReply{Request: reqType, Error: err.Error()})
	return model.Msg{
		Type:    model.TypeError,
		Content: string(data),
	}
}

// decode 解析 Content 并按 validate 标签校验
func decode(content string, v interface{}) error {
	if err := json.Unmarshal([]byte(content), v); err != nil {
		return fmt.Errorf("invalid content: %w", err)
	}
	return model.ValidateStruct(v)
}
