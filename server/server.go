package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/leeigin12-coder/Viscosity/history"
	"github.com/leeigin12-coder/Viscosity/metrics"
	"github.com/leeigin12-coder/Viscosity/model"
	"github.com/leeigin12-coder/Viscosity/viscosity"
)

type Options struct {
	Model        *viscosity.Model
	Workers      int
	HistoryLimit int
	Sweep        viscosity.Sweep
	// 为空时使用 prometheus 默认的 registerer / gatherer
	Registry *prometheus.Registry
}

type Server struct {
	addr     string
	upgrader websocket.Upgrader

	regression   *viscosity.Model
	executor     *viscosity.Executor
	sweep        viscosity.Sweep
	historyLimit int

	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	router   chi.Router
}

func NewServer(addr string, upgrader websocket.Upgrader, opts Options) *Server {
	var reg prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if opts.Registry != nil {
		reg, gatherer = opts.Registry, opts.Registry
	}
	if opts.HistoryLimit < 1 {
		opts.HistoryLimit = history.DefaultLimit
	}
	if !(opts.Sweep.Step > 0) {
		opts.Sweep = viscosity.DefaultSweep
	}

	s := &Server{
		addr:         addr,
		upgrader:     upgrader,
		regression:   opts.Model,
		executor:     viscosity.NewExecutor(opts.Model, opts.Workers),
		sweep:        opts.Sweep,
		historyLimit: opts.HistoryLimit,
		metrics:      metrics.New(reg),
		gatherer:     gatherer,
	}
	s.executor.Run()
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/ws", s.serveWs)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/model.xlsx", s.serveModel)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	return r
}

// serveModel 导出当前使用的回归系数表
func (s *Server) serveModel(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := viscosity.WriteModelXLSX(s.regression, &buf); err != nil {
		log.WithField("err", err).Error("导出回归模型失败")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="model.xlsx"`)
	w.Write(buf.Bytes())
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// serveWs 每个连接一个 Hub，历史记录随连接释放
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithField("err", err).Error("websocket 升级失败")
		return
	}
	defer conn.Close()

	hub := NewHub(s, conn)
	s.metrics.ConnectionOpened()
	log.WithField("remote", r.RemoteAddr).Info("连接建立")
	defer func() {
		s.metrics.ConnectionClosed()
		s.metrics.AddHistory(-hub.history.Len())
		log.WithField("remote", r.RemoteAddr).Info("连接关闭")
	}()

	go hub.handleRequest(r.Context())
	go hub.handleResponse()

	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithField("err", err).Warn("读取消息失败")
			}
			break
		}
		hub.msg <- msg
	}
	close(hub.msg)
	<-hub.done
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("服务启动")
	return http.ListenAndServe(s.addr, s.router)
}

// Close 停止批量分析的 worker
func (s *Server) Close() {
	s.executor.Stop()
}
