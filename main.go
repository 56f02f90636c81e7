package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/leeigin12-coder/Viscosity/config"
	"github.com/leeigin12-coder/Viscosity/server"
	"github.com/leeigin12-coder/Viscosity/viscosity"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithField("err", err).Warn(".env 读取失败")
	}
	if err := run(); err != nil {
		log.WithField("err", err).Fatal("服务退出")
	}
}

func run() error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("配置文件解析失败: %w", err)
	}
	setupLog(cfg.Log)

	m, err := loadModel(cfg.Viscosity.ModelPath)
	if err != nil {
		return fmt.Errorf("回归模型加载失败: %w", err)
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  cfg.Server.ReadBufferSize,
		WriteBufferSize: cfg.Server.WriteBufferSize,
	}
	upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}
	s := server.NewServer(cfg.Server.Addr, upgrader, server.Options{
		Model:        m,
		Workers:      cfg.Server.Workers,
		HistoryLimit: cfg.History.Limit,
		Sweep:        sweepFromConfig(cfg.Viscosity),
	})
	// Serve 返回后才停止 worker
	defer s.Close()
	return s.Serve()
}

func sweepFromConfig(cfg config.Viscosity) viscosity.Sweep {
	return viscosity.Sweep{
		Start:  cfg.CurveStart,
		End:    cfg.CurveEnd,
		Step:   cfg.CurveStep,
		MinLog: cfg.DisplayMin,
		MaxLog: cfg.DisplayMax,
	}
}

func setupLog(cfg config.Log) {
	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.WithField("level", cfg.Level).Warn("日志级别无效，使用 info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func loadModel(path string) (*viscosity.Model, error) {
	if path == "" {
		return viscosity.DefaultModel()
	}
	return viscosity.LoadModelFile(path)
}
