package config

import (
	"os"
	"runtime"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

const (
	DefaultPath = "conf/config.ini"

	EnvPath = "VISCOSITY_CONFIG"
	EnvAddr = "VISCOSITY_ADDR"
)

type Config struct {
	Server    Server
	History   History
	Viscosity Viscosity
	Log       Log
}

type Server struct {
	Addr            string
	ReadBufferSize  int
	WriteBufferSize int
	Workers         int // 批量分析的 worker 数
}

type History struct {
	Limit int
}

type Viscosity struct {
	ModelPath string // 为空时使用内置系数表

	// 曲线采样范围 °C 与显示窗口 log10(Pa·s)
	CurveStart float64
	CurveEnd   float64
	CurveStep  float64
	DisplayMin float64
	DisplayMax float64
}

type Log struct {
	Level  string
	Format string // text | json
}

// Path 环境变量优先
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load 文件不存在时使用默认值，格式错误时返回错误
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		log.WithFields(log.Fields{
			"path": path,
			"err":  err,
		}).Warn("配置文件读取错误，使用默认配置")
	}
	file, err := ini.LooseLoad(path)
	if err != nil {
		return Config{}, err
	}
	cfg := loadCfg(file)
	if addr := os.Getenv(EnvAddr); addr != "" {
		cfg.Server.Addr = addr
	}
	return cfg, nil
}

func loadCfg(file *ini.File) Config {
	server := file.Section("server")
	history := file.Section("history")
	visc := file.Section("viscosity")
	logSec := file.Section("log")
	return Config{
		Server: Server{
			Addr:            server.Key("Addr").MustString(":9000"),
			ReadBufferSize:  server.Key("ReadBufferSize").MustInt(1024),
			WriteBufferSize: server.Key("WriteBufferSize").MustInt(1024),
			Workers:         server.Key("Workers").MustInt(runtime.NumCPU()),
		},
		History: History{
			Limit: history.Key("Limit").MustInt(20),
		},
		Viscosity: Viscosity{
			ModelPath:  visc.Key("ModelPath").MustString(""),
			CurveStart: visc.Key("CurveStart").MustFloat64(800),
			CurveEnd:   visc.Key("CurveEnd").MustFloat64(1700),
			CurveStep:  visc.Key("CurveStep").MustFloat64(10),
			DisplayMin: visc.Key("DisplayMin").MustFloat64(-2),
			DisplayMax: visc.Key("DisplayMax").MustFloat64(15),
		},
		Log: Log{
			Level:  logSec.Key("Level").MustString("info"),
			Format: logSec.Key("Format").MustString("text"),
		},
	}
}
