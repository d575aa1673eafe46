package main

import (
	"context"
	"flag"
	"log"

	"github.com/go-kratos/kratos/v2"

	"github.com/iWorld-y/news2lesson/internal/config"
	"github.com/iWorld-y/news2lesson/internal/engine"
	"github.com/iWorld-y/news2lesson/internal/logger"
	"github.com/iWorld-y/news2lesson/internal/server"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 服务名称
	Name = "news2lesson"
	// Version 服务版本号
	Version string

	flagconf string
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	// 2. 初始化日志
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}

	// 3. 初始化模型、搜索与抓取
	eng, err := engine.NewEngine(context.Background(), cfg)
	if err != nil {
		logger.Log.Fatalf("引擎初始化失败: %v", err)
	}
	logger.Log.Infof("🚀 News2Lesson 启动 addr=%s model=%s provider=%s", cfg.Server.Addr, eng.ModelName(), cfg.Search.Provider)

	hs := server.NewHTTPServer(cfg.Server, eng)
	app := kratos.New(
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Logger(logger.NewKratosLogger()),
		kratos.Server(hs),
	)
	if err := app.Run(); err != nil {
		logger.Log.Fatalf("服务退出: %v", err)
	}
}
