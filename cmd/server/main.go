package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/palemoky/draw-guess/internal/config"
	"github.com/palemoky/draw-guess/internal/game/words"
	"github.com/palemoky/draw-guess/internal/logger"
	"github.com/palemoky/draw-guess/internal/server"
)

const shutdownTimeout = 3 * time.Minute

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = config.Default()
		logger.Init(cfg.Log.Level, cfg.Log.Pretty)
		logger.Warnf("加载配置文件失败，使用默认配置: %v", err)
	} else {
		logger.Init(cfg.Log.Level, cfg.Log.Pretty)
	}

	// 词库：内置词库 + 可选的 YAML 文件
	var bank *words.Bank
	if cfg.Words.Path != "" {
		bank, err = words.LoadFile(cfg.Words.Path, nil)
		if err != nil {
			logger.Errorf("加载词库失败: %v", err)
			os.Exit(1)
		}
		logger.Infof("📚 已加载词库 %s", cfg.Words.Path)
	}

	// 创建服务器
	srv, err := server.NewServer(cfg, bank)
	if err != nil {
		logger.Errorf("创建服务器失败: %v", err)
		os.Exit(1)
	}

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Infof("正在关闭服务器...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		srv.GracefulShutdown(ctx)
	}()

	// 启动服务器
	logger.Infof("🎨 你画我猜服务器启动中...")
	if err := srv.Start(); err != nil {
		logger.Errorf("服务器启动失败: %v", err)
		os.Exit(1)
	}
}
