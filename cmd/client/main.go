package main

import (
	"flag"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/draw-guess/internal/logger"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
	"github.com/palemoky/draw-guess/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "localhost:3000", "服务器地址")
	binary := flag.Bool("binary", false, "使用二进制帧通信")
	logLevel := flag.String("log-level", "info", "日志级别")
	flag.Parse()

	// 终端界面占用标准输出，日志写入文件
	if err := logger.InitFile(*logLevel); err != nil {
		log.Printf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	format := codec.FormatJSON
	if *binary {
		format = codec.FormatBinary
	}

	serverURL := fmt.Sprintf("ws://%s/ws", *serverAddr)
	model := ui.NewOnlineModel(serverURL, format)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("启动客户端时出错: %v", err)
	}
}
