// Package ui 组装终端客户端
package ui

import (
	"github.com/palemoky/draw-guess/internal/protocol/codec"
	"github.com/palemoky/draw-guess/internal/ui/handler"
	"github.com/palemoky/draw-guess/internal/ui/model"
	"github.com/palemoky/draw-guess/internal/ui/view"
)

// NewOnlineModel 创建已注入渲染和消息处理的在线模型
func NewOnlineModel(serverURL string, format codec.Format) *model.Model {
	m := model.NewOnlineModel(serverURL, format)
	m.SetViewRenderer(view.Render)
	m.SetServerMessageHandler(handler.HandleServerMessage)
	return m
}
