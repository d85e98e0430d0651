package handler

import (
	"Sundial/internal/pkg/consts"
	"Sundial/internal/pkg/redis"
	"Sundial/internal/service"
	"context"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WsHandler struct {
	counterSvc service.CounterService
}

func NewWsHandler(counterSvc service.CounterService) *WsHandler {
	return &WsHandler{counterSvc: counterSvc}
}

// Connect 升级为 Websocket，先下发当前快照，再转发计数器变更广播。
// 只读连接，无需鉴权。
func (s *WsHandler) Connect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	// 建连即下发权威快照，晚订阅的客户端也能立刻算出正确的冷却值
	snapshot, err := s.counterSvc.CounterSnapshot(c.Request.Context())
	if err != nil {
		log.Error("获取计数器快照失败", "err", err)
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, snapshot); err != nil {
		return
	}

	// 订阅 Redis 总线
	pubsub := redis.Subscribe(context.Background(), consts.CounterEventsChannel)
	defer func() {
		_ = pubsub.Close()
	}()

	log.Info("WS 连接已建立", "remote", c.ClientIP())

	stopChan := make(chan struct{})

	// 读循环：监听客户端主动断开
	go func() {
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				close(stopChan)
				return
			}
		}
	}()

	// 写循环：监听 Redis 并推送至客户端
	redisCh := pubsub.Channel()
	for {
		select {
		case msg := <-redisCh:
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload))
			if err != nil {
				log.Error("WS 推送失败", "err", err)
				return
			}
		case <-stopChan:
			log.Info("WS 连接已断开", "remote", c.ClientIP())
			return
		}
	}
}
