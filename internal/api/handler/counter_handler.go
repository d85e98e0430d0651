package handler

import (
	"Sundial/internal/pkg/response"
	"Sundial/internal/service"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type CounterHandler struct {
	counterSvc service.CounterService
}

func NewCounterHandler(counterSvc service.CounterService) *CounterHandler {
	return &CounterHandler{counterSvc: counterSvc}
}

// GetCounter 计数器现状 + 最近历史窗口
func (s *CounterHandler) GetCounter(c *gin.Context) {
	overview, err := s.counterSvc.GetOverview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, overview)
}

// Apply 执行一次涂抹
func (s *CounterHandler) Apply(c *gin.Context) {
	counter, err := s.counterSvc.Apply(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, counter)
}

// GetRecentEvents 最近涂抹审计事件
func (s *CounterHandler) GetRecentEvents(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	events, err := s.counterSvc.GetRecentEvents(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, events)
}
