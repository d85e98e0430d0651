package handler

import (
	"Sundial/internal/pkg/consts"
	"Sundial/internal/pkg/response"
	"Sundial/internal/service"

	"github.com/gin-gonic/gin"
)

const viewCountedMaxAge = 3600 // 1 小时内同一客户端只计一次

type StatsHandler struct {
	statsSvc service.StatsService
}

func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// GetSiteStats 站点访问量，带 Cookie 去重
func (s *StatsHandler) GetSiteStats(c *gin.Context) {
	_, err := c.Cookie(consts.ViewCountedCookie)
	counted := err == nil

	stat, err := s.statsSvc.VisitSite(c.Request.Context(), counted)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !counted {
		c.SetCookie(consts.ViewCountedCookie, "true", viewCountedMaxAge, "/", "", false, true)
	}
	response.Success(c, stat)
}
