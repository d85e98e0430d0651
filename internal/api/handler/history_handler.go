package handler

import (
	"Sundial/internal/api/dto"
	"Sundial/internal/pkg/response"
	"Sundial/internal/pkg/util"
	"Sundial/internal/service"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	historySvc service.HistoryService
}

func NewHistoryHandler(historySvc service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historySvc: historySvc}
}

// GetHistoryPage 历史分页，按日期降序
func (s *HistoryHandler) GetHistoryPage(c *gin.Context) {
	var req dto.HistoryPageReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	page, err := s.historySvc.HistoryPage(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}
