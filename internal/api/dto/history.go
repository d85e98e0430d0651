package dto

// HistoryEntryDTO 单个日期桶
type HistoryEntryDTO struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// HistoryPageReq 历史分页查询参数
type HistoryPageReq struct {
	Page    int `form:"page" validate:"omitempty,min=1"`
	PerPage int `form:"per_page" validate:"omitempty,min=1,max=100"`
}

// HistoryPageDTO 历史分页响应，按日期降序（最新在前）
type HistoryPageDTO struct {
	Items      []*HistoryEntryDTO `json:"items"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
	TotalPages int                `json:"total_pages"`
	TotalItems int64              `json:"total_items"`
}
