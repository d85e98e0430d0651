package dto

// SiteStatDTO 站点访问量
type SiteStatDTO struct {
	ViewCount uint64 `json:"view_count"`
}
