package models

import "time"

const (
	NewsCategoryNews         = "news"
	NewsCategoryPromo        = "promo"
	NewsCategoryAnnouncement = "announcement"
)

type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description" validate:"required"`
	Category    string    `json:"category"    validate:"oneof=news promo announcement"`
	Date        string    `json:"date"        validate:"required"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewNewsItem() NewsItem {
	return NewsItem{IsActive: true} //nolint:exhaustruct
}

func (n *NewsItem) RecordID() string { return n.ID }

func (n *NewsItem) Activated() bool { return n.IsActive }

func (n *NewsItem) Created() time.Time { return n.CreatedAt }

func (n *NewsItem) SetActive(active bool) { n.IsActive = active }

func (n *NewsItem) Stamp(id string, createdAt, updatedAt time.Time) {
	n.ID = id
	n.CreatedAt = createdAt
	n.UpdatedAt = updatedAt
}

func (n *NewsItem) Clone() NewsItem { return *n }
