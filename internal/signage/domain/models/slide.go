package models

import "time"

type Slide struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"           validate:"required"`
	Subtitle        string    `json:"subtitle"`
	Description     string    `json:"description"     validate:"required"`
	Features        []string  `json:"features"`
	BackgroundColor string    `json:"backgroundColor" validate:"required"`
	TextColor       string    `json:"textColor"       validate:"required"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	IsActive        bool      `json:"isActive"`
	Order           int       `json:"order"           validate:"gte=1"`
	Category        string    `json:"category"        validate:"required"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewSlide returns the defaults applied before a create body is decoded.
func NewSlide() Slide {
	return Slide{IsActive: true, Features: []string{}} //nolint:exhaustruct
}

func (s *Slide) RecordID() string { return s.ID }

func (s *Slide) Activated() bool { return s.IsActive }

func (s *Slide) Created() time.Time { return s.CreatedAt }

func (s *Slide) SetActive(active bool) { s.IsActive = active }

func (s *Slide) Stamp(id string, createdAt, updatedAt time.Time) {
	s.ID = id
	s.CreatedAt = createdAt
	s.UpdatedAt = updatedAt
}

// Clone copies the record including its features.
func (s *Slide) Clone() Slide {
	c := *s
	if s.Features != nil {
		c.Features = append(make([]string, 0, len(s.Features)), s.Features...)
	}

	return c
}
