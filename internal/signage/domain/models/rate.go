package models

import "time"

// InterestRate keeps Rate as free text ("8.50%").
type InterestRate struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"   validate:"required"`
	Rate      string    `json:"rate"   validate:"required"`
	Period    string    `json:"period" validate:"required"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewInterestRate() InterestRate {
	return InterestRate{IsActive: true} //nolint:exhaustruct
}

func (r *InterestRate) RecordID() string { return r.ID }

func (r *InterestRate) Activated() bool { return r.IsActive }

func (r *InterestRate) Created() time.Time { return r.CreatedAt }

func (r *InterestRate) SetActive(active bool) { r.IsActive = active }

func (r *InterestRate) Stamp(id string, createdAt, updatedAt time.Time) {
	r.ID = id
	r.CreatedAt = createdAt
	r.UpdatedAt = updatedAt
}

func (r *InterestRate) Clone() InterestRate { return *r }
