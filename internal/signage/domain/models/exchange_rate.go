package models

import "time"

type ExchangeRate struct {
	ID            string    `json:"id"`
	Currency      string    `json:"currency" validate:"required"`
	Code          string    `json:"code"     validate:"required"`
	Buy           float64   `json:"buy"      validate:"gt=0"`
	Sell          float64   `json:"sell"     validate:"gt=0"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewExchangeRate() ExchangeRate {
	return ExchangeRate{IsActive: true} //nolint:exhaustruct
}

func (e *ExchangeRate) RecordID() string { return e.ID }

func (e *ExchangeRate) Activated() bool { return e.IsActive }

func (e *ExchangeRate) Created() time.Time { return e.CreatedAt }

func (e *ExchangeRate) SetActive(active bool) { e.IsActive = active }

func (e *ExchangeRate) Stamp(id string, createdAt, updatedAt time.Time) {
	e.ID = id
	e.CreatedAt = createdAt
	e.UpdatedAt = updatedAt
}

func (e *ExchangeRate) Clone() ExchangeRate { return *e }
