package postgres

import (
	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/jackc/pgx/v5"
)

var SlidesTable = Table[models.Slide]{
	Name: "slides",
	Columns: []string{
		"title", "subtitle", "description", "features", "background_color",
		"text_color", "image_url", "is_active", "sort_order", "category",
	},
	OrderBy: "sort_order ASC",
	Values: func(s models.Slide) []interface{} {
		features := s.Features
		if features == nil {
			features = []string{}
		}

		return []interface{}{
			s.Title, s.Subtitle, s.Description, features, s.BackgroundColor,
			s.TextColor, s.ImageURL, s.IsActive, s.Order, s.Category,
		}
	},
	Scan: func(row pgx.Row) (models.Slide, error) {
		var s models.Slide

		err := row.Scan(&s.ID, &s.Title, &s.Subtitle, &s.Description, &s.Features, &s.BackgroundColor,
			&s.TextColor, &s.ImageURL, &s.IsActive, &s.Order, &s.Category, &s.CreatedAt, &s.UpdatedAt)

		return s, err //nolint:wrapcheck
	},
}

var RatesTable = Table[models.InterestRate]{
	Name:    "interest_rates",
	Columns: []string{"type", "rate", "period", "is_active"},
	OrderBy: "created_at ASC",
	Values: func(r models.InterestRate) []interface{} {
		return []interface{}{r.Type, r.Rate, r.Period, r.IsActive}
	},
	Scan: func(row pgx.Row) (models.InterestRate, error) {
		var r models.InterestRate

		err := row.Scan(&r.ID, &r.Type, &r.Rate, &r.Period, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)

		return r, err //nolint:wrapcheck
	},
}

var NewsTable = Table[models.NewsItem]{
	Name:    "news",
	Columns: []string{"title", "description", "category", "date", "is_active"},
	OrderBy: "created_at DESC",
	Values: func(n models.NewsItem) []interface{} {
		return []interface{}{n.Title, n.Description, n.Category, n.Date, n.IsActive}
	},
	Scan: func(row pgx.Row) (models.NewsItem, error) {
		var n models.NewsItem

		err := row.Scan(&n.ID, &n.Title, &n.Description, &n.Category, &n.Date, &n.IsActive,
			&n.CreatedAt, &n.UpdatedAt)

		return n, err //nolint:wrapcheck
	},
}

var ExchangeRatesTable = Table[models.ExchangeRate]{
	Name:    "exchange_rates",
	Columns: []string{"currency", "code", "buy", "sell", "change", "change_percent", "is_active"},
	OrderBy: "created_at ASC",
	Values: func(e models.ExchangeRate) []interface{} {
		return []interface{}{e.Currency, e.Code, e.Buy, e.Sell, e.Change, e.ChangePercent, e.IsActive}
	},
	Scan: func(row pgx.Row) (models.ExchangeRate, error) {
		var e models.ExchangeRate

		err := row.Scan(&e.ID, &e.Currency, &e.Code, &e.Buy, &e.Sell, &e.Change, &e.ChangePercent,
			&e.IsActive, &e.CreatedAt, &e.UpdatedAt)

		return e, err //nolint:wrapcheck
	},
}
