package contentservice_test

import (
	"context"
	"testing"

	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/Leopold1975/signage_control/internal/signage/repository/contentcache"
	"github.com/Leopold1975/signage_control/internal/signage/repository/contentrepo/memory"
	"github.com/Leopold1975/signage_control/internal/signage/services/contentservice"
	"github.com/Leopold1975/signage_control/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestDefaultsPassValidation(t *testing.T) {
	ctx := context.Background()
	lg := logger.Nop()

	rates := contentservice.New[models.InterestRate](models.CollectionRates,
		memory.New[models.InterestRate](nil), contentcache.Nop[models.InterestRate]{}, models.NewInterestRate, lg)
	require.NoError(t, rates.Seed(ctx, contentservice.DefaultRates()))

	news := contentservice.New[models.NewsItem](models.CollectionNews,
		memory.New[models.NewsItem](memory.NewsNewestFirst), contentcache.Nop[models.NewsItem]{}, models.NewNewsItem, lg)
	require.NoError(t, news.Seed(ctx, contentservice.DefaultNews()))

	fx := contentservice.New[models.ExchangeRate](models.CollectionExchangeRates,
		memory.New[models.ExchangeRate](nil), contentcache.Nop[models.ExchangeRate]{}, models.NewExchangeRate, lg)
	require.NoError(t, fx.Seed(ctx, contentservice.DefaultExchangeRates()))

	list, err := fx.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, list, 5)
	require.Equal(t, "USD", list[0].Code)
}

func TestNewsCategoryIsClosed(t *testing.T) {
	news := contentservice.New[models.NewsItem](models.CollectionNews,
		memory.New[models.NewsItem](nil), contentcache.Nop[models.NewsItem]{}, models.NewNewsItem, logger.Nop())

	_, err := news.Create(context.Background(), []byte(`{
		"title": "t", "description": "d", "category": "weather", "date": "1.1.2025"
	}`))

	var ve *contentservice.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "category", ve.Fields[0].Field)
	require.Equal(t, "oneof", ve.Fields[0].Tag)
}
