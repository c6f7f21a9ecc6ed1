package contentservice

import (
	"time"

	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
)

func DefaultSlides() []models.Slide {
	return []models.Slide{
		{
			Title:           "Special Promo",
			Subtitle:        "Get our special promo now!",
			Description:     "Nikmati berbagai penawaran menarik dari kami",
			Features:        []string{"Bunga Khusus", "Proses Cepat", "Syarat Mudah"},
			BackgroundColor: "from-orange-500 to-orange-600",
			TextColor:       "text-white",
			IsActive:        true,
			Order:           1,
			Category:        "Promo",
		},
		{
			Title:           "Kredit Usaha Mikro",
			Subtitle:        "Bunga 8.5% p.a.",
			Description:     "Solusi pembiayaan untuk pengembangan usaha Anda",
			Features:        []string{"Plafon hingga 500jt", "Bunga Kompetitif", "Jaminan Aman"},
			BackgroundColor: "from-orange-600 to-red-500",
			TextColor:       "text-white",
			IsActive:        true,
			Order:           2, //nolint:gomnd
			Category:        "Kredit",
		},
		{
			Title:           "Tabungan Berjangka",
			Subtitle:        "Bunga hingga 6% p.a.",
			Description:     "Investasi aman dengan return optimal",
			Features:        []string{"Bunga Tetap", "Dijamin Pemerintah", "Gratis Biaya"},
			BackgroundColor: "from-yellow-500 to-orange-500",
			TextColor:       "text-white",
			IsActive:        true,
			Order:           3, //nolint:gomnd
			Category:        "Tabungan",
		},
	}
}

func DefaultRates() []models.InterestRate {
	return []models.InterestRate{
		{Type: "Mikro Business Loan", Rate: "8.50%", Period: "p.a", IsActive: true},
		{Type: "Deposit", Rate: "6.00%", Period: "p.a", IsActive: true},
	}
}

func DefaultNews() []models.NewsItem {
	today := time.Now().Format("2.1.2006")

	return []models.NewsItem{
		{
			Title:       "Inflasi Oktober Terkendali di Level 3.23%",
			Description: "BPS mencatat inflasi Oktober 2024 sebesar 3.23% year on year",
			Category:    models.NewsCategoryNews,
			Date:        today,
			IsActive:    true,
		},
		{
			Title:       "Program Literasi Keuangan Gratis",
			Description: "BPR mengadakan edukasi keuangan gratis untuk masyarakat",
			Category:    models.NewsCategoryAnnouncement,
			Date:        today,
			IsActive:    true,
		},
		{
			Title:       "Cashback 5% untuk Transaksi QRIS",
			Description: "Transaksi menggunakan QRIS dapatkan cashback 5%",
			Category:    models.NewsCategoryPromo,
			Date:        today,
			IsActive:    true,
		},
	}
}

func DefaultExchangeRates() []models.ExchangeRate {
	return []models.ExchangeRate{
		{Currency: "US Dollar", Code: "USD", Buy: 16688, Sell: 16788, Change: 25, ChangePercent: 0.15, IsActive: true},
		{Currency: "Singapore Dollar", Code: "SGD", Buy: 12807.74, Sell: 12907.74, Change: -15.26, ChangePercent: -0.12, IsActive: true},
		{Currency: "Euro", Code: "EUR", Buy: 18250.5, Sell: 18350.5, Change: 45.3, ChangePercent: 0.25, IsActive: true},
		{Currency: "Japanese Yen", Code: "JPY", Buy: 112.45, Sell: 113.45, Change: 0.85, ChangePercent: 0.76, IsActive: true},
		{Currency: "British Pound", Code: "GBP", Buy: 21350.75, Sell: 21450.75, Change: -35.25, ChangePercent: -0.16, IsActive: true},
	}
}
