package repo

import (
	"context"

	"gorm.io/gorm"
)

// seedProduct is one catalog entry installed on first boot.
type seedProduct struct {
	name      string
	imageURL  string
	qrCodeURL string
	tags      []string
}

// sampleProducts is the demo catalog for a fresh kiosk. Tags mix the
// weather-derived labels (soğuk, yaz, yağmurlu, …) with the style
// vocabulary of the analyzer so both recommendation paths find matches.
var sampleProducts = []seedProduct{
	{"Klasik Trençkot", "https://example.com/images/trenchcoat1.jpg", "https://example.com/qr/trenchcoat1", []string{"trenchcoat", "outerwear", "ılıman", "bahar", "classic"}},
	{"Bej Trençkot", "https://example.com/images/trenchcoat2.jpg", "https://example.com/qr/trenchcoat2", []string{"trenchcoat", "outerwear", "yağmurlu", "elegant"}},
	{"Yazlık Elbise", "https://example.com/images/dress1.jpg", "https://example.com/qr/dress1", []string{"dress", "yaz", "sıcak", "güneşli", "casual"}},
	{"Çiçekli Elbise", "https://example.com/images/dress2.jpg", "https://example.com/qr/dress2", []string{"dress", "yaz", "bahar", "bohemian"}},
	{"Spor Ayakkabı", "https://example.com/images/sneakers1.jpg", "https://example.com/qr/sneakers1", []string{"shoes", "sneakers", "sporty", "casual"}},
	{"Deri Bot", "https://example.com/images/boots1.jpg", "https://example.com/qr/boots1", []string{"shoes", "boots", "soğuk", "kış", "yağmurlu"}},
	{"Yün Kazak", "https://example.com/images/sweater1.jpg", "https://example.com/qr/sweater1", []string{"knitwear", "soğuk", "kış", "classic"}},
	{"Oversize Sweatshirt", "https://example.com/images/sweatshirt1.jpg", "https://example.com/qr/sweatshirt1", []string{"sweatshirt", "ılıman", "streetwear", "casual"}},
	{"Keten Gömlek", "https://example.com/images/shirt1.jpg", "https://example.com/qr/shirt1", []string{"shirt", "yaz", "sıcak", "minimal", "formal"}},
	{"Slim Fit Jean", "https://example.com/images/jeans1.jpg", "https://example.com/qr/jeans1", []string{"jeans", "casual", "modern", "ılıman"}},
	{"Kar Montu", "https://example.com/images/parka1.jpg", "https://example.com/qr/parka1", []string{"outerwear", "parka", "soğuk", "kış", "karlı"}},
	{"Vintage Ceket", "https://example.com/images/jacket1.jpg", "https://example.com/qr/jacket1", []string{"jacket", "vintage", "streetwear", "bahar"}},
}

// SeedProducts installs the demo catalog when the products table is empty.
// It is idempotent across restarts.
func SeedProducts(ctx context.Context, db *gorm.DB) (int, error) {
	n, err := CountProducts(ctx, db)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	created := 0
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sp := range sampleProducts {
			if _, err := CreateProduct(ctx, tx, sp.name, sp.imageURL, sp.qrCodeURL, sp.tags); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
