// Package domain defines the persistence and transport models of the
// fashion mirror backend. Product is mapped with GORM and forms the
// read-only catalog the kiosk recommends from.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog item shown on the mirror. Each product carries the
// tag set used for weather- and style-based matching, plus the QR code URL
// the kiosk renders for in-store lookup.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name: display name.
//   - ImageURL: product photo shown on the mirror.
//   - QRCodeURL: in-store lookup link encoded as a QR code.
//   - Tags: lowercase labels ("soğuk", "casual", …) stored as JSON;
//     matching is OR-intersection against requested tags.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker (products are retired, not erased).
type Product struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string         `json:"name"       gorm:"type:varchar(255);not null"`
	ImageURL  string         `json:"imageUrl"   gorm:"type:varchar(512);not null"`
	QRCodeURL string         `json:"qrCodeUrl"  gorm:"type:varchar(512);not null"`
	Tags      []string       `json:"tags"       gorm:"serializer:json;type:text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Product.
func (Product) TableName() string { return "products" }

// HasAnyTag reports whether the product carries at least one of the given
// normalized tags (OR semantics).
func (p Product) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range p.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}
