// Package repo implements the data persistence layer for the product
// catalog. This file provides repository functions for the Product model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Tag matching lives in the service
// layer, which filters the full catalog in memory (the catalog is
// kiosk-sized and read-only at runtime).
//
// Error semantics:
//   - When a product is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/modaselfie/go-mirror-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for consistency across the service
// layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateProduct inserts a new catalog item. The product ID is a randomly
// generated UUID (string), and CreatedAt is set to UTC.
func CreateProduct(ctx context.Context, db *gorm.DB, name, imageURL, qrCodeURL string, tags []string) (*domain.Product, error) {
	p := &domain.Product{
		ID:        uuid.NewString(),
		Name:      name,
		ImageURL:  imageURL,
		QRCodeURL: qrCodeURL,
		Tags:      tags,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts returns the whole catalog, ordered by creation time ascending
// so seeded display order is stable.
func ListProducts(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var out []domain.Product
	err := db.WithContext(ctx).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// CountProducts returns the catalog size.
func CountProducts(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Product{}).Count(&n).Error
	return n, err
}

// GetProduct fetches a single product by ID, or ErrNotFound if missing.
func GetProduct(ctx context.Context, db *gorm.DB, id string) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}
