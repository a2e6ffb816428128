package services

import "github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/domain/entity"

// SampleProducts returns the fixed catalog written by SeedProducts, in
// insertion order. A fresh slice is built on every call.
func SampleProducts() []entity.Product {
	return []entity.Product{
		{
			Name:        "Aurora Wireless Headphones",
			Description: strPtr("Over-ear noise cancelling headphones with 40 hours of battery life."),
			Price:       floatPtr(199.99),
			Image:       strPtr("https://images.unsplash.com/photo-1518444028785-8fbcd101ebb9"),
			Category:    strPtr("audio"),
			InStock:     25,
			Featured:    true,
		},
		{
			Name:        "Nebula Smartwatch",
			Description: strPtr("Always-on AMOLED display, heart-rate tracking and GPS."),
			Price:       floatPtr(249.00),
			Image:       strPtr("https://images.unsplash.com/photo-1523275335684-37898b6baf30"),
			Category:    strPtr("wearables"),
			InStock:     40,
			Featured:    true,
		},
		{
			Name:        "Vertex Mechanical Keyboard",
			Description: strPtr("Hot-swappable 75% keyboard with tactile switches."),
			Price:       floatPtr(129.50),
			Image:       strPtr("https://images.unsplash.com/photo-1511467687858-23d96c32e4ae"),
			Category:    strPtr("accessories"),
			InStock:     60,
		},
		{
			Name:        "Drift Portable Speaker",
			Description: strPtr("Waterproof bluetooth speaker with 360 degree sound."),
			Price:       floatPtr(89.90),
			Image:       strPtr("https://images.unsplash.com/photo-1608043152269-423dbba4e7e1"),
			Category:    strPtr("audio"),
			InStock:     35,
		},
		{
			Name:        "Lumen Desk Lamp",
			Description: strPtr("Dimmable LED lamp with adjustable color temperature."),
			Price:       floatPtr(49.00),
			Image:       strPtr("https://images.unsplash.com/photo-1507473885765-e6ed057f782c"),
			Category:    strPtr("home"),
			InStock:     80,
		},
		{
			Name:        "Summit Travel Backpack",
			Description: strPtr("30L weatherproof backpack with a padded laptop sleeve."),
			Price:       floatPtr(119.00),
			Image:       strPtr("https://images.unsplash.com/photo-1553062407-98eeb64c6a62"),
			Category:    strPtr("travel"),
			InStock:     15,
		},
	}
}

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }
