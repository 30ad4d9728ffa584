package catalog

import (
	"github.com/shopspring/decimal"

	"atelier-storefront/internal/domain"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pricePtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// FallbackProducts returns the bundled static dataset used when the live
// catalog service is unreachable. Returns a fresh copy each call so callers
// can filter and sort without sharing state.
func FallbackProducts() []domain.Product {
	return []domain.Product{
		{
			ID: 1, Name: "Oversized Wool Coat", Description: "Double-faced wool coat with dropped shoulders",
			Price: price("189.00"), OriginalPrice: pricePtr("240.00"), Category: domain.CategoryWomen,
			Sizes:  []string{"XS", "S", "M", "L"},
			Colors: []domain.Color{{Name: "Camel", Hex: "#C19A6B"}, {Name: "Black", Hex: "#1A1A1A"}},
			Images: []string{"/images/wool-coat.jpg"}, Rating: 4.8, Reviews: 124, IsNew: true, IsFeatured: true,
		},
		{
			ID: 2, Name: "Relaxed Linen Shirt", Description: "Breathable washed linen with a relaxed fit",
			Price: price("59.00"), Category: domain.CategoryMen,
			Sizes:  []string{"S", "M", "L", "XL"},
			Colors: []domain.Color{{Name: "White", Hex: "#FAFAFA"}, {Name: "Olive", Hex: "#708238"}},
			Images: []string{"/images/linen-shirt.jpg"}, Rating: 4.5, Reviews: 86, IsTrending: true,
		},
		{
			ID: 3, Name: "High-Rise Straight Jeans", Description: "Rigid denim with a vintage straight leg",
			Price: price("89.00"), OriginalPrice: pricePtr("110.00"), Category: domain.CategoryWomen,
			Sizes:  []string{"XS", "S", "M", "L", "XL"},
			Colors: []domain.Color{{Name: "Navy", Hex: "#1F2A44"}},
			Images: []string{"/images/straight-jeans.jpg"}, Rating: 4.6, Reviews: 203, IsFeatured: true,
		},
		{
			ID: 4, Name: "Merino Crewneck Sweater", Description: "Extra-fine merino in a classic crew silhouette",
			Price: price("95.00"), Category: domain.CategoryMen,
			Sizes:  []string{"S", "M", "L", "XL"},
			Colors: []domain.Color{{Name: "Cream", Hex: "#F5F0E1"}, {Name: "Black", Hex: "#1A1A1A"}},
			Images: []string{"/images/merino-crew.jpg"}, Rating: 4.7, Reviews: 58, IsNew: true,
		},
		{
			ID: 5, Name: "Pleated Midi Skirt", Description: "Fluid pleats with an elastic waistband",
			Price: price("72.00"), Category: domain.CategoryWomen,
			Sizes:  []string{"XS", "S", "M", "L"},
			Colors: []domain.Color{{Name: "Terracotta", Hex: "#C66B3D"}, {Name: "Black", Hex: "#1A1A1A"}},
			Images: []string{"/images/pleated-skirt.jpg"}, Rating: 4.4, Reviews: 41, IsTrending: true,
		},
		{
			ID: 6, Name: "Corduroy Overshirt", Description: "Heavyweight corduroy with patch pockets",
			Price: price("79.00"), OriginalPrice: pricePtr("99.00"), Category: domain.CategoryMen,
			Sizes:  []string{"M", "L", "XL"},
			Colors: []domain.Color{{Name: "Camel", Hex: "#C19A6B"}},
			Images: []string{"/images/cord-overshirt.jpg"}, Rating: 4.3, Reviews: 37,
		},
		{
			ID: 7, Name: "Quilted Liner Jacket", Description: "Lightweight quilted jacket for layering",
			Price: price("119.00"), Category: domain.CategoryKids,
			Sizes:  []string{"XS", "S", "M"},
			Colors: []domain.Color{{Name: "Olive", Hex: "#708238"}, {Name: "Navy", Hex: "#1F2A44"}},
			Images: []string{"/images/liner-jacket.jpg"}, Rating: 4.6, Reviews: 22, IsNew: true,
		},
		{
			ID: 8, Name: "Ribbed Knit Dress", Description: "Stretch-rib knit in a column silhouette",
			Price: price("104.00"), Category: domain.CategoryWomen,
			Sizes:  []string{"XS", "S", "M", "L"},
			Colors: []domain.Color{{Name: "Black", Hex: "#1A1A1A"}, {Name: "Cream", Hex: "#F5F0E1"}},
			Images: []string{"/images/rib-dress.jpg"}, Rating: 4.9, Reviews: 158, IsFeatured: true, IsTrending: true,
		},
		{
			ID: 9, Name: "Canvas Utility Pant", Description: "Garment-dyed cotton canvas with a tapered leg",
			Price: price("84.00"), Category: domain.CategoryMen,
			Sizes:  []string{"S", "M", "L", "XL"},
			Colors: []domain.Color{{Name: "Olive", Hex: "#708238"}, {Name: "Black", Hex: "#1A1A1A"}},
			Images: []string{"/images/utility-pant.jpg"}, Rating: 4.2, Reviews: 64,
		},
		{
			ID: 10, Name: "Fleece Zip Hoodie", Description: "Brushed-back fleece with a two-way zip",
			Price: price("49.00"), OriginalPrice: pricePtr("65.00"), Category: domain.CategoryKids,
			Sizes:  []string{"XS", "S", "M", "L"},
			Colors: []domain.Color{{Name: "Navy", Hex: "#1F2A44"}, {Name: "Terracotta", Hex: "#C66B3D"}},
			Images: []string{"/images/zip-hoodie.jpg"}, Rating: 4.5, Reviews: 93, IsNew: true,
		},
		{
			ID: 11, Name: "Silk Blend Scarf", Description: "Hand-finished silk blend in a seasonal print",
			Price: price("45.00"), Category: domain.CategoryOther,
			Sizes:  []string{"One Size"},
			Colors: []domain.Color{{Name: "Cream", Hex: "#F5F0E1"}},
			Images: []string{"/images/silk-scarf.jpg"}, Rating: 4.7, Reviews: 29,
		},
		{
			ID: 12, Name: "Leather Belt Bag", Description: "Pebbled leather with an adjustable strap",
			Price: price("129.00"), Category: domain.CategoryOther,
			Sizes:  []string{"One Size"},
			Colors: []domain.Color{{Name: "Black", Hex: "#1A1A1A"}, {Name: "Camel", Hex: "#C19A6B"}},
			Images: []string{"/images/belt-bag.jpg"}, Rating: 4.4, Reviews: 51, IsTrending: true,
		},
	}
}
