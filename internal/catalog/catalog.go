package catalog

import "go-cookie-shop/internal/models"

// Products is the static cookie catalog, loaded once at startup.
// Prices are in rupiah. Cookies are priced per volume size; the
// "Satuan" entries are hampers packs priced per unit.
var Products = []models.Product{
	{
		ID:        "nastar-klasik",
		Name:      "Nastar Klasik",
		Image:     "/cookies/nastar-klasik.jpg",
		BasePrice: 60000,
		SizePrices: map[string]int64{
			"400ml": 60000,
			"600ml": 80000,
			"800ml": 100000,
		},
	},
	{
		ID:        "nastar-keju",
		Name:      "Nastar Keju",
		Image:     "/cookies/nastar_keju.jpeg",
		BasePrice: 65000,
		SizePrices: map[string]int64{
			"400ml": 65000,
			"600ml": 90000,
			"800ml": 115000,
		},
	},
	{
		ID:        "cheese-garlic",
		Name:      "Cheese Garlic",
		Image:     "/cookies/cheese-garlic.jpeg",
		BasePrice: 65000,
		SizePrices: map[string]int64{
			"400ml": 65000,
			"600ml": 85000,
			"800ml": 110000,
		},
	},
	{
		ID:        "sagu-keju",
		Name:      "Sagu Keju",
		Image:     "/cookies/sagu_keju.jpeg",
		BasePrice: 65000,
		SizePrices: map[string]int64{
			"400ml": 65000,
			"600ml": 85000,
			"800ml": 110000,
		},
	},
	{
		ID:        "choco-nuteball",
		Name:      "Choco Nuteball",
		Image:     "/cookies/choco_nutball.jpeg",
		BasePrice: 60000,
		SizePrices: map[string]int64{
			"400ml": 60000,
			"600ml": 80000,
			"800ml": 110000,
		},
	},
	{
		ID:        "kastengel",
		Name:      "Kastengel",
		Image:     "/cookies/krestangel.jpeg",
		BasePrice: 70000,
		SizePrices: map[string]int64{
			"400ml": 70000,
			"600ml": 95000,
			"800ml": 125000,
		},
	},
	{
		ID:        "lidah-kucing-keju",
		Name:      "Lidah Kucing Keju",
		Image:     "/cookies/lidah_kucing.jpeg",
		BasePrice: 65000,
		SizePrices: map[string]int64{
			"400ml": 65000,
		},
	},
	{
		ID:        "palm-cheese",
		Name:      "Palm Cheese",
		Image:     "/cookies/palm_cheese.jpeg",
		BasePrice: 60000,
		SizePrices: map[string]int64{
			"400ml": 60000,
			"600ml": 80000,
			"800ml": 100000,
		},
	},
	{
		ID:        "putri-salju-mede",
		Name:      "Putri Salju Mede",
		Image:     "/cookies/putri-salju.jpeg",
		BasePrice: 60000,
		SizePrices: map[string]int64{
			"400ml": 60000,
			"600ml": 80000,
			"800ml": 100000,
		},
	},
	{
		ID:        "putri-salju-coklat",
		Name:      "Putri Salju Coklat",
		Image:     "/cookies/putri-salju-coklat.jpg",
		BasePrice: 65000,
		SizePrices: map[string]int64{
			"400ml": 65000,
			"600ml": 85000,
			"800ml": 115000,
		},
	},
	{
		ID:        "chocolate-pistacio",
		Name:      "Chocolate Pistacio",
		Image:     "/cookies/coklat-pistacio.jpeg",
		BasePrice: 70000,
		SizePrices: map[string]int64{
			"400ml": 70000,
			"600ml": 95000,
			"800ml": 125000,
		},
	},
	{
		ID:        "kue-kacang",
		Name:      "Kue Kacang",
		Image:     "/cookies/kue-kacang.jpeg",
		BasePrice: 40000,
		SizePrices: map[string]int64{
			"400ml": 40000,
			"600ml": 50000,
			"800ml": 70000,
		},
	},
	{
		ID:        "matcha-almond",
		Name:      "Matcha Almond",
		Image:     "/cookies/almond.jpg",
		BasePrice: 65000,
		SizePrices: map[string]int64{
			"400ml": 65000,
			"600ml": 85000,
			"800ml": 115000,
		},
	},
	{
		ID:        "kue-abon-bawang",
		Name:      "Kue Abon Bawang",
		Image:     "/cookies/kue_abon_bawang.jpeg",
		BasePrice: 50000,
		SizePrices: map[string]int64{
			"400ml": 50000,
			"600ml": 65000,
			"800ml": 85000,
		},
	},
	{
		ID:        "choco-cheese-thumbprint",
		Name:      "Choco Cheese Thumbprint",
		Image:     "/cookies/choco_cheese.jpeg",
		BasePrice: 65000,
		SizePrices: map[string]int64{
			"400ml": 65000,
			"600ml": 85000,
			"800ml": 110000,
		},
	},
	{
		ID:        "hampers1",
		Name:      "Hampers 1",
		Image:     "/cookies/hampers1.jpeg",
		OrderType: models.OrderTypeHampers,
		BasePrice: 6000,
		SizePrices: map[string]int64{
			models.SizeUnit: 6000,
		},
	},
	{
		ID:        "hampers2",
		Name:      "Hampers 2",
		Image:     "/cookies/hampers2.jpeg",
		OrderType: models.OrderTypeHampers,
		BasePrice: 9000,
		SizePrices: map[string]int64{
			models.SizeUnit: 9000,
		},
	},
	{
		ID:        "hampers3",
		Name:      "Hampers 3",
		Image:     "/cookies/hampers3.jpeg",
		OrderType: models.OrderTypeHampers,
		BasePrice: 19000,
		SizePrices: map[string]int64{
			models.SizeUnit: 19000,
		},
	},
	{
		ID:        "hampers4",
		Name:      "Hampers 4",
		Image:     "/cookies/hampers4.jpeg",
		OrderType: models.OrderTypeHampers,
		BasePrice: 16000,
		SizePrices: map[string]int64{
			models.SizeUnit: 16000,
		},
	},
	{
		ID:        "hampers5",
		Name:      "Hampers 5",
		Image:     "/cookies/hampers5.jpeg",
		OrderType: models.OrderTypeHampers,
		BasePrice: 3500,
		SizePrices: map[string]int64{
			models.SizeUnit: 3500,
		},
	},
}

// Find returns the product with the given ID, or nil if unknown
func Find(productID string) *models.Product {
	for i := range Products {
		if Products[i].ID == productID {
			return &Products[i]
		}
	}
	return nil
}

// UnitPrice looks up the price for a size. Products without a price for
// the requested size (hampers packs) fall back to their "Satuan" unit
// price. The second return is false only when neither exists.
func UnitPrice(p *models.Product, size string) (int64, bool) {
	if price, ok := p.SizePrices[size]; ok {
		return price, true
	}
	if price, ok := p.SizePrices[models.SizeUnit]; ok {
		return price, true
	}
	return 0, false
}
