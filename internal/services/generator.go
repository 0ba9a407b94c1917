package services

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"stockroom/internal/models"
)

type priceRange struct{ min, max int }

var (
	seedCategories = []string{
		"Phones", "Laptops", "Tablets", "Headphones", "Chargers",
		"Cases", "Monitors", "Keyboards", "Mice", "Cameras",
	}

	seedSuppliers = []string{
		"Apple Taiwan", "Samsung", "ASUS", "Acer", "MSI",
		"Gigabyte", "Lenovo", "Dell", "HP", "Xiaomi",
	}

	seedNames = map[string][]string{
		"Phones":     {"iPhone 15", "Galaxy S24", "Pixel 8", "Xiaomi 14", "OPPO Find X7"},
		"Laptops":    {"MacBook Air", "ThinkPad X1", "ZenBook", "Aspire 5", "Legion"},
		"Tablets":    {"iPad Pro", "Galaxy Tab", "Surface Pro", "MatePad", "Xiaomi Pad"},
		"Headphones": {"AirPods", "Galaxy Buds", "WH-1000XM5", "FreeBuds", "Redmi Buds"},
		"Chargers":   {"MagSafe", "Wireless Charger", "Fast Charger", "Power Bank", "Car Charger"},
		"Cases":      {"Phone Case", "Laptop Sleeve", "Tablet Cover", "Screen Protector", "Keyboard Cover"},
		"Monitors":   {"4K Monitor", "Curved Monitor", "Gaming Monitor", "Portable Monitor", "Touch Monitor"},
		"Keyboards":  {"Mechanical Keyboard", "Wireless Keyboard", "Bluetooth Keyboard", "Gaming Keyboard", "Membrane Keyboard"},
		"Mice":       {"Gaming Mouse", "Wireless Mouse", "Bluetooth Mouse", "Trackball", "Touchpad"},
		"Cameras":    {"Webcam", "Dash Cam", "Action Camera", "Security Camera", "Streaming Camera"},
	}

	seedVersions = []string{"Pro", "Max", "Plus", "Ultra", "Mini", "Lite", "SE", ""}

	seedPrices = map[string]priceRange{
		"Phones":     {8000, 50000},
		"Laptops":    {15000, 80000},
		"Tablets":    {8000, 35000},
		"Headphones": {500, 15000},
		"Chargers":   {200, 3000},
		"Cases":      {100, 2000},
		"Monitors":   {5000, 40000},
		"Keyboards":  {500, 8000},
		"Mice":       {300, 5000},
		"Cameras":    {1000, 20000},
	}

	defaultPriceRange = priceRange{500, 10000}
)

// ProductGenerator produces synthetic products for seeding.
type ProductGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewProductGenerator draws from src, or from a time-seeded source when src
// is nil.
func NewProductGenerator(src rand.Source) *ProductGenerator {
	if src == nil {
		src = rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())
	}
	return &ProductGenerator{rng: rand.New(src)}
}

// Generate returns n products stamped with now.
func (g *ProductGenerator) Generate(n int, now time.Time) []models.Product {
	g.mu.Lock()
	defer g.mu.Unlock()

	products := make([]models.Product, 0, n)
	for range n {
		category := pick(g.rng, seedCategories)
		name := strings.TrimSpace(fmt.Sprintf("%s %s", pick(g.rng, seedNames[category]), pick(g.rng, seedVersions)))

		prices, ok := seedPrices[category]
		if !ok {
			prices = defaultPriceRange
		}

		products = append(products, models.Product{
			Name:        name,
			Description: fmt.Sprintf("High quality %s for every kind of use", strings.ToLower(category)),
			Category:    category,
			Price:       float64(prices.min + g.rng.IntN(prices.max-prices.min+1)),
			Stock:       g.rng.IntN(101),
			MinStock:    5 + g.rng.IntN(16),
			Supplier:    pick(g.rng, seedSuppliers),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return products
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.IntN(len(options))]
}
