// Command seedorders fills the database with demo catalog data and a
// batch of fake orders, enough to exercise the admin listing filters.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"volnasup.ru/shop/internal/config"
	"volnasup.ru/shop/internal/modules/orders"
	"volnasup.ru/shop/internal/modules/products"
	"volnasup.ru/shop/internal/shared/slug"
)

var firstNames = []string{
	"Анна", "Иван", "Мария", "Дмитрий", "Елена", "Сергей", "Ольга",
	"Алексей", "Наталья", "Павел", "Юлия", "Михаил", "Екатерина", "Андрей",
}

var lastNames = []string{
	"Морозова", "Петров", "Иванова", "Смирнов", "Кузнецова", "Волков",
	"Соколова", "Лебедев", "Козлова", "Новиков", "Фёдорова", "Орлов",
}

var catalogSeed = []struct {
	name     string
	variants []struct {
		sku    string
		length string
		volume string
		price  int64
		stock  int
	}
}{
	{
		name: "Доска SUP Волна 10.6",
		variants: []struct {
			sku    string
			length string
			volume string
			price  int64
			stock  int
		}{
			{"SUP-106", "10'6\"", "280 л", 4599000, 12},
			{"SUP-106-PRO", "10'6\"", "300 л", 5899000, 5},
		},
	},
	{
		name: "Доска SUP Шторм 12.6",
		variants: []struct {
			sku    string
			length string
			volume string
			price  int64
			stock  int
		}{
			{"SUP-126", "12'6\"", "320 л", 6499000, 8},
		},
	},
	{
		name: "Весло карбон",
		variants: []struct {
			sku    string
			length string
			volume string
			price  int64
			stock  int
		}{
			{"PDL-CRB", "", "", 1299000, 30},
		},
	},
	{
		name: "Жилет страховочный",
		variants: []struct {
			sku    string
			length string
			volume string
			price  int64
			stock  int
		}{
			{"VEST-S", "", "", 349000, 20},
			{"VEST-L", "", "", 349000, 25},
		},
	},
}

var paymentMethods = []string{"card", "sbp", "cash"}

func main() {
	count := flag.Int("n", 40, "number of orders to create")
	seed := flag.Uint64("seed", 0, "faker seed (0 = random)")
	flag.Parse()

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

	cfg := config.Load()
	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN environment variable is required")
	}
	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	variants := seedCatalog(db)
	seedOrders(db, variants, *count)
}

func seedCatalog(db *gorm.DB) []products.Variant {
	var out []products.Variant
	now := time.Now()

	for _, cs := range catalogSeed {
		s := slug.Make(cs.name)

		var existing products.Product
		err := db.First(&existing, "slug = ?", s).Error
		if err == nil {
			db.Where("product_id = ?", existing.ID).Find(&existing.Variants)
			out = append(out, existing.Variants...)
			continue
		}

		p := products.Product{
			ID:        uuid.NewString(),
			Name:      cs.name,
			Slug:      s,
			Status:    products.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := db.Create(&p).Error; err != nil {
			log.Fatalf("failed to create product %s: %v", cs.name, err)
		}

		for _, vs := range cs.variants {
			opts := "{}"
			if vs.length != "" {
				opts = fmt.Sprintf(`{"length":%q,"volume":%q}`, vs.length, vs.volume)
			}
			v := products.Variant{
				ID:         uuid.NewString(),
				ProductID:  p.ID,
				SKU:        vs.sku,
				Options:    []byte(opts),
				PriceCents: vs.price,
				Currency:   "RUB",
				Stock:      vs.stock,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := db.Create(&v).Error; err != nil {
				log.Fatalf("failed to create variant %s: %v", vs.sku, err)
			}
			out = append(out, v)
		}
		color.Cyan("product %s (%d variants)", cs.name, len(cs.variants))
	}
	return out
}

func seedOrders(db *gorm.DB, variants []products.Variant, count int) {
	statuses := orders.AllStatuses()

	for i := 0; i < count; i++ {
		first := firstNames[gofakeit.Number(0, len(firstNames)-1)]
		last := lastNames[gofakeit.Number(0, len(lastNames)-1)]
		customer := first + " " + last
		email := strings.ToLower(gofakeit.Username()) + "@example.com"
		status := statuses[gofakeit.Number(0, len(statuses)-1)]

		// Spread creation over the last 45 days so every date filter
		// has matches.
		createdAt := time.Now().Add(-time.Duration(gofakeit.Number(0, 45*24)) * time.Hour)

		o := orders.Order{
			ID:            uuid.NewString(),
			Customer:      customer,
			Email:         email,
			Phone:         "+79" + fmt.Sprintf("%09d", gofakeit.Number(0, 999999999)),
			Address:       fmt.Sprintf("г. Москва, ул. %s, д. %d", gofakeit.LastName(), gofakeit.Number(1, 120)),
			PaymentMethod: paymentMethods[gofakeit.Number(0, len(paymentMethods)-1)],
			Status:        status,
			CreatedAt:     createdAt,
			UpdatedAt:     createdAt,
		}

		nItems := gofakeit.Number(1, 3)
		var amount int64
		items := make([]orders.OrderItem, 0, nItems)
		for j := 0; j < nItems; j++ {
			v := variants[gofakeit.Number(0, len(variants)-1)]
			qty := gofakeit.Number(1, 2)
			amount += v.PriceCents * int64(qty)
			items = append(items, orders.OrderItem{
				ID:         uuid.NewString(),
				OrderID:    o.ID,
				Name:       v.SKU,
				PriceCents: v.PriceCents,
				Quantity:   qty,
				CreatedAt:  createdAt,
			})
		}
		o.AmountCents = amount

		if err := db.Create(&o).Error; err != nil {
			log.Fatalf("failed to create order: %v", err)
		}
		if err := db.Create(&items).Error; err != nil {
			log.Fatalf("failed to create order items: %v", err)
		}

		ev := orders.OrderEvent{
			ID:        uuid.NewString(),
			OrderID:   o.ID,
			Actor:     email,
			ToStatus:  orders.StatusAwaitingPayment,
			CreatedAt: createdAt,
		}
		if err := db.Create(&ev).Error; err != nil {
			log.Fatalf("failed to create order event: %v", err)
		}
	}

	color.Green("created %d orders", count)
}
