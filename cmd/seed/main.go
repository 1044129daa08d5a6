package main

import (
	"os"

	"storefront-api/config"
	"storefront-api/internal/hashing"
	"storefront-api/internal/models"
	"storefront-api/pkg/database"
	"storefront-api/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type categorySeed struct {
	Name        string
	Slug        string
	Description string
	ImageURL    string
	SortOrder   int
}

type variantSeed struct {
	Size     string
	Color    string
	ColorHex string
	Stock    int
	SKU      string
}

type imageSeed struct {
	URL       string
	AltText   string
	SortOrder int
}

type productSeed struct {
	Name         string
	Slug         string
	Description  string
	Price        string
	ComparePrice string
	IsFeatured   bool
	CategorySlug string
	Images       []imageSeed
	Variants     []variantSeed
}

var categories = []categorySeed{
	{Name: "Kadin", Slug: "kadin", Description: "Kadin giyim koleksiyonu", ImageURL: "https://picsum.photos/400/400?random=100", SortOrder: 1},
	{Name: "Erkek", Slug: "erkek", Description: "Erkek giyim koleksiyonu", ImageURL: "https://picsum.photos/400/400?random=101", SortOrder: 2},
	{Name: "Aksesuar", Slug: "aksesuar", Description: "Aksesuar koleksiyonu", ImageURL: "https://picsum.photos/400/400?random=102", SortOrder: 3},
	{Name: "Ayakkabi", Slug: "ayakkabi", Description: "Ayakkabi koleksiyonu", ImageURL: "https://picsum.photos/400/400?random=103", SortOrder: 4},
	{Name: "Canta", Slug: "canta", Description: "Canta koleksiyonu", ImageURL: "https://picsum.photos/400/400?random=104", SortOrder: 5},
	{Name: "Spor", Slug: "spor", Description: "Spor giyim koleksiyonu", ImageURL: "https://picsum.photos/400/400?random=105", SortOrder: 6},
}

var products = []productSeed{
	{
		Name: "Oversize Pamuklu T-Shirt", Slug: "oversize-pamuklu-t-shirt",
		Description: "Rahat kesim, %100 pamuklu oversize t-shirt. Gunluk kullanima uygun.",
		Price:       "299", ComparePrice: "449", IsFeatured: true, CategorySlug: "kadin",
		Images: []imageSeed{
			{URL: "https://picsum.photos/400/600?random=1", AltText: "Oversize Pamuklu T-Shirt - On", SortOrder: 0},
			{URL: "https://picsum.photos/400/600?random=2", AltText: "Oversize Pamuklu T-Shirt - Arka", SortOrder: 1},
		},
		Variants: []variantSeed{
			{Size: "S", Color: "Beyaz", ColorHex: "#FFFFFF", Stock: 15, SKU: "KDN-OPT-S-BYZ"},
			{Size: "M", Color: "Beyaz", ColorHex: "#FFFFFF", Stock: 20, SKU: "KDN-OPT-M-BYZ"},
			{Size: "L", Color: "Beyaz", ColorHex: "#FFFFFF", Stock: 10, SKU: "KDN-OPT-L-BYZ"},
			{Size: "S", Color: "Siyah", ColorHex: "#000000", Stock: 12, SKU: "KDN-OPT-S-SYH"},
			{Size: "M", Color: "Siyah", ColorHex: "#000000", Stock: 18, SKU: "KDN-OPT-M-SYH"},
			{Size: "L", Color: "Siyah", ColorHex: "#000000", Stock: 8, SKU: "KDN-OPT-L-SYH"},
		},
	},
	{
		Name: "Yuksek Bel Mom Jean", Slug: "yuksek-bel-mom-jean",
		Description: "Yuksek bel, rahat kesim mom jean. Vintage gorunum.",
		Price:       "599", ComparePrice: "799", IsFeatured: true, CategorySlug: "kadin",
		Images: []imageSeed{
			{URL: "https://picsum.photos/400/600?random=4", AltText: "Mom Jean - On", SortOrder: 0},
			{URL: "https://picsum.photos/400/600?random=5", AltText: "Mom Jean - Arka", SortOrder: 1},
		},
		Variants: []variantSeed{
			{Size: "XS", Color: "Mavi", ColorHex: "#2196F3", Stock: 8, SKU: "KDN-MJ-XS-MV"},
			{Size: "S", Color: "Mavi", ColorHex: "#2196F3", Stock: 14, SKU: "KDN-MJ-S-MV"},
			{Size: "M", Color: "Mavi", ColorHex: "#2196F3", Stock: 20, SKU: "KDN-MJ-M-MV"},
			{Size: "L", Color: "Mavi", ColorHex: "#2196F3", Stock: 12, SKU: "KDN-MJ-L-MV"},
		},
	},
	{
		Name: "Slim Fit Gomlek", Slug: "slim-fit-gomlek",
		Description: "Slim fit kesim, kirisma yapmayan kumas. Ofis ve gunluk kullanim.",
		Price:       "449", ComparePrice: "599", IsFeatured: true, CategorySlug: "erkek",
		Images: []imageSeed{
			{URL: "https://picsum.photos/400/600?random=10", AltText: "Slim Fit Gomlek - On", SortOrder: 0},
		},
		Variants: []variantSeed{
			{Size: "S", Color: "Beyaz", ColorHex: "#FFFFFF", Stock: 10, SKU: "ERK-SFG-S-BYZ"},
			{Size: "M", Color: "Beyaz", ColorHex: "#FFFFFF", Stock: 16, SKU: "ERK-SFG-M-BYZ"},
			{Size: "L", Color: "Beyaz", ColorHex: "#FFFFFF", Stock: 14, SKU: "ERK-SFG-L-BYZ"},
			{Size: "XL", Color: "Beyaz", ColorHex: "#FFFFFF", Stock: 6, SKU: "ERK-SFG-XL-BYZ"},
		},
	},
	{
		Name: "Deri Kemer", Slug: "deri-kemer",
		Description: "Hakiki deri, klasik toka. Her kombine uyum saglar.",
		Price:       "199", IsFeatured: false, CategorySlug: "aksesuar",
		Images: []imageSeed{
			{URL: "https://picsum.photos/400/600?random=20", AltText: "Deri Kemer", SortOrder: 0},
		},
		Variants: []variantSeed{
			{Size: "STD", Color: "Kahverengi", ColorHex: "#795548", Stock: 25, SKU: "AKS-DK-STD-KHV"},
			{Size: "STD", Color: "Siyah", ColorHex: "#000000", Stock: 30, SKU: "AKS-DK-STD-SYH"},
		},
	},
	{
		Name: "Gunluk Sneaker", Slug: "gunluk-sneaker",
		Description: "Hafif taban, nefes alan kumas. Gunluk kullanim icin ideal.",
		Price:       "899", ComparePrice: "1199", IsFeatured: true, CategorySlug: "ayakkabi",
		Images: []imageSeed{
			{URL: "https://picsum.photos/400/600?random=30", AltText: "Gunluk Sneaker - Yan", SortOrder: 0},
			{URL: "https://picsum.photos/400/600?random=31", AltText: "Gunluk Sneaker - Ust", SortOrder: 1},
		},
		Variants: []variantSeed{
			{Size: "40", Color: "Beyaz", ColorHex: "#FFFFFF", Stock: 7, SKU: "AYK-GS-40-BYZ"},
			{Size: "41", Color: "Beyaz", ColorHex: "#FFFFFF", Stock: 9, SKU: "AYK-GS-41-BYZ"},
			{Size: "42", Color: "Beyaz", ColorHex: "#FFFFFF", Stock: 11, SKU: "AYK-GS-42-BYZ"},
			{Size: "43", Color: "Beyaz", ColorHex: "#FFFFFF", Stock: 5, SKU: "AYK-GS-43-BYZ"},
		},
	},
	{
		Name: "Mini Omuz Cantasi", Slug: "mini-omuz-cantasi",
		Description: "Ayarlanabilir askili mini omuz cantasi.",
		Price:       "349", IsFeatured: false, CategorySlug: "canta",
		Images: []imageSeed{
			{URL: "https://picsum.photos/400/600?random=40", AltText: "Mini Omuz Cantasi", SortOrder: 0},
		},
		Variants: []variantSeed{
			{Size: "STD", Color: "Siyah", ColorHex: "#000000", Stock: 20, SKU: "CNT-MOC-STD-SYH"},
			{Size: "STD", Color: "Bej", ColorHex: "#F5F5DC", Stock: 15, SKU: "CNT-MOC-STD-BEJ"},
		},
	},
	{
		Name: "Performans Tayt", Slug: "performans-tayt",
		Description: "Yuksek bel, terletmeyen kumas. Antrenman icin tasarlandi.",
		Price:       "279", ComparePrice: "399", IsFeatured: false, CategorySlug: "spor",
		Images: []imageSeed{
			{URL: "https://picsum.photos/400/600?random=50", AltText: "Performans Tayt", SortOrder: 0},
		},
		Variants: []variantSeed{
			{Size: "S", Color: "Siyah", ColorHex: "#000000", Stock: 18, SKU: "SPR-PT-S-SYH"},
			{Size: "M", Color: "Siyah", ColorHex: "#000000", Stock: 22, SKU: "SPR-PT-M-SYH"},
			{Size: "L", Color: "Siyah", ColorHex: "#000000", Stock: 9, SKU: "SPR-PT-L-SYH"},
		},
	},
}

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	if err := seed(db, log); err != nil {
		log.Fatal("Ошибка при заполнении данных", zap.Error(err))
	}

	log.Info("Заполнение данных завершено",
		zap.Int("categories", len(categories)),
		zap.Int("products", len(products)),
	)
}

func seed(db *gorm.DB, log *zap.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// Полная перезаливка: порядок удаления учитывает FK.
		for _, table := range []string{
			"order_items", "orders", "cart_items", "carts", "sessions",
			"product_variants", "product_images", "products", "categories", "users",
		} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}

		hasher := hashing.NewBcrypt(0)
		passwordHash, err := hasher.Hash("Test1234!")
		if err != nil {
			return err
		}

		phone := "+905551234567"
		testUser := &models.User{
			Email:           "test@stilora.com",
			Password:        passwordHash,
			FirstName:       "Test",
			LastName:        "Kullanici",
			Phone:           &phone,
			Role:            models.RoleCustomer,
			IsActive:        true,
			IsEmailVerified: true,
		}
		if err := tx.Create(testUser).Error; err != nil {
			return err
		}

		adminPhone := "+905559876543"
		adminUser := &models.User{
			Email:           "admin@stilora.com",
			Password:        passwordHash,
			FirstName:       "Admin",
			LastName:        "Stilora",
			Phone:           &adminPhone,
			Role:            models.RoleAdmin,
			IsActive:        true,
			IsEmailVerified: true,
		}
		if err := tx.Create(adminUser).Error; err != nil {
			return err
		}

		categoryBySlug := make(map[string]*models.Category, len(categories))
		for _, c := range categories {
			cat := &models.Category{
				Name:        c.Name,
				Slug:        c.Slug,
				Description: c.Description,
				ImageURL:    c.ImageURL,
				SortOrder:   c.SortOrder,
				IsActive:    true,
			}
			if err := tx.Create(cat).Error; err != nil {
				return err
			}
			categoryBySlug[c.Slug] = cat
			log.Info("категория создана", zap.String("name", c.Name))
		}

		for _, p := range products {
			cat, ok := categoryBySlug[p.CategorySlug]
			if !ok {
				log.Warn("категория не найдена, товар пропущен", zap.String("slug", p.CategorySlug))
				continue
			}

			prod := &models.Product{
				CategoryID:  cat.ID,
				Name:        p.Name,
				Slug:        p.Slug,
				Description: p.Description,
				Price:       decimal.RequireFromString(p.Price),
				IsFeatured:  p.IsFeatured,
				IsActive:    true,
			}
			if p.ComparePrice != "" {
				cp := decimal.RequireFromString(p.ComparePrice)
				prod.ComparePrice = &cp
			}
			for _, img := range p.Images {
				prod.Images = append(prod.Images, models.ProductImage{
					URL:       img.URL,
					AltText:   img.AltText,
					SortOrder: img.SortOrder,
				})
			}
			for _, v := range p.Variants {
				prod.Variants = append(prod.Variants, models.ProductVariant{
					Size:     v.Size,
					Color:    v.Color,
					ColorHex: v.ColorHex,
					SKU:      v.SKU,
					Stock:    v.Stock,
					IsActive: true,
				})
			}

			if err := tx.Create(prod).Error; err != nil {
				return err
			}
			log.Info("товар создан",
				zap.String("name", p.Name),
				zap.Int("variants", len(p.Variants)),
			)
		}

		return nil
	})
}
