package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/storefront/pkg/config"
	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type seedProduct struct {
	Name          string
	Description   string
	Price         float64
	DiscountPrice float64
	Stock         int
	CategoryName  string
	Rating        float64
	ReviewCount   int
	Images        []string
}

var seedCategories = []models.Category{
	{Name: "Electronics", Description: "Phones, Laptops, TV & more"},
	{Name: "Fashion", Description: "Clothing, Shoes & Accessories"},
	{Name: "Books", Description: "Books, eBooks & Audiobooks"},
	{Name: "Home", Description: "Furniture, Kitchen & Garden"},
	{Name: "Sports", Description: "Sports & Fitness Equipment"},
	{Name: "Beauty", Description: "Beauty & Personal Care"},
}

var seedProducts = []seedProduct{
	{
		Name:          "iPhone 15 Pro",
		Description:   "Latest iPhone with A17 Pro chip and titanium design",
		Price:         134900,
		DiscountPrice: 124900,
		Stock:         25,
		CategoryName:  "Electronics",
		Rating:        4.8,
		ReviewCount:   1245,
		Images:        []string{"https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=500&h=400&fit=crop"},
	},
	{
		Name:          "MacBook Air M3",
		Description:   "13-inch MacBook Air with M3 chip, 8GB RAM, 256GB SSD",
		Price:         114900,
		DiscountPrice: 109900,
		Stock:         15,
		CategoryName:  "Electronics",
		Rating:        4.7,
		ReviewCount:   892,
		Images:        []string{"https://images.unsplash.com/photo-1541807084-5c52b6b3adef?w=500&h=400&fit=crop"},
	},
	{
		Name:          "Sony WH-1000XM5 Headphones",
		Description:   "Industry-leading noise canceling wireless headphones",
		Price:         29990,
		DiscountPrice: 24990,
		Stock:         30,
		CategoryName:  "Electronics",
		Rating:        4.9,
		ReviewCount:   2134,
		Images:        []string{"https://images.unsplash.com/photo-1484704849700-f032a568e944?w=500&h=400&fit=crop"},
	},
	{
		Name:          "Nike Air Max 270",
		Description:   "Comfortable running shoes with Max Air cushioning",
		Price:         12995,
		DiscountPrice: 9999,
		Stock:         50,
		CategoryName:  "Fashion",
		Rating:        4.6,
		ReviewCount:   789,
		Images:        []string{"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=500&h=400&fit=crop"},
	},
	{
		Name:         "Levi's 511 Slim Jeans",
		Description:  "Classic slim fit jeans in dark wash",
		Price:        3999,
		Stock:        75,
		CategoryName: "Fashion",
		Rating:       4.4,
		ReviewCount:  445,
		Images:       []string{"https://images.unsplash.com/photo-1541099649105-f69ad21f3246?w=500&h=400&fit=crop"},
	},
	{
		Name:          "The Psychology of Money",
		Description:   "Timeless lessons on wealth, greed, and happiness by Morgan Housel",
		Price:         399,
		DiscountPrice: 299,
		Stock:         100,
		CategoryName:  "Books",
		Rating:        4.6,
		ReviewCount:   3120,
	},
}

func main() {
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	db, err := repository.Open(&cfg.MySQL)
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}
	store := repository.NewStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	categoryIDs := make(map[string]string, len(seedCategories))
	for _, category := range seedCategories {
		category.ID = uuid.NewString()
		if err := store.CreateCategory(ctx, &category); err != nil {
			logger.Fatal("Failed to seed category", zap.String("name", category.Name), zap.Error(err))
		}
		categoryIDs[category.Name] = category.ID
	}
	logger.Info("Seeded categories", zap.Int("count", len(seedCategories)))

	for _, sp := range seedProducts {
		images, _ := json.Marshal(sp.Images)
		product := &models.Product{
			ID:          uuid.NewString(),
			Name:        sp.Name,
			Description: sp.Description,
			Price:       sp.Price,
			Stock:       sp.Stock,
			CategoryID:  categoryIDs[sp.CategoryName],
			Images:      string(images),
			Rating:      sp.Rating,
			ReviewCount: sp.ReviewCount,
			CreatedAt:   time.Now(),
		}
		if sp.DiscountPrice > 0 {
			discount := sp.DiscountPrice
			product.DiscountPrice = &discount
		}
		if err := store.CreateProduct(ctx, product); err != nil {
			logger.Fatal("Failed to seed product", zap.String("name", sp.Name), zap.Error(err))
		}
	}
	logger.Info("Seeded products", zap.Int("count", len(seedProducts)))

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("Failed to hash demo password", zap.Error(err))
	}
	demo := &models.User{
		ID:        uuid.NewString(),
		Username:  "demo",
		Email:     "demo@example.com",
		Password:  string(hashed),
		FirstName: "Demo",
		LastName:  "User",
		CreatedAt: time.Now(),
	}
	if err := store.CreateUser(ctx, demo); err != nil {
		logger.Fatal("Failed to seed demo user", zap.Error(err))
	}

	logger.Info("Seeding completed")
}
