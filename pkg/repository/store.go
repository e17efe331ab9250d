package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/storefront/pkg/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// CheckoutStore is the data-access surface the order placement workflow
// runs against. Inside WithinTx every method operates on the same
// database transaction.
type CheckoutStore interface {
	AddressBelongsToUser(ctx context.Context, addressID, userID string) (bool, error)
	ListCartLines(ctx context.Context, userID string) ([]models.CartLine, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	ClearCart(ctx context.Context, userID string) error
}

// CheckoutRunner adds transactional execution on top of CheckoutStore.
type CheckoutRunner interface {
	CheckoutStore
	WithinTx(ctx context.Context, fn func(tx CheckoutStore) error) error
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// WithinTx runs fn against a store bound to a single database transaction.
// Any error from fn rolls the whole transaction back.
func (s *Store) WithinTx(ctx context.Context, fn func(tx CheckoutStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// ---- users ----

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByLogin looks a user up by username or email, the way the login
// form allows either.
func (s *Store) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, login).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) UserExists(ctx context.Context, username, email string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Store) UpdateUserProfile(ctx context.Context, userID, firstName, lastName, phone string) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"first_name": firstName,
			"last_name":  lastName,
			"phone":      phone,
		}).Error
}

// ---- catalog ----

// ProductFilter drives the catalog listing. SortBy/SortOrder are validated
// against a whitelist before reaching SQL.
type ProductFilter struct {
	Page      int
	Limit     int
	Category  string
	Search    string
	SortBy    string
	SortOrder string
}

var productSortColumns = map[string]string{
	"createdAt":   "products.created_at",
	"created_at":  "products.created_at",
	"price":       "products.price",
	"rating":      "products.rating",
	"name":        "products.name",
	"reviewCount": "products.review_count",
}

func (f *ProductFilter) orderClause() string {
	column, ok := productSortColumns[f.SortBy]
	if !ok {
		column = "products.created_at"
	}
	order := "DESC"
	if strings.EqualFold(f.SortOrder, "ASC") {
		order = "ASC"
	}
	return fmt.Sprintf("%s %s", column, order)
}

func (s *Store) ListProducts(ctx context.Context, filter ProductFilter) ([]models.ProductWithCategory, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	query := s.db.WithContext(ctx).
		Table("products").
		Select("products.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = products.category_id")

	if filter.Category != "" {
		query = query.Where("categories.name LIKE ?", "%"+filter.Category+"%")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", like, like)
	}

	offset := (filter.Page - 1) * filter.Limit
	var products []models.ProductWithCategory
	if err := query.Order(filter.orderClause()).
		Offset(offset).Limit(filter.Limit).
		Scan(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*models.ProductWithCategory, error) {
	var product models.ProductWithCategory
	err := s.db.WithContext(ctx).
		Table("products").
		Select("products.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("products.id = ?", id).
		Take(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *Store) ProductExists(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *Store) ListFeaturedProducts(ctx context.Context) ([]models.ProductWithCategory, error) {
	var products []models.ProductWithCategory
	err := s.db.WithContext(ctx).
		Table("products").
		Select("products.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("products.rating >= ?", 4.0).
		Order("products.rating DESC, products.review_count DESC").
		Limit(12).
		Scan(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

// ---- cart ----

func (s *Store) ListCartDetails(ctx context.Context, userID string) ([]models.CartDetail, error) {
	var items []models.CartDetail
	err := s.db.WithContext(ctx).
		Table("cart").
		Select("cart.id, cart.product_id, cart.quantity, cart.added_at, products.name, products.price, products.discount_price, products.stock, products.images").
		Joins("JOIN products ON products.id = cart.product_id").
		Where("cart.user_id = ?", userID).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListCartLines(ctx context.Context, userID string) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := s.db.WithContext(ctx).
		Table("cart").
		Select("cart.product_id, cart.quantity, products.price, products.discount_price, products.stock").
		Joins("JOIN products ON products.id = cart.product_id").
		Where("cart.user_id = ?", userID).
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *Store) GetCartItem(ctx context.Context, userID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) AddCartItem(ctx context.Context, item *models.CartItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) IncrementCartItem(ctx context.Context, userID, productID string, delta int) error {
	return s.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta)).Error
}

func (s *Store) UpdateCartQuantity(ctx context.Context, userID, productID string, quantity int) error {
	result := s.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) RemoveCartItem(ctx context.Context, userID, productID string) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ClearCart(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

// ---- wishlist ----

func (s *Store) ListWishlist(ctx context.Context, userID string) ([]models.WishlistDetail, error) {
	var items []models.WishlistDetail
	err := s.db.WithContext(ctx).
		Table("wishlist").
		Select("wishlist.id, wishlist.product_id, wishlist.added_at, products.name, products.price, products.discount_price, products.rating, products.review_count, products.images").
		Joins("JOIN products ON products.id = wishlist.product_id").
		Where("wishlist.user_id = ?", userID).
		Order("wishlist.added_at DESC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) InWishlist(ctx context.Context, userID, productID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) AddWishlistItem(ctx context.Context, item *models.WishlistItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) RemoveWishlistItem(ctx context.Context, userID, productID string) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- addresses ----

func (s *Store) ListAddresses(ctx context.Context, userID string) ([]models.Address, error) {
	var addresses []models.Address
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, id DESC").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (s *Store) AddressBelongsToUser(ctx context.Context, addressID, userID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Address{}).
		Where("id = ? AND user_id = ?", addressID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateAddress(ctx context.Context, address *models.Address) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", address.UserID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(address).Error
	})
}

func (s *Store) UpdateAddress(ctx context.Context, address *models.Address) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND id != ?", address.UserID, address.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		result := tx.Model(&models.Address{}).
			Where("id = ? AND user_id = ?", address.ID, address.UserID).
			Updates(map[string]interface{}{
				"type":          address.Type,
				"full_name":     address.FullName,
				"address_line1": address.AddressLine1,
				"address_line2": address.AddressLine2,
				"city":          address.City,
				"state":         address.State,
				"zip_code":      address.ZipCode,
				"country":       address.Country,
				"is_default":    address.IsDefault,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *Store) DeleteAddress(ctx context.Context, addressID, userID string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&models.Address{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- orders ----

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *Store) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&items).Error
}

func (s *Store) ListOrders(ctx context.Context, userID string, page, limit int) ([]models.OrderSummary, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	var orders []models.OrderSummary
	err := s.db.WithContext(ctx).
		Table("orders").
		Select("orders.*, addresses.full_name, addresses.address_line1, addresses.city, addresses.state").
		Joins("LEFT JOIN addresses ON addresses.id = orders.address_id").
		Where("orders.user_id = ?", userID).
		Order("orders.order_date DESC").
		Offset((page - 1) * limit).Limit(limit).
		Scan(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) GetOrder(ctx context.Context, orderID, userID string) (*models.OrderSummary, error) {
	var order models.OrderSummary
	err := s.db.WithContext(ctx).
		Table("orders").
		Select("orders.*, addresses.full_name, addresses.address_line1, addresses.address_line2, addresses.city, addresses.state, addresses.zip_code").
		Joins("LEFT JOIN addresses ON addresses.id = orders.address_id").
		Where("orders.id = ? AND orders.user_id = ?", orderID, userID).
		Take(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *Store) ListOrderItems(ctx context.Context, orderID string) ([]models.OrderItemDetail, error) {
	var items []models.OrderItemDetail
	err := s.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.*, products.name, products.images").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
