package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pampers23/admin-shoe/internal/model"
	"github.com/pampers23/admin-shoe/prometheus"
	"gorm.io/gorm"
)

// GormStore implements Store on top of gorm
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by db
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) CountProducts(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation("count")(time.Now())

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}

func (s *GormStore) CountCustomers(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation("count")(time.Now())

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Customer{}).Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}

func (s *GormStore) OrderTotals(ctx context.Context) ([]model.OrderTotal, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())

	var totals []model.OrderTotal
	err := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("total_amount", "status").
		Find(&totals).Error
	if err != nil {
		return nil, translate(err)
	}
	for i := range totals {
		if err := DecodeOrderTotal(&totals[i]); err != nil {
			return nil, err
		}
	}
	return totals, nil
}

func (s *GormStore) ProductCategories(ctx context.Context) ([]string, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())

	var raw []*string
	if err := s.db.WithContext(ctx).Model(&model.Product{}).Pluck("category", &raw).Error; err != nil {
		return nil, translate(err)
	}

	categories := make([]string, len(raw))
	for i, c := range raw {
		if c != nil {
			categories[i] = *c
		}
	}
	return categories, nil
}

func (s *GormStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())

	var products []model.Product
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	if err := decodeProducts(products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *GormStore) RecentProducts(ctx context.Context, limit int) ([]model.Product, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())

	var products []model.Product
	err := s.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, translate(err)
	}
	if err := decodeProducts(products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *GormStore) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())

	var product model.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translate(err)
	}
	if err := DecodeProduct(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *GormStore) ProductsByIDs(ctx context.Context, ids []uint) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	defer prometheus.TrackDBOperation("select")(time.Now())

	var products []model.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	if err := decodeProducts(products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *GormStore) CreateProduct(ctx context.Context, product *model.Product) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return translate(s.db.WithContext(ctx).Create(product).Error)
}

func (s *GormStore) UpdateProduct(ctx context.Context, product *model.Product) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	product.UpdatedAt = time.Now()
	result := s.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", product.ID).
		Select("name", "sku", "description", "category", "brand", "price", "stock", "image_url", "updated_at").
		Updates(product)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return translate(s.db.WithContext(ctx).First(product, product.ID).Error)
}

func (s *GormStore) DeleteProduct(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := s.db.WithContext(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func (s *GormStore) ListOrders(ctx context.Context) ([]model.Order, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())

	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("OrderItems", orderItemsByID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, translate(err)
	}
	if err := decodeOrders(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *GormStore) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	defer prometheus.TrackDBOperation("select")(time.Now())

	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("OrderItems", orderItemsByID).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, translate(err)
	}
	if err := DecodeOrder(&order); err != nil {
		return nil, err
	}
	return &order, nil
}
