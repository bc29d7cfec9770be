package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/devqueiroz/landing-orders/internal/domains/orders/domain"
	"github.com/devqueiroz/landing-orders/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

// orderRecord maps the order aggregate to a relational table. Details is an
// opaque JSON blob; the store owns the creation timestamp.
type orderRecord struct {
	ID           string         `gorm:"primaryKey;column:id;type:varchar(32)"`
	Details      map[string]any `gorm:"column:detalhes;serializer:json"`
	Plan         string         `gorm:"column:plano;type:varchar(32)"`
	Price        int            `gorm:"column:preco"`
	Status       string         `gorm:"column:status;type:varchar(32);index"`
	DeliveryDate string         `gorm:"column:prazo_entrega;type:varchar(10)"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime;index"`
}

func (orderRecord) TableName() string { return "pedidos" }

// Save inserts a new order and rereads it so store-assigned fields are returned.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all orders by creation time ascending.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.list(ctx, nil, "created_at ASC")
}

// ListByStatus returns orders with the given status by creation time descending.
func (r *Repository) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error) {
	return r.list(ctx, map[string]any{"status": string(status)}, "created_at DESC")
}

func (r *Repository) list(ctx context.Context, where map[string]any, order string) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	query := r.db.WithContext(ctx).Order(order)
	if len(where) > 0 {
		query = query.Where(where)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// Update overwrites details, price, status, and delivery date of an existing
// order. Plan and created_at stay untouched.
func (r *Repository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	result := r.db.WithContext(ctx).Model(&orderRecord{}).Where("id = ?", order.ID).
		Select("detalhes", "preco", "status", "prazo_entrega").
		Updates(record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, order.ID)
}

// Delete removes an order by identifier. Absent rows are not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&orderRecord{}, "id = ?", id).Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:           order.ID,
		Details:      map[string]any(order.Details),
		Plan:         string(order.Plan),
		Price:        order.Price,
		Status:       string(order.Status),
		DeliveryDate: order.DeliveryDate,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:           r.ID,
		Details:      domain.Details(r.Details),
		Plan:         domain.Plan(r.Plan),
		Price:        r.Price,
		Status:       domain.Status(r.Status),
		DeliveryDate: r.DeliveryDate,
		CreatedAt:    r.CreatedAt,
	}
}
