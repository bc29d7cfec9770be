package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the orders schema. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&pedidoRecord{})
}

// Order schema mirrors the orders Postgres adapter.
type pedidoRecord struct {
	ID           string         `gorm:"primaryKey;column:id;type:varchar(32)"`
	Details      map[string]any `gorm:"column:detalhes;serializer:json"`
	Plan         string         `gorm:"column:plano;type:varchar(32)"`
	Price        int            `gorm:"column:preco"`
	Status       string         `gorm:"column:status;type:varchar(32);index"`
	DeliveryDate string         `gorm:"column:prazo_entrega;type:varchar(10)"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime;index"`
}

func (pedidoRecord) TableName() string { return "pedidos" }
