package schema

import (
	"time"

	"github.com/feral-file/ff-auction-engine/internal/domain"
)

// Collection represents the collections table - the admin allow-list of NFT contracts
type Collection struct {
	Network   domain.Network          `gorm:"column:network;primaryKey;type:text"`
	ID        string                  `gorm:"column:id;primaryKey;type:text"`
	Name      string                  `gorm:"column:name;not null;type:text"`
	Status    domain.CollectionStatus `gorm:"column:status;not null;type:text"`
	CreatedAt time.Time               `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt time.Time               `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}
