// Package clientrepo persists client aggregates with GORM.
package clientrepo

import (
	"time"

	"repairshop/internal/core/domain/model/client"
	"repairshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ClientDTO is the row of the clients table.
type ClientDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:200;not null"`
	Phone     string    `gorm:"size:20;not null"`
	Email     *string   `gorm:"size:255"`
	Notes     *string
	CreatedAt time.Time `gorm:"not null"`
}

func (ClientDTO) TableName() string {
	return "clients"
}

func fromDomain(c *client.Client) ClientDTO {
	return ClientDTO{
		ID:        c.ID().Bytes(),
		Name:      c.Name(),
		Phone:     c.Phone(),
		Email:     nullable(c.Email()),
		Notes:     nullable(c.Notes()),
		CreatedAt: c.CreatedAt(),
	}
}

func toDomain(dto ClientDTO) (*client.Client, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return client.RestoreClient(id, dto.Name, dto.Phone, deref(dto.Email), deref(dto.Notes), dto.CreatedAt)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
