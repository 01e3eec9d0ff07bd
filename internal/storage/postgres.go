package storage

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cardano2vn/group-signup/models"
)

// PostgresStore keeps registrations in a relational table for
// deployments where a spreadsheet is no longer acceptable. The
// semantics stay append-only: no update or delete path exists.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Init(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.Registration{}); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, r models.Registration) error {
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return fmt.Errorf("postgres: insert registration: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Registration, error) {
	students := make([]models.Registration, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("postgres: list registrations: %w", err)
	}
	return students, nil
}
