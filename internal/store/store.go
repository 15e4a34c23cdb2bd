package store

import (
	"context"

	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Rack() Rack
	Close() error
}

type DataStore struct {
	db   *gorm.DB
	rack Rack
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:   db,
		rack: NewRackStore(db),
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Rack() Rack {
	return s.rack
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
