package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/kubev2v/patchcord-planner/internal/store/model"
	"gorm.io/gorm"
)

type Rack interface {
	List(ctx context.Context) (model.RackList, error)
	Get(ctx context.Context, code string) (*model.Rack, error)
	Replace(ctx context.Context, racks model.RackList) error
	Count(ctx context.Context) (int64, error)
}

type RackStore struct {
	db *gorm.DB
}

// Make sure we conform to Rack interface
var _ Rack = (*RackStore)(nil)

func NewRackStore(db *gorm.DB) Rack {
	return &RackStore{db: db}
}

func (r *RackStore) List(ctx context.Context) (model.RackList, error) {
	var racks model.RackList
	if err := r.getDB(ctx).Order("rack_index").Find(&racks).Error; err != nil {
		return nil, err
	}
	return racks, nil
}

func (r *RackStore) Get(ctx context.Context, code string) (*model.Rack, error) {
	rack := model.Rack{}
	result := r.getDB(ctx).Where("code = ?", code).First(&rack)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &rack, nil
}

// Replace swaps the whole plan for racks in one transaction. It joins the
// transaction carried by ctx when there is one.
func (r *RackStore) Replace(ctx context.Context, racks model.RackList) error {
	apply := func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Rack{}).Error; err != nil {
			return fmt.Errorf("failed to clear racks: %w", err)
		}
		if len(racks) == 0 {
			return nil
		}
		if err := tx.Create(&racks).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateKey
			}
			return fmt.Errorf("failed to insert racks: %w", err)
		}
		return nil
	}

	if tx := FromContext(ctx); tx != nil {
		return apply(tx)
	}
	return r.db.WithContext(ctx).Transaction(apply)
}

func (r *RackStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.getDB(ctx).Model(&model.Rack{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RackStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}
