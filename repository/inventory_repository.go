package repository

import (
	"restaurant/entity"

	"gorm.io/gorm"
)

type InventoryRepository struct {
	DB *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{DB: db}
}

func (r *InventoryRepository) List() ([]entity.Inventory, error) {
	var items []entity.Inventory
	err := r.DB.Order("name ASC").Find(&items).Error
	return items, err
}

// ListLow returns stock at or below its reorder level.
func (r *InventoryRepository) ListLow() ([]entity.Inventory, error) {
	var items []entity.Inventory
	err := r.DB.Where("quantity <= reorder_level").Order("name ASC").Find(&items).Error
	return items, err
}

func (r *InventoryRepository) FindByID(id uint) (*entity.Inventory, error) {
	var item entity.Inventory
	if err := r.DB.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) Create(item *entity.Inventory) error {
	return r.DB.Create(item).Error
}

func (r *InventoryRepository) Save(item *entity.Inventory) error {
	return r.DB.Save(item).Error
}

func (r *InventoryRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&entity.Inventory{}, id).Error
}
