package repository

import (
	"restaurant/entity"

	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) WithTx(tx *gorm.DB) *TableRepository {
	return &TableRepository{DB: tx}
}

func (r *TableRepository) List() ([]entity.Table, error) {
	var tables []entity.Table
	err := r.DB.Order("table_number ASC").Find(&tables).Error
	return tables, err
}

// ListSeatable returns tables that can take a new order.
func (r *TableRepository) ListSeatable() ([]entity.Table, error) {
	var tables []entity.Table
	err := r.DB.Where("status IN ?", []string{entity.TableAvailable, entity.TableReserved}).
		Order("table_number ASC").Find(&tables).Error
	return tables, err
}

func (r *TableRepository) FindByID(id uint) (*entity.Table, error) {
	var t entity.Table
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) CountByNumber(number int, excludeID uint) (int64, error) {
	var count int64
	q := r.DB.Model(&entity.Table{}).Where("table_number = ?", number)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *TableRepository) CountByStatus(status string) (int64, error) {
	var count int64
	q := r.DB.Model(&entity.Table{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *TableRepository) Create(t *entity.Table) error {
	return r.DB.Create(t).Error
}

func (r *TableRepository) Save(t *entity.Table) error {
	return r.DB.Save(t).Error
}

func (r *TableRepository) UpdateStatus(id uint, status string) error {
	return r.DB.Model(&entity.Table{}).Where("id = ?", id).Update("status", status).Error
}
