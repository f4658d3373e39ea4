package repository

import (
	"time"

	"restaurant/entity"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	DB *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) WithTx(tx *gorm.DB) *CustomerRepository {
	return &CustomerRepository{DB: tx}
}

func (r *CustomerRepository) List() ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.DB.Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *CustomerRepository) FindByID(id uint) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CountByEmail ignores the customer being edited.
func (r *CustomerRepository) CountByEmail(email string, excludeID uint) (int64, error) {
	var count int64
	q := r.DB.Model(&entity.Customer{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *CustomerRepository) CountSince(t time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Customer{}).Where("created_at >= ?", t).Count(&count).Error
	return count, err
}

func (r *CustomerRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Customer{}).Count(&count).Error
	return count, err
}

func (r *CustomerRepository) Create(c *entity.Customer) error {
	return r.DB.Create(c).Error
}

func (r *CustomerRepository) Save(c *entity.Customer) error {
	return r.DB.Save(c).Error
}

// Delete detaches the customer's orders first; orders outlive customers.
func (r *CustomerRepository) Delete(id uint) error {
	if err := r.DB.Model(&entity.Order{}).
		Where("customer_id = ?", id).
		Update("customer_id", nil).Error; err != nil {
		return err
	}
	return r.DB.Unscoped().Delete(&entity.Customer{}, id).Error
}
