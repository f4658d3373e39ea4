package repository

import (
	"restaurant/entity"

	"gorm.io/gorm"
)

// UserRepository talks to the users table only.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{DB: tx}
}

func (r *UserRepository) FindByUsername(username string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FirstUser is the fallback server of record for POS orders.
func (r *UserRepository) FirstUser() (*entity.User, error) {
	var user entity.User
	if err := r.DB.Order("id ASC").First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountByUsername(username string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("username = ?", username).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *UserRepository) List() ([]entity.User, error) {
	var users []entity.User
	err := r.DB.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepository) Create(user *entity.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) Update(userID uint, updates map[string]any) (int64, error) {
	res := r.DB.Model(&entity.User{}).Where("id = ?", userID).Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *UserRepository) Delete(id uint) (int64, error) {
	res := r.DB.Unscoped().Delete(&entity.User{}, id)
	return res.RowsAffected, res.Error
}
