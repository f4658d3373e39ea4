package repository

import (
	"restaurant/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) WithTx(tx *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: tx}
}

func (r *MenuRepository) List() ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.Order("category ASC, name ASC").Find(&items).Error
	return items, err
}

func (r *MenuRepository) ListAvailable() ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.Where("available = ?", true).Order("category ASC, name ASC").Find(&items).Error
	return items, err
}

func (r *MenuRepository) FindByID(id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := r.DB.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) Create(item *entity.MenuItem) error {
	return r.DB.Create(item).Error
}

func (r *MenuRepository) Save(item *entity.MenuItem) error {
	return r.DB.Save(item).Error
}

func (r *MenuRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&entity.MenuItem{}, id).Error
}

// CountOrderItems tells whether any order line still points at the item.
func (r *MenuRepository) CountOrderItems(menuItemID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.OrderItem{}).Where("menu_item_id = ?", menuItemID).Count(&count).Error
	return count, err
}

type PopularItem struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	OrderCount int64           `json:"orderCount"`
}

// Popular ranks menu items by how many order lines reference them.
func (r *MenuRepository) Popular(limit int) ([]PopularItem, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []PopularItem
	err := r.DB.Table("order_items AS oi").
		Select("m.id, m.name, m.category, m.price, COUNT(oi.id) AS order_count").
		Joins("JOIN menu_items m ON m.id = oi.menu_item_id").
		Where("oi.deleted_at IS NULL").
		Group("m.id, m.name, m.category, m.price").
		Order("order_count DESC, m.id ASC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
