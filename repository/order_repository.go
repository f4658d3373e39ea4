package repository

import (
	"time"

	"restaurant/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: tx}
}

// ---------------- Orders ----------------

func (r *OrderRepository) Create(o *entity.Order) error {
	return r.DB.Create(o).Error
}

func (r *OrderRepository) List() ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.
		Preload("Table").
		Preload("User").
		Preload("Customer").
		Order("id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) Recent(limit int) ([]entity.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	var orders []entity.Order
	err := r.DB.
		Preload("Table").
		Preload("Customer").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) FindByID(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// FindForUpdate loads the order row locked for the rest of the transaction.
func (r *OrderRepository) FindForUpdate(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := forUpdate(r.DB).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// FindDetail loads everything the order page shows.
func (r *OrderRepository) FindDetail(id uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.
		Preload("Table").
		Preload("User").
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.MenuItem").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatusGuard moves the order to toStatus only while it is in one of
// fromStatuses. Zero rows affected means the order was not in a legal state.
func (r *OrderRepository) UpdateStatusGuard(orderID uint, fromStatuses []string, toStatus string) (int64, error) {
	res := r.DB.Model(&entity.Order{}).
		Where("id = ? AND status IN ?", orderID, fromStatuses).
		Update("status", toStatus)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) SetTotal(orderID uint, total decimal.Decimal) error {
	return r.DB.Model(&entity.Order{}).Where("id = ?", orderID).Update("total_amount", total).Error
}

// HasActiveOrder reports whether the table carries an open tab.
func (r *OrderRepository) HasActiveOrder(tableID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Order{}).
		Where("table_id = ? AND status NOT IN ?", tableID, entity.TerminalOrderStatuses).
		Count(&count).Error
	return count > 0, err
}

func (r *OrderRepository) Count(statuses ...string) (int64, error) {
	var count int64
	q := r.DB.Model(&entity.Order{})
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Count(&count).Error
	return count, err
}

// Revenue sums completed order totals created in [from, to).
func (r *OrderRepository) Revenue(from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.DB.Model(&entity.Order{}).
		Select("SUM(total_amount)").
		Where("status = ? AND created_at >= ? AND created_at < ?", entity.OrderCompleted, from, to).
		Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal.Round(2), nil
}

// ---------------- Order Items ----------------

func (r *OrderRepository) CreateItem(item *entity.OrderItem) error {
	return r.DB.Create(item).Error
}

func (r *OrderRepository) FindItem(orderID, itemID uint) (*entity.OrderItem, error) {
	var item entity.OrderItem
	if err := r.DB.Where("id = ? AND order_id = ?", itemID, orderID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *OrderRepository) GetItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *OrderRepository) DeleteItem(itemID uint) error {
	return r.DB.Unscoped().Delete(&entity.OrderItem{}, itemID).Error
}

func (r *OrderRepository) UpdateItemStatus(itemID uint, status string) error {
	return r.DB.Model(&entity.OrderItem{}).Where("id = ?", itemID).Update("status", status).Error
}
