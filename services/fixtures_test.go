package services

import (
	"sync"
	"testing"

	"restaurant/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// tableRecorder collects the table updates a service publishes.
type tableRecorder struct {
	mu     sync.Mutex
	events []entity.Table
}

func (r *tableRecorder) TableChanged(t entity.Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, t)
}

func (r *tableRecorder) last() entity.Table {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return entity.Table{}
	}
	return r.events[len(r.events)-1]
}

func seedUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()
	u := &entity.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         entity.RoleStaff,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedTable(t *testing.T, db *gorm.DB, number, capacity int) *entity.Table {
	t.Helper()
	tbl := &entity.Table{TableNumber: number, Capacity: capacity, Status: entity.TableAvailable}
	require.NoError(t, db.Create(tbl).Error)
	return tbl
}

func seedMenuItem(t *testing.T, db *gorm.DB, name, price string, available bool) *entity.MenuItem {
	t.Helper()
	m := &entity.MenuItem{
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Category:  entity.CategoryMain,
		Available: available,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func tableStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var tbl entity.Table
	require.NoError(t, db.First(&tbl, id).Error)
	return tbl.Status
}

func orderTotal(t *testing.T, db *gorm.DB, id uint) decimal.Decimal {
	t.Helper()
	var o entity.Order
	require.NoError(t, db.First(&o, id).Error)
	return o.TotalAmount
}

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int    { return &v }
