package services

import (
	"testing"

	"restaurant/entity"
	"restaurant/pkg/testdb"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerService_EmailUniqueness(t *testing.T) {
	db := testdb.Open(t)
	svc := NewCustomerService(db)

	first, err := svc.Create(CustomerInput{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(CustomerInput{Name: "Other Ann", Email: "ann@example.com"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")

	// no email is never a duplicate
	a, err := svc.Create(CustomerInput{Name: "Walk-in 1"})
	require.NoError(t, err)
	assert.Nil(t, a.Email)
	_, err = svc.Create(CustomerInput{Name: "Walk-in 2"})
	require.NoError(t, err)

	// keeping your own email on edit is fine
	_, err = svc.Update(first.ID, CustomerInput{Name: "Ann B", Email: "ann@example.com"})
	require.NoError(t, err)
}

func TestCustomerService_DeleteKeepsOrders(t *testing.T) {
	db := testdb.Open(t)
	svc := NewCustomerService(db)
	user := seedUser(t, db, "alice")
	table := seedTable(t, db, 1, 2)

	c, err := svc.Create(CustomerInput{Name: "Ann"})
	require.NoError(t, err)
	order := &entity.Order{TableID: table.ID, UserID: user.ID, CustomerID: &c.ID, Status: entity.OrderCompleted}
	require.NoError(t, db.Create(order).Error)

	require.NoError(t, svc.Delete(c.ID))

	var reloaded entity.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Nil(t, reloaded.CustomerID)
	_, err = svc.Get(c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTableService_UniqueNumber(t *testing.T) {
	db := testdb.Open(t)
	rec := &tableRecorder{}
	svc := NewTableService(db, rec)

	t1, err := svc.Create(TableInput{TableNumber: 1, Capacity: 4})
	require.NoError(t, err)
	assert.Equal(t, entity.TableAvailable, t1.Status)
	assert.Equal(t, 1, rec.last().TableNumber)

	_, err = svc.Create(TableInput{TableNumber: 1, Capacity: 2})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Table number already exists. Please choose a different one.", verr.Fields["table_number"])

	t2, err := svc.Create(TableInput{TableNumber: 2, Capacity: 2})
	require.NoError(t, err)
	_, err = svc.Update(t2.ID, TableInput{TableNumber: 1, Capacity: 2, Status: entity.TableAvailable})
	require.ErrorAs(t, err, &verr)

	updated, err := svc.Update(t2.ID, TableInput{TableNumber: 2, Capacity: 6, Status: entity.TableReserved})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Capacity)
	assert.Equal(t, entity.TableReserved, rec.last().Status)
}

func TestTableService_StatusFollowsOrders(t *testing.T) {
	db := testdb.Open(t)
	tables := NewTableService(db, nil)
	orders := NewOrderService(db, nil)
	user := seedUser(t, db, "alice")
	busy := seedTable(t, db, 7, 4)
	free := seedTable(t, db, 8, 4)

	order, err := orders.Create(CreateOrderInput{TableID: busy.ID, UserID: user.ID})
	require.NoError(t, err)

	var verr *ValidationError
	for _, status := range []string{entity.TableAvailable, entity.TableReserved} {
		_, err = tables.Update(busy.ID, TableInput{TableNumber: 7, Capacity: 4, Status: status})
		require.ErrorAs(t, err, &verr, status)
		assert.Contains(t, verr.Fields, "status")
	}
	assert.Equal(t, entity.TableOccupied, tableStatus(t, db, busy.ID))

	// other edits on a busy table still go through
	updated, err := tables.Update(busy.ID, TableInput{TableNumber: 7, Capacity: 6, Status: entity.TableOccupied})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Capacity)
	_, err = tables.Update(busy.ID, TableInput{TableNumber: 7, Capacity: 6})
	require.NoError(t, err)

	// only an order makes a table occupied
	_, err = tables.Update(free.ID, TableInput{TableNumber: 8, Capacity: 4, Status: entity.TableOccupied})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, entity.TableAvailable, tableStatus(t, db, free.ID))
	_, err = tables.Create(TableInput{TableNumber: 9, Capacity: 2, Status: entity.TableOccupied})
	require.ErrorAs(t, err, &verr)

	require.NoError(t, orders.Complete(order.ID))
	_, err = tables.Update(busy.ID, TableInput{TableNumber: 7, Capacity: 6, Status: entity.TableReserved})
	require.NoError(t, err)
}

func TestTableService_CapacityCoversBookings(t *testing.T) {
	db := testdb.Open(t)
	tables := NewTableService(db, nil)
	reservations := newReservationService(db, nil)
	table := seedTable(t, db, 1, 6)

	res, err := reservations.Create(booking(table.ID, 5))
	require.NoError(t, err)

	_, err = tables.Update(table.ID, TableInput{TableNumber: 1, Capacity: 4, Status: entity.TableReserved})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "An open reservation on this table needs 5 seats.", verr.Fields["capacity"])

	_, err = tables.Update(table.ID, TableInput{TableNumber: 1, Capacity: 5, Status: entity.TableReserved})
	require.NoError(t, err)

	// cancelled bookings no longer hold seats
	require.NoError(t, reservations.SetStatus(res.ID, entity.ReservationCancelled))
	updated, err := tables.Update(table.ID, TableInput{TableNumber: 1, Capacity: 2, Status: entity.TableAvailable})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Capacity)
}

func TestMenuService_DeleteInUse(t *testing.T) {
	db := testdb.Open(t)
	menu := NewMenuService(db)
	orders := NewOrderService(db, nil)
	user := seedUser(t, db, "alice")
	table := seedTable(t, db, 1, 2)

	burger, err := menu.Create(MenuItemInput{Name: "Burger", Price: decimal.RequireFromString("12.50"), Category: entity.CategoryMain, Available: true})
	require.NoError(t, err)
	salad, err := menu.Create(MenuItemInput{Name: "Salad", Price: decimal.RequireFromString("7"), Category: entity.CategoryAppetizer})
	require.NoError(t, err)
	assert.False(t, salad.Available)

	order, err := orders.Create(CreateOrderInput{TableID: table.ID, UserID: user.ID})
	require.NoError(t, err)
	_, err = orders.AddItem(order.ID, OrderItemInput{MenuItemID: burger.ID, Quantity: 1})
	require.NoError(t, err)

	assert.ErrorIs(t, menu.Delete(burger.ID), ErrInUse)
	require.NoError(t, menu.Delete(salad.ID))
	assert.ErrorIs(t, menu.Delete(salad.ID), ErrNotFound)

	available, err := menu.ListAvailable()
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Burger", available[0].Name)

	_, err = menu.Create(MenuItemInput{Name: "Bad", Price: decimal.NewFromInt(-1), Category: entity.CategoryMain})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestInventoryService_LowStock(t *testing.T) {
	db := testdb.Open(t)
	svc := NewInventoryService(db)

	flour, err := svc.Create(InventoryInput{
		Name:         "Flour",
		Quantity:     decimal.RequireFromString("2.5"),
		Unit:         "kg",
		ReorderLevel: decimal.RequireFromString("5"),
		CostPerUnit:  decimal.RequireFromString("1.20"),
	})
	require.NoError(t, err)
	assert.True(t, flour.NeedsReorder())

	_, err = svc.Create(InventoryInput{
		Name:         "Milk",
		Quantity:     decimal.NewFromInt(20),
		Unit:         "l",
		ReorderLevel: decimal.NewFromInt(4),
		CostPerUnit:  decimal.RequireFromString("0.90"),
	})
	require.NoError(t, err)

	low, err := svc.List(true)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Flour", low[0].Name)

	all, err := svc.List(false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.Update(flour.ID, InventoryInput{Name: "Flour", Quantity: decimal.NewFromInt(-1), Unit: "kg"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "quantity")

	require.NoError(t, svc.Delete(flour.ID))
	assert.ErrorIs(t, svc.Delete(flour.ID), ErrNotFound)
}
