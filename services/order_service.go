package services

import (
	"errors"
	"fmt"

	"restaurant/entity"
	"restaurant/pkg/metrics"
	"restaurant/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService owns order totals and the table status flips tied to them.
// Every write that touches a total runs in one transaction with the order
// row locked.
type OrderService struct {
	DB        *gorm.DB
	Orders    *repository.OrderRepository
	Tables    *repository.TableRepository
	Menu      *repository.MenuRepository
	Customers *repository.CustomerRepository
	Users     *repository.UserRepository
	Notifier  TableNotifier
}

func NewOrderService(db *gorm.DB, notifier TableNotifier) *OrderService {
	return &OrderService{
		DB:        db,
		Orders:    repository.NewOrderRepository(db),
		Tables:    repository.NewTableRepository(db),
		Menu:      repository.NewMenuRepository(db),
		Customers: repository.NewCustomerRepository(db),
		Users:     repository.NewUserRepository(db),
		Notifier:  notifier,
	}
}

type CreateOrderInput struct {
	TableID    uint
	UserID     uint
	CustomerID *uint
}

type OrderItemInput struct {
	MenuItemID uint
	Quantity   int
	Notes      string
}

// APIOrderInput is the POS payload. Quantity nil means one.
type APIOrderInput struct {
	TableID    uint
	CustomerID *uint
	UserID     *uint
	Items      []APIOrderItem
}

type APIOrderItem struct {
	MenuItemID uint
	Quantity   *int
	Notes      string
}

var activeOrderStatuses = []string{entity.OrderPending, entity.OrderPreparing, entity.OrderServed}

func (s *OrderService) List() ([]entity.Order, error) {
	return s.Orders.List()
}

func (s *OrderService) Detail(id uint) (*entity.Order, error) {
	o, err := s.Orders.FindDetail(id)
	if err != nil {
		return nil, lookup("order", err)
	}
	return o, nil
}

// ----- Create -----

// Create opens an empty order on a free table and marks the table occupied.
func (s *OrderService) Create(in CreateOrderInput) (*entity.Order, error) {
	var order *entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.claimTable(tx, in.TableID); err != nil {
			return err
		}
		if err := s.checkCustomer(tx, in.CustomerID); err != nil {
			return err
		}
		if _, err := s.Users.WithTx(tx).FindByID(in.UserID); err != nil {
			return choice(err, "user_id", "Unknown user.")
		}

		order = &entity.Order{
			Status:      entity.OrderPending,
			TotalAmount: decimal.Zero,
			TableID:     in.TableID,
			UserID:      in.UserID,
			CustomerID:  in.CustomerID,
		}
		if err := s.Orders.WithTx(tx).Create(order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return s.Tables.WithTx(tx).UpdateStatus(in.TableID, entity.TableOccupied)
	})
	if err != nil {
		return nil, err
	}

	metrics.OrderCreated("web")
	publish(s.Notifier, s.Tables, in.TableID)
	return order, nil
}

// CreateFromAPI opens an order with its items in one go. Unknown menu items
// are skipped, and so are items marked unavailable even though they exist;
// the order is created regardless.
func (s *OrderService) CreateFromAPI(in APIOrderInput) (*entity.Order, error) {
	if in.TableID == 0 {
		return nil, fieldError("table_id", "table_id is required")
	}
	if len(in.Items) == 0 {
		return nil, fieldError("items", "items are required")
	}
	for _, it := range in.Items {
		if it.Quantity != nil && *it.Quantity <= 0 {
			return nil, fieldError("quantity", "quantity must be a positive integer")
		}
	}
	if in.CustomerID != nil && *in.CustomerID == 0 {
		in.CustomerID = nil
	}

	var order *entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.claimTable(tx, in.TableID); err != nil {
			return err
		}
		if err := s.checkCustomer(tx, in.CustomerID); err != nil {
			return err
		}
		userID, err := s.resolveUser(tx, in.UserID)
		if err != nil {
			return err
		}

		orders := s.Orders.WithTx(tx)
		order = &entity.Order{
			Status:      entity.OrderPending,
			TotalAmount: decimal.Zero,
			TableID:     in.TableID,
			UserID:      userID,
			CustomerID:  in.CustomerID,
		}
		if err := orders.Create(order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		menu := s.Menu.WithTx(tx)
		total := decimal.Zero
		for _, it := range in.Items {
			if it.MenuItemID == 0 {
				continue
			}
			m, err := menu.FindByID(it.MenuItemID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if !m.Available {
				continue
			}

			qty := 1
			if it.Quantity != nil {
				qty = *it.Quantity
			}
			item := &entity.OrderItem{
				OrderID:    order.ID,
				MenuItemID: m.ID,
				Quantity:   qty,
				Price:      m.Price,
				Status:     entity.ItemPending,
				Notes:      it.Notes,
			}
			if err := orders.CreateItem(item); err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
			total = total.Add(item.LineTotal())
		}

		if err := orders.SetTotal(order.ID, total); err != nil {
			return err
		}
		order.TotalAmount = total
		return s.Tables.WithTx(tx).UpdateStatus(in.TableID, entity.TableOccupied)
	})
	if err != nil {
		return nil, err
	}

	metrics.OrderCreated("api")
	publish(s.Notifier, s.Tables, in.TableID)
	return order, nil
}

func (s *OrderService) claimTable(tx *gorm.DB, tableID uint) error {
	t, err := s.Tables.WithTx(tx).FindByID(tableID)
	if err != nil {
		return choice(err, "table_id", "Unknown table.")
	}
	busy, err := s.Orders.WithTx(tx).HasActiveOrder(tableID)
	if err != nil {
		return err
	}
	if busy || t.Status == entity.TableOccupied {
		return ErrTableOccupied
	}
	return nil
}

func (s *OrderService) checkCustomer(tx *gorm.DB, customerID *uint) error {
	if customerID == nil {
		return nil
	}
	if _, err := s.Customers.WithTx(tx).FindByID(*customerID); err != nil {
		return choice(err, "customer_id", "Unknown customer.")
	}
	return nil
}

// resolveUser falls back to the first account when the POS sends no user.
func (s *OrderService) resolveUser(tx *gorm.DB, userID *uint) (uint, error) {
	users := s.Users.WithTx(tx)
	if userID == nil || *userID == 0 {
		u, err := users.FirstUser()
		if err != nil {
			return 0, choice(err, "user_id", "No user exists to serve the order.")
		}
		return u.ID, nil
	}
	if _, err := users.FindByID(*userID); err != nil {
		return 0, choice(err, "user_id", "Unknown user.")
	}
	return *userID, nil
}

// choice turns a missing referenced row into a field error.
func choice(err error, field, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fieldError(field, msg)
	}
	return err
}

// ----- Items -----

func (s *OrderService) AddItem(orderID uint, in OrderItemInput) (*entity.OrderItem, error) {
	if in.Quantity < 1 {
		return nil, fieldError("quantity", "Number must be at least 1.")
	}

	var item *entity.OrderItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		orders := s.Orders.WithTx(tx)
		o, err := s.lockOpen(orders, orderID)
		if err != nil {
			return err
		}

		m, err := s.Menu.WithTx(tx).FindByID(in.MenuItemID)
		if err != nil {
			return choice(err, "menu_item_id", "Not a valid choice.")
		}
		if !m.Available {
			return fieldError("menu_item_id", "This item is not available.")
		}

		item = &entity.OrderItem{
			OrderID:    o.ID,
			MenuItemID: m.ID,
			Quantity:   in.Quantity,
			Price:      m.Price,
			Status:     entity.ItemPending,
			Notes:      in.Notes,
		}
		if err := orders.CreateItem(item); err != nil {
			return fmt.Errorf("create order item: %w", err)
		}
		return orders.SetTotal(o.ID, o.TotalAmount.Add(item.LineTotal()))
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *OrderService) RemoveItem(orderID, itemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		orders := s.Orders.WithTx(tx)
		o, err := s.lockOpen(orders, orderID)
		if err != nil {
			return err
		}
		item, err := orders.FindItem(orderID, itemID)
		if err != nil {
			return lookup("order item", err)
		}
		if err := orders.DeleteItem(item.ID); err != nil {
			return fmt.Errorf("delete order item: %w", err)
		}
		return orders.SetTotal(o.ID, o.TotalAmount.Sub(item.LineTotal()))
	})
}

// SetItemStatus records kitchen progress on one line.
func (s *OrderService) SetItemStatus(orderID, itemID uint, status string) error {
	if !entity.ValidItemStatus(status) {
		return fieldError("status", "Not a valid choice.")
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		orders := s.Orders.WithTx(tx)
		if _, err := s.lockOpen(orders, orderID); err != nil {
			return err
		}
		item, err := orders.FindItem(orderID, itemID)
		if err != nil {
			return lookup("order item", err)
		}
		return orders.UpdateItemStatus(item.ID, status)
	})
}

// Recalculate rebuilds the stored total from the order's lines.
func (s *OrderService) Recalculate(orderID uint) (decimal.Decimal, error) {
	total := decimal.Zero
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		orders := s.Orders.WithTx(tx)
		if _, err := orders.FindForUpdate(orderID); err != nil {
			return lookup("order", err)
		}
		items, err := orders.GetItems(orderID)
		if err != nil {
			return err
		}
		for _, it := range items {
			total = total.Add(it.LineTotal())
		}
		return orders.SetTotal(orderID, total)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (s *OrderService) lockOpen(orders *repository.OrderRepository, orderID uint) (*entity.Order, error) {
	o, err := orders.FindForUpdate(orderID)
	if err != nil {
		return nil, lookup("order", err)
	}
	if !o.Active() {
		return nil, ErrOrderClosed
	}
	return o, nil
}

// ----- Status -----

func (s *OrderService) Prepare(orderID uint) error {
	return s.transition(orderID, []string{entity.OrderPending}, entity.OrderPreparing)
}

func (s *OrderService) Serve(orderID uint) error {
	return s.transition(orderID, []string{entity.OrderPending, entity.OrderPreparing}, entity.OrderServed)
}

// Complete closes the tab and frees the table.
func (s *OrderService) Complete(orderID uint) error {
	return s.transition(orderID, activeOrderStatuses, entity.OrderCompleted)
}

// Cancel voids the order and frees the table.
func (s *OrderService) Cancel(orderID uint) error {
	return s.transition(orderID, activeOrderStatuses, entity.OrderCancelled)
}

func (s *OrderService) transition(orderID uint, from []string, to string) error {
	var tableID uint
	releases := to == entity.OrderCompleted || to == entity.OrderCancelled

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		orders := s.Orders.WithTx(tx)
		o, err := orders.FindForUpdate(orderID)
		if err != nil {
			return lookup("order", err)
		}
		n, err := orders.UpdateStatusGuard(orderID, from, to)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrInvalidTransition
		}
		tableID = o.TableID
		if releases {
			return s.Tables.WithTx(tx).UpdateStatus(o.TableID, entity.TableAvailable)
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.OrderTransitioned(to)
	if releases {
		publish(s.Notifier, s.Tables, tableID)
	}
	return nil
}
