package services

import (
	"time"

	"restaurant/entity"
	"restaurant/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardService struct {
	Orders    *repository.OrderRepository
	Tables    *repository.TableRepository
	Customers *repository.CustomerRepository
	Menu      *repository.MenuRepository
	Now       func() time.Time
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		Orders:    repository.NewOrderRepository(db),
		Tables:    repository.NewTableRepository(db),
		Customers: repository.NewCustomerRepository(db),
		Menu:      repository.NewMenuRepository(db),
		Now:       time.Now,
	}
}

type DashboardStats struct {
	TotalOrders     int64
	ActiveOrders    int64
	TotalCustomers  int64
	NewCustomers    int64 // last 7 days
	TotalTables     int64
	AvailableTables int64
	OccupiedTables  int64

	TodayRevenue     decimal.Decimal
	YesterdayRevenue decimal.Decimal
	// percent, one decimal place
	RevenueChange decimal.Decimal

	RecentOrders []entity.Order
	PopularItems []repository.PopularItem
}

func (s *DashboardService) Stats() (*DashboardStats, error) {
	var (
		st  DashboardStats
		err error
	)

	if st.TotalOrders, err = s.Orders.Count(); err != nil {
		return nil, err
	}
	if st.ActiveOrders, err = s.Orders.Count(entity.OrderPending, entity.OrderPreparing); err != nil {
		return nil, err
	}
	if st.TotalCustomers, err = s.Customers.Count(); err != nil {
		return nil, err
	}
	if st.TotalTables, err = s.Tables.CountByStatus(""); err != nil {
		return nil, err
	}
	if st.AvailableTables, err = s.Tables.CountByStatus(entity.TableAvailable); err != nil {
		return nil, err
	}
	if st.OccupiedTables, err = s.Tables.CountByStatus(entity.TableOccupied); err != nil {
		return nil, err
	}

	now := s.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	if st.NewCustomers, err = s.Customers.CountSince(now.AddDate(0, 0, -7)); err != nil {
		return nil, err
	}
	if st.TodayRevenue, err = s.Orders.Revenue(today, tomorrow); err != nil {
		return nil, err
	}
	if st.YesterdayRevenue, err = s.Orders.Revenue(yesterday, today); err != nil {
		return nil, err
	}
	st.RevenueChange = revenueChange(st.TodayRevenue, st.YesterdayRevenue)

	if st.RecentOrders, err = s.Orders.Recent(10); err != nil {
		return nil, err
	}
	if st.PopularItems, err = s.Menu.Popular(5); err != nil {
		return nil, err
	}
	return &st, nil
}

func revenueChange(today, yesterday decimal.Decimal) decimal.Decimal {
	if yesterday.IsZero() {
		if today.IsPositive() {
			return decimal.NewFromInt(100)
		}
		return decimal.Zero
	}
	return today.Sub(yesterday).Div(yesterday).Mul(decimal.NewFromInt(100)).Round(1)
}
