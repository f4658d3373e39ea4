package services

import (
	"fmt"

	"restaurant/entity"
	"restaurant/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TableService struct {
	Repo         *repository.TableRepository
	Orders       *repository.OrderRepository
	Reservations *repository.ReservationRepository
	Notifier     TableNotifier
}

func NewTableService(db *gorm.DB, notifier TableNotifier) *TableService {
	return &TableService{
		Repo:         repository.NewTableRepository(db),
		Orders:       repository.NewOrderRepository(db),
		Reservations: repository.NewReservationRepository(db),
		Notifier:     notifier,
	}
}

type TableInput struct {
	TableNumber int
	Capacity    int
	Status      string
}

func (s *TableService) List() ([]entity.Table, error) {
	return s.Repo.List()
}

// ListSeatable returns the tables a new order may be opened on.
func (s *TableService) ListSeatable() ([]entity.Table, error) {
	return s.Repo.ListSeatable()
}

func (s *TableService) Get(id uint) (*entity.Table, error) {
	t, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, lookup("table", err)
	}
	return t, nil
}

func (s *TableService) Create(in TableInput) (*entity.Table, error) {
	if err := s.checkNumber(in.TableNumber, 0); err != nil {
		return nil, err
	}
	t := &entity.Table{TableNumber: in.TableNumber, Capacity: in.Capacity, Status: in.Status}
	if t.Status == "" {
		t.Status = entity.TableAvailable
	}
	if err := s.checkStatus(0, t.Status); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(t); err != nil {
		return nil, err
	}
	publish(s.Notifier, s.Repo, t.ID)
	return t, nil
}

func (s *TableService) Update(id uint, in TableInput) (*entity.Table, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkNumber(in.TableNumber, t.ID); err != nil {
		return nil, err
	}
	status := t.Status
	if in.Status != "" {
		status = in.Status
	}
	if err := s.checkStatus(t.ID, status); err != nil {
		return nil, err
	}
	if err := s.checkCapacity(t.ID, in.Capacity); err != nil {
		return nil, err
	}

	t.TableNumber = in.TableNumber
	t.Capacity = in.Capacity
	t.Status = status
	if err := s.Repo.Save(t); err != nil {
		return nil, err
	}
	publish(s.Notifier, s.Repo, t.ID)
	return t, nil
}

func (s *TableService) checkNumber(number int, excludeID uint) error {
	count, err := s.Repo.CountByNumber(number, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fieldError("table_number", "Table number already exists. Please choose a different one.")
	}
	return nil
}

// checkStatus keeps "occupied" in step with the order flow: a table with an
// open tab stays occupied, and only an order can make it so.
func (s *TableService) checkStatus(tableID uint, status string) error {
	busy, err := s.Orders.HasActiveOrder(tableID)
	if err != nil {
		return err
	}
	switch {
	case busy && status != entity.TableOccupied:
		return fieldError("status", "This table has an active order and must stay occupied.")
	case !busy && status == entity.TableOccupied:
		return fieldError("status", "Only an active order can mark a table occupied.")
	}
	return nil
}

// checkCapacity refuses to shrink a table below its open bookings.
func (s *TableService) checkCapacity(tableID uint, capacity int) error {
	largest, err := s.Reservations.MaxOpenPartySize(tableID)
	if err != nil {
		return err
	}
	if capacity < largest {
		return fieldError("capacity", fmt.Sprintf("An open reservation on this table needs %d seats.", largest))
	}
	return nil
}

// publish reloads the committed table and hands it to the notifier.
func publish(n TableNotifier, tables *repository.TableRepository, id uint) {
	if n == nil {
		return
	}
	t, err := tables.FindByID(id)
	if err != nil {
		logrus.WithError(err).WithField("table_id", id).Warn("table changed but could not be reloaded")
		return
	}
	n.TableChanged(*t)
}
