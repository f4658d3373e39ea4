package services

import (
	"fmt"
	"strings"
	"time"

	"restaurant/entity"
	"restaurant/repository"

	"gorm.io/gorm"
)

// ReservationService books tables and keeps their reserved flag in line
// with the open bookings.
type ReservationService struct {
	DB       *gorm.DB
	Repo     *repository.ReservationRepository
	Tables   *repository.TableRepository
	Notifier TableNotifier
	Now      func() time.Time
}

func NewReservationService(db *gorm.DB, notifier TableNotifier) *ReservationService {
	return &ReservationService{
		DB:       db,
		Repo:     repository.NewReservationRepository(db),
		Tables:   repository.NewTableRepository(db),
		Notifier: notifier,
		Now:      time.Now,
	}
}

type ReservationInput struct {
	TableID       uint
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	PartySize     int
	ReservedAt    time.Time
	Status        string
	Notes         string
}

func (s *ReservationService) List() ([]entity.Reservation, error) {
	return s.Repo.List()
}

func (s *ReservationService) Get(id uint) (*entity.Reservation, error) {
	r, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, lookup("reservation", err)
	}
	return r, nil
}

func (s *ReservationService) Create(in ReservationInput) (*entity.Reservation, error) {
	if in.Status == "" {
		in.Status = entity.ReservationConfirmed
	}
	if err := s.checkStatus(in.Status); err != nil {
		return nil, err
	}
	if in.ReservedAt.Before(s.Now()) {
		return nil, fieldError("reservation_date", "Reservation date and time must be in the future.")
	}

	res := &entity.Reservation{}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.checkTable(tx, in.TableID, in.PartySize); err != nil {
			return err
		}
		fill(res, in)
		if err := s.Repo.WithTx(tx).Create(res); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		return s.syncTable(tx, res.TableID)
	})
	if err != nil {
		return nil, err
	}
	publish(s.Notifier, s.Tables, res.TableID)
	return res, nil
}

// Update moves or edits a booking. A past time is only rejected when it changed.
func (s *ReservationService) Update(id uint, in ReservationInput) (*entity.Reservation, error) {
	res, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = res.Status
	}
	if err := s.checkStatus(in.Status); err != nil {
		return nil, err
	}
	if !in.ReservedAt.Equal(res.ReservedAt) && in.ReservedAt.Before(s.Now()) {
		return nil, fieldError("reservation_date", "Reservation date and time must be in the future.")
	}

	oldTable := res.TableID
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.checkTable(tx, in.TableID, in.PartySize); err != nil {
			return err
		}
		fill(res, in)
		if err := s.Repo.WithTx(tx).Save(res); err != nil {
			return fmt.Errorf("save reservation %d: %w", id, err)
		}
		if oldTable != res.TableID {
			if err := s.syncTable(tx, oldTable); err != nil {
				return err
			}
		}
		return s.syncTable(tx, res.TableID)
	})
	if err != nil {
		return nil, err
	}

	if oldTable != res.TableID {
		publish(s.Notifier, s.Tables, oldTable)
	}
	publish(s.Notifier, s.Tables, res.TableID)
	return res, nil
}

// SetStatus seats, completes or cancels a booking.
func (s *ReservationService) SetStatus(id uint, status string) error {
	if err := s.checkStatus(status); err != nil {
		return err
	}
	res, err := s.Get(id)
	if err != nil {
		return err
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		res.Status = status
		if err := s.Repo.WithTx(tx).Save(res); err != nil {
			return fmt.Errorf("save reservation %d: %w", id, err)
		}
		return s.syncTable(tx, res.TableID)
	})
	if err != nil {
		return err
	}
	publish(s.Notifier, s.Tables, res.TableID)
	return nil
}

func (s *ReservationService) checkStatus(status string) error {
	for _, st := range entity.ReservationStatuses {
		if st[0] == status {
			return nil
		}
	}
	return fieldError("status", "Not a valid choice.")
}

func (s *ReservationService) checkTable(tx *gorm.DB, tableID uint, partySize int) error {
	t, err := s.Tables.WithTx(tx).FindByID(tableID)
	if err != nil {
		return choice(err, "table_id", "Not a valid choice.")
	}
	if partySize < 1 {
		return fieldError("party_size", "Number must be at least 1.")
	}
	if partySize > t.Capacity {
		return fieldError("party_size", fmt.Sprintf("Party size exceeds table capacity (%d).", t.Capacity))
	}
	return nil
}

// syncTable flags a free table reserved while it has open bookings and frees
// it once none remain. Occupied tables belong to the order flow.
func (s *ReservationService) syncTable(tx *gorm.DB, tableID uint) error {
	tables := s.Tables.WithTx(tx)
	t, err := tables.FindByID(tableID)
	if err != nil {
		return lookup("table", err)
	}
	if t.Status == entity.TableOccupied {
		return nil
	}
	open, err := s.Repo.WithTx(tx).CountOpenForTable(tableID, 0)
	if err != nil {
		return err
	}
	switch {
	case open > 0 && t.Status == entity.TableAvailable:
		return tables.UpdateStatus(tableID, entity.TableReserved)
	case open == 0 && t.Status == entity.TableReserved:
		return tables.UpdateStatus(tableID, entity.TableAvailable)
	}
	return nil
}

func fill(res *entity.Reservation, in ReservationInput) {
	res.TableID = in.TableID
	res.CustomerName = strings.TrimSpace(in.CustomerName)
	res.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	res.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	res.PartySize = in.PartySize
	res.ReservedAt = in.ReservedAt
	res.Status = in.Status
	res.Notes = strings.TrimSpace(in.Notes)
}
