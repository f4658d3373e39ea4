package repository

import (
	"restaurant/entity"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	DB *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

func (r *ReservationRepository) WithTx(tx *gorm.DB) *ReservationRepository {
	return &ReservationRepository{DB: tx}
}

func (r *ReservationRepository) List() ([]entity.Reservation, error) {
	var out []entity.Reservation
	err := r.DB.Preload("Table").Order("reserved_at ASC").Find(&out).Error
	return out, err
}

func (r *ReservationRepository) FindByID(id uint) (*entity.Reservation, error) {
	var res entity.Reservation
	if err := r.DB.Preload("Table").First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepository) Create(res *entity.Reservation) error {
	return r.DB.Create(res).Error
}

func (r *ReservationRepository) Save(res *entity.Reservation) error {
	return r.DB.Omit("Table").Save(res).Error
}

// CountOpenForTable counts confirmed or seated bookings, skipping excludeID.
func (r *ReservationRepository) CountOpenForTable(tableID, excludeID uint) (int64, error) {
	var count int64
	q := r.DB.Model(&entity.Reservation{}).
		Where("table_id = ? AND status IN ?", tableID,
			[]string{entity.ReservationConfirmed, entity.ReservationSeated})
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count, err
}

// MaxOpenPartySize is the largest party among confirmed or seated bookings.
func (r *ReservationRepository) MaxOpenPartySize(tableID uint) (int, error) {
	var largest int
	err := r.DB.Model(&entity.Reservation{}).
		Select("COALESCE(MAX(party_size), 0)").
		Where("table_id = ? AND status IN ?", tableID,
			[]string{entity.ReservationConfirmed, entity.ReservationSeated}).
		Scan(&largest).Error
	return largest, err
}
