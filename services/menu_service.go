package services

import (
	"strings"

	"restaurant/entity"
	"restaurant/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuService struct {
	Repo *repository.MenuRepository
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{Repo: repository.NewMenuRepository(db)}
}

type MenuItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	ImageURL    string
	Available   bool
}

func (s *MenuService) List() ([]entity.MenuItem, error) {
	return s.Repo.List()
}

func (s *MenuService) ListAvailable() ([]entity.MenuItem, error) {
	return s.Repo.ListAvailable()
}

func (s *MenuService) Get(id uint) (*entity.MenuItem, error) {
	m, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, lookup("menu item", err)
	}
	return m, nil
}

func (s *MenuService) Create(in MenuItemInput) (*entity.MenuItem, error) {
	m := &entity.MenuItem{}
	if err := applyMenuItem(m, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MenuService) Update(id uint, in MenuItemInput) (*entity.MenuItem, error) {
	m, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := applyMenuItem(m, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Save(m); err != nil {
		return nil, err
	}
	return m, nil
}

func applyMenuItem(m *entity.MenuItem, in MenuItemInput) error {
	if in.Price.IsNegative() {
		return fieldError("price", "Number must be at least 0.")
	}
	m.Name = strings.TrimSpace(in.Name)
	m.Description = strings.TrimSpace(in.Description)
	m.Price = in.Price.Round(2)
	m.Category = in.Category
	m.ImageURL = strings.TrimSpace(in.ImageURL)
	m.Available = in.Available
	return nil
}

// Delete refuses items that appear on orders; those keep their price
// snapshot and must stay resolvable. Mark the item unavailable instead.
func (s *MenuService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	n, err := s.Repo.CountOrderItems(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrInUse
	}
	return s.Repo.Delete(id)
}
