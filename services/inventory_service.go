package services

import (
	"strings"

	"restaurant/entity"
	"restaurant/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryService struct {
	Repo *repository.InventoryRepository
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{Repo: repository.NewInventoryRepository(db)}
}

type InventoryInput struct {
	Name         string
	Quantity     decimal.Decimal
	Unit         string
	ReorderLevel decimal.Decimal
	CostPerUnit  decimal.Decimal
	Supplier     string
}

// List returns every stock record, or only those due for reorder.
func (s *InventoryService) List(lowOnly bool) ([]entity.Inventory, error) {
	if lowOnly {
		return s.Repo.ListLow()
	}
	return s.Repo.List()
}

func (s *InventoryService) Get(id uint) (*entity.Inventory, error) {
	item, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, lookup("inventory item", err)
	}
	return item, nil
}

func (s *InventoryService) Create(in InventoryInput) (*entity.Inventory, error) {
	item := &entity.Inventory{}
	if err := applyInventory(item, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *InventoryService) Update(id uint, in InventoryInput) (*entity.Inventory, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := applyInventory(item, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *InventoryService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

func applyInventory(item *entity.Inventory, in InventoryInput) error {
	verr := &ValidationError{Fields: map[string]string{}}
	for field, v := range map[string]decimal.Decimal{
		"quantity":      in.Quantity,
		"reorder_level": in.ReorderLevel,
		"cost_per_unit": in.CostPerUnit,
	} {
		if v.IsNegative() {
			verr.Fields[field] = "Number must be at least 0."
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}

	item.Name = strings.TrimSpace(in.Name)
	item.Quantity = in.Quantity
	item.Unit = in.Unit
	item.ReorderLevel = in.ReorderLevel
	item.CostPerUnit = in.CostPerUnit.Round(2)
	item.Supplier = strings.TrimSpace(in.Supplier)
	return nil
}
