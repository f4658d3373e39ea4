package services

import (
	"fmt"
	"strings"

	"restaurant/entity"
	"restaurant/repository"

	"gorm.io/gorm"
)

type CustomerService struct {
	DB   *gorm.DB
	Repo *repository.CustomerRepository
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{DB: db, Repo: repository.NewCustomerRepository(db)}
}

type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

func (s *CustomerService) List() ([]entity.Customer, error) {
	return s.Repo.List()
}

func (s *CustomerService) Get(id uint) (*entity.Customer, error) {
	c, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, lookup("customer", err)
	}
	return c, nil
}

func (s *CustomerService) Create(in CustomerInput) (*entity.Customer, error) {
	c := &entity.Customer{}
	if err := s.apply(c, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) Update(id uint, in CustomerInput) (*entity.Customer, error) {
	c, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(c, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Save(c); err != nil {
		return nil, err
	}
	return c, nil
}

// apply copies the input after checking the email is not used by another customer.
func (s *CustomerService) apply(c *entity.Customer, in CustomerInput) error {
	email := strings.TrimSpace(in.Email)
	if email != "" {
		count, err := s.Repo.CountByEmail(email, c.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return fieldError("email", "Email is already registered. Please use a different one.")
		}
		c.Email = &email
	} else {
		c.Email = nil
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Address = strings.TrimSpace(in.Address)
	return nil
}

// Delete removes the customer; their orders stay with no customer attached.
func (s *CustomerService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.WithTx(tx).Delete(id); err != nil {
			return fmt.Errorf("delete customer %d: %w", id, err)
		}
		return nil
	})
}
