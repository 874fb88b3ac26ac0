// internal/service/customer_service.go
package service

import (
	"log"
	"strings"

	appErrors "github.com/radheshyam-patil/devops-lab/internal/errors"
	"github.com/radheshyam-patil/devops-lab/internal/model"
	"github.com/radheshyam-patil/devops-lab/internal/queue"
	"github.com/radheshyam-patil/devops-lab/internal/repository"
)

type CustomerService struct {
	CustomerRepo repository.CustomerRepositoryInterface
	EventRepo    repository.AuditEventRepositoryInterface
	Queue        queue.Queue
}

// CreateCustomer validates and persists a new customer.
func (s *CustomerService) CreateCustomer(firstName, lastName string, age *int, address *string) (*model.Customer, error) {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, appErrors.NewValidation("firstname and lastname are required")
	}

	customer := &model.Customer{
		FirstName: firstName,
		LastName:  lastName,
		Age:       age,
		Address:   address,
	}
	if err := s.CustomerRepo.Create(customer); err != nil {
		return nil, err
	}

	s.publishEvent(model.ActionCreated, customer.ID)
	return customer, nil
}

func (s *CustomerService) ListCustomers() ([]model.Customer, error) {
	return s.CustomerRepo.ListAll()
}

func (s *CustomerService) GetCustomer(id int) (*model.Customer, error) {
	return s.CustomerRepo.GetByID(id)
}

// UpdateCustomer applies a partial update. Name fields may be
// replaced but never blanked.
func (s *CustomerService) UpdateCustomer(id int, u model.CustomerUpdate) error {
	if u.Empty() {
		return appErrors.NewValidation("no updatable fields provided")
	}
	if u.FirstName != nil && strings.TrimSpace(*u.FirstName) == "" {
		return appErrors.NewValidation("firstname cannot be empty")
	}
	if u.LastName != nil && strings.TrimSpace(*u.LastName) == "" {
		return appErrors.NewValidation("lastname cannot be empty")
	}

	rows, err := s.CustomerRepo.Update(id, u)
	if err != nil {
		return err
	}
	if rows == 0 {
		return appErrors.NewCustomerNotFound(id)
	}

	s.publishEvent(model.ActionUpdated, id)
	return nil
}

func (s *CustomerService) DeleteCustomer(id int) error {
	rows, err := s.CustomerRepo.DeleteByID(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return appErrors.NewCustomerNotFound(id)
	}

	s.publishEvent(model.ActionDeleted, id)
	return nil
}

// DeleteAllCustomers clears the table and returns the number of rows
// removed.
func (s *CustomerService) DeleteAllCustomers() (int64, error) {
	deleted, err := s.CustomerRepo.DeleteAll()
	if err != nil {
		return 0, err
	}

	s.publishEvent(model.ActionDeletedAll, 0)
	return deleted, nil
}

// CustomerEvents returns the audit trail of an existing customer.
func (s *CustomerService) CustomerEvents(id int) ([]model.AuditEvent, error) {
	if _, err := s.CustomerRepo.GetByID(id); err != nil {
		return nil, err
	}
	return s.EventRepo.ListByCustomer(id)
}

// publishEvent is best-effort: a queue failure never fails the
// request that triggered it.
func (s *CustomerService) publishEvent(action string, customerID int) {
	if s.Queue == nil {
		return
	}
	ev := model.AuditEvent{CustomerID: customerID, Action: action}
	if err := s.Queue.Publish(queue.CustomerEventsTopic, ev); err != nil {
		log.Println("⚠️ failed to publish customer event:", err)
	}
}
