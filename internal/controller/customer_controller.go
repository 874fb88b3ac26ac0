// internal/controller/customer_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/radheshyam-patil/devops-lab/internal/errors"
	"github.com/radheshyam-patil/devops-lab/internal/model"
	"github.com/radheshyam-patil/devops-lab/internal/service"
)

type CustomerController struct {
	CustomerService *service.CustomerService
}

func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FirstName string  `json:"firstname"`
		LastName  string  `json:"lastname"`
		Age       *int    `json:"age"`
		Address   *string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	customer, err := c.CustomerService.CreateCustomer(body.FirstName, body.LastName, body.Age, body.Address)
	if err != nil {
		writeServiceError(w, err, "create customer")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(customer)
}

func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := c.CustomerService.ListCustomers()
	if err != nil {
		writeServiceError(w, err, "list customers")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customers)
}

func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	customer, err := c.CustomerService.GetCustomer(id)
	if err != nil {
		writeServiceError(w, err, "get customer")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customer)
}

func (c *CustomerController) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var update model.CustomerUpdate
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&update); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := c.CustomerService.UpdateCustomer(id, update); err != nil {
		writeServiceError(w, err, "update customer")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "customer updated successfully",
	})
}

func (c *CustomerController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.CustomerService.DeleteCustomer(id); err != nil {
		writeServiceError(w, err, "delete customer")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "customer deleted successfully",
	})
}

func (c *CustomerController) DeleteAllCustomers(w http.ResponseWriter, r *http.Request) {
	deleted, err := c.CustomerService.DeleteAllCustomers()
	if err != nil {
		writeServiceError(w, err, "delete all customers")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "all customers deleted successfully",
		"deleted": deleted,
	})
}

func (c *CustomerController) ListCustomerEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	events, err := c.CustomerService.CustomerEvents(id)
	if err != nil {
		writeServiceError(w, err, "list customer events")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeServiceError maps service errors to status codes. Persistence
// errors are logged and reported generically, never leaked to the
// client.
func writeServiceError(w http.ResponseWriter, err error, op string) {
	var validation *appErrors.ErrValidation
	var notFound *appErrors.ErrCustomerNotFound

	switch {
	case errors.As(err, &validation):
		http.Error(w, validation.Error(), http.StatusBadRequest)
	case errors.As(err, &notFound):
		http.Error(w, notFound.Error(), http.StatusNotFound)
	default:
		log.Printf("⚠️ %s failed: %v", op, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
