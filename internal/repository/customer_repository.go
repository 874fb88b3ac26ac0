package repository

import (
	"database/sql"
	"fmt"
	"strings"

	appErrors "github.com/radheshyam-patil/devops-lab/internal/errors"
	"github.com/radheshyam-patil/devops-lab/internal/model"
)

// CustomerRepositoryInterface defines methods used by the service
type CustomerRepositoryInterface interface {
	Create(c *model.Customer) error
	ListAll() ([]model.Customer, error)
	GetByID(id int) (*model.Customer, error)
	Update(id int, u model.CustomerUpdate) (int64, error)
	DeleteByID(id int) (int64, error)
	DeleteAll() (int64, error)
}

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
	DB *sql.DB
}

// Create inserts a customer and fills in the generated id and
// timestamps.
func (r *CustomerRepository) Create(c *model.Customer) error {
	query := `
        INSERT INTO customers (firstname, lastname, age, address, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `
	return r.DB.QueryRow(query, c.FirstName, c.LastName, c.Age, c.Address).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// ListAll fetches all customers
func (r *CustomerRepository) ListAll() ([]model.Customer, error) {
	query := `
        SELECT id, firstname, lastname, age, address, created_at, updated_at
        FROM customers
        ORDER BY id
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Age, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// GetByID fetches a customer by ID
func (r *CustomerRepository) GetByID(id int) (*model.Customer, error) {
	query := `
        SELECT id, firstname, lastname, age, address, created_at, updated_at
        FROM customers
        WHERE id = $1
    `
	var c model.Customer
	err := r.DB.QueryRow(query, id).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Age, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCustomerNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

// Update applies the non-nil fields of u and returns the number of
// rows matched. Zero rows means the id does not exist.
func (r *CustomerRepository) Update(id int, u model.CustomerUpdate) (int64, error) {
	set := []string{}
	args := []interface{}{}
	argPos := 1

	if u.FirstName != nil {
		set = append(set, fmt.Sprintf("firstname=$%d", argPos))
		args = append(args, *u.FirstName)
		argPos++
	}
	if u.LastName != nil {
		set = append(set, fmt.Sprintf("lastname=$%d", argPos))
		args = append(args, *u.LastName)
		argPos++
	}
	if u.Age != nil {
		set = append(set, fmt.Sprintf("age=$%d", argPos))
		args = append(args, *u.Age)
		argPos++
	}
	if u.Address != nil {
		set = append(set, fmt.Sprintf("address=$%d", argPos))
		args = append(args, *u.Address)
		argPos++
	}
	set = append(set, "updated_at=NOW()")

	query := fmt.Sprintf("UPDATE customers SET %s WHERE id=$%d", strings.Join(set, ", "), argPos)
	args = append(args, id)

	res, err := r.DB.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByID removes one customer and returns the number of rows
// matched.
func (r *CustomerRepository) DeleteByID(id int) (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteAll clears the table and returns how many rows were removed.
func (r *CustomerRepository) DeleteAll() (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM customers`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
