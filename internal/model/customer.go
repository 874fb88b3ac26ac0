// internal/model/customer.go
package model

import "time"

type Customer struct {
	ID        int       `db:"id" json:"id"`
	FirstName string    `db:"firstname" json:"firstname"`
	LastName  string    `db:"lastname" json:"lastname"`
	Age       *int      `db:"age" json:"age,omitempty"`
	Address   *string   `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CustomerUpdate enumerates the mutable fields of a customer. A nil
// field means "leave unchanged"; unknown fields are rejected at the
// HTTP layer.
type CustomerUpdate struct {
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	Age       *int    `json:"age"`
	Address   *string `json:"address"`
}

// Empty reports whether the update would change nothing.
func (u CustomerUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Age == nil && u.Address == nil
}
