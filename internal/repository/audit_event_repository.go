package repository

import (
	"database/sql"

	"github.com/radheshyam-patil/devops-lab/internal/model"
)

// AuditEventRepositoryInterface defines methods used by the service
// and the queue subscriber.
type AuditEventRepositoryInterface interface {
	Insert(ev *model.AuditEvent) error
	ListByCustomer(customerID int) ([]model.AuditEvent, error)
}

type AuditEventRepository struct {
	DB *sql.DB
}

// Insert records one audit event and fills in the generated id and
// timestamp.
func (r *AuditEventRepository) Insert(ev *model.AuditEvent) error {
	query := `
        INSERT INTO audit_events (customer_id, action, created_at)
        VALUES ($1, $2, NOW())
        RETURNING id, created_at
    `
	return r.DB.QueryRow(query, ev.CustomerID, ev.Action).Scan(&ev.ID, &ev.CreatedAt)
}

// ListByCustomer fetches the audit trail for one customer, newest
// first.
func (r *AuditEventRepository) ListByCustomer(customerID int) ([]model.AuditEvent, error) {
	query := `
        SELECT id, customer_id, action, created_at
        FROM audit_events
        WHERE customer_id = $1
        ORDER BY id DESC
    `
	rows, err := r.DB.Query(query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.AuditEvent{}
	for rows.Next() {
		var ev model.AuditEvent
		if err := rows.Scan(&ev.ID, &ev.CustomerID, &ev.Action, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

var _ AuditEventRepositoryInterface = (*AuditEventRepository)(nil)
