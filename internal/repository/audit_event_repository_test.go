package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radheshyam-patil/devops-lab/internal/model"
)

func TestInsertAuditEvent(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO audit_events").
		WithArgs(5, model.ActionCreated).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))

	repo := &AuditEventRepository{DB: conn}
	ev := &model.AuditEvent{CustomerID: 5, Action: model.ActionCreated}
	require.NoError(t, repo.Insert(ev))

	assert.Equal(t, 1, ev.ID)
	assert.Equal(t, now, ev.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByCustomerNewestFirst(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "customer_id", "action", "created_at"}).
		AddRow(2, 5, model.ActionUpdated, now).
		AddRow(1, 5, model.ActionCreated, now.Add(-time.Minute))
	mock.ExpectQuery("SELECT (.+) FROM audit_events").
		WithArgs(5).
		WillReturnRows(rows)

	repo := &AuditEventRepository{DB: conn}
	events, err := repo.ListByCustomer(5)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, model.ActionUpdated, events[0].Action)
	assert.Equal(t, model.ActionCreated, events[1].Action)
}
