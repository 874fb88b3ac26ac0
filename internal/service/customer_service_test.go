package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/radheshyam-patil/devops-lab/internal/errors"
	"github.com/radheshyam-patil/devops-lab/internal/model"
	"github.com/radheshyam-patil/devops-lab/internal/service"
)

// --- Fakes ---

type fakeCustomerRepo struct {
	customers map[int]model.Customer
	nextID    int
	creates   int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[int]model.Customer{}, nextID: 1}
}

func (f *fakeCustomerRepo) Create(c *model.Customer) error {
	f.creates++
	c.ID = f.nextID
	f.nextID++
	f.customers[c.ID] = *c
	return nil
}

func (f *fakeCustomerRepo) ListAll() ([]model.Customer, error) {
	out := []model.Customer{}
	for id := 1; id < f.nextID; id++ {
		if c, ok := f.customers[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) GetByID(id int) (*model.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, appErrors.NewCustomerNotFound(id)
	}
	return &c, nil
}

func (f *fakeCustomerRepo) Update(id int, u model.CustomerUpdate) (int64, error) {
	c, ok := f.customers[id]
	if !ok {
		return 0, nil
	}
	if u.FirstName != nil {
		c.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		c.LastName = *u.LastName
	}
	if u.Age != nil {
		c.Age = u.Age
	}
	if u.Address != nil {
		c.Address = u.Address
	}
	f.customers[id] = c
	return 1, nil
}

func (f *fakeCustomerRepo) DeleteByID(id int) (int64, error) {
	if _, ok := f.customers[id]; !ok {
		return 0, nil
	}
	delete(f.customers, id)
	return 1, nil
}

func (f *fakeCustomerRepo) DeleteAll() (int64, error) {
	n := int64(len(f.customers))
	f.customers = map[int]model.Customer{}
	return n, nil
}

type fakeEventRepo struct {
	events []model.AuditEvent
}

func (f *fakeEventRepo) Insert(ev *model.AuditEvent) error {
	ev.ID = len(f.events) + 1
	f.events = append(f.events, *ev)
	return nil
}

func (f *fakeEventRepo) ListByCustomer(customerID int) ([]model.AuditEvent, error) {
	out := []model.AuditEvent{}
	for _, ev := range f.events {
		if ev.CustomerID == customerID {
			out = append(out, ev)
		}
	}
	return out, nil
}

type capturingQueue struct {
	published []model.AuditEvent
}

func (q *capturingQueue) Publish(topic string, payload any) error {
	q.published = append(q.published, payload.(model.AuditEvent))
	return nil
}

func (q *capturingQueue) Subscribe(topic string, handler func(payload any) error) error {
	return nil
}

func newService() (*service.CustomerService, *fakeCustomerRepo, *capturingQueue) {
	repo := newFakeCustomerRepo()
	q := &capturingQueue{}
	svc := &service.CustomerService{
		CustomerRepo: repo,
		EventRepo:    &fakeEventRepo{},
		Queue:        q,
	}
	return svc, repo, q
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

// --- Tests ---

func TestCreateCustomerRequiresNames(t *testing.T) {
	svc, repo, q := newService()

	for _, c := range []struct{ first, last string }{
		{"", "Doe"},
		{"Jane", ""},
		{"   ", "Doe"},
		{"", ""},
	} {
		_, err := svc.CreateCustomer(c.first, c.last, nil, nil)

		var validation *appErrors.ErrValidation
		require.True(t, errors.As(err, &validation), "first=%q last=%q", c.first, c.last)
	}

	assert.Equal(t, 0, repo.creates, "nothing may be persisted on validation failure")
	assert.Empty(t, q.published)
}

func TestCreateCustomerPublishesCreatedEvent(t *testing.T) {
	svc, _, q := newService()

	customer, err := svc.CreateCustomer("Jane", "Doe", intPtr(30), strPtr("12 Main St"))
	require.NoError(t, err)
	assert.Equal(t, 1, customer.ID)

	require.Len(t, q.published, 1)
	assert.Equal(t, model.ActionCreated, q.published[0].Action)
	assert.Equal(t, customer.ID, q.published[0].CustomerID)
}

func TestUpdateCustomerRejectsEmptyPayload(t *testing.T) {
	svc, _, _ := newService()

	err := svc.UpdateCustomer(1, model.CustomerUpdate{})

	var validation *appErrors.ErrValidation
	require.True(t, errors.As(err, &validation))
}

func TestUpdateCustomerRejectsBlankNames(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.CreateCustomer("Jane", "Doe", nil, nil)
	require.NoError(t, err)

	err = svc.UpdateCustomer(1, model.CustomerUpdate{FirstName: strPtr("  ")})
	var validation *appErrors.ErrValidation
	require.True(t, errors.As(err, &validation))

	err = svc.UpdateCustomer(1, model.CustomerUpdate{LastName: strPtr("")})
	require.True(t, errors.As(err, &validation))
}

func TestUpdateCustomerNotFound(t *testing.T) {
	svc, _, q := newService()

	err := svc.UpdateCustomer(99, model.CustomerUpdate{FirstName: strPtr("Janet")})

	var notFound *appErrors.ErrCustomerNotFound
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, 99, notFound.CustomerID)
	assert.Empty(t, q.published)
}

func TestDeleteCustomerNotFound(t *testing.T) {
	svc, _, _ := newService()

	err := svc.DeleteCustomer(7)

	var notFound *appErrors.ErrCustomerNotFound
	require.True(t, errors.As(err, &notFound))
}

func TestDeleteAllCustomersReportsCountAndPublishes(t *testing.T) {
	svc, _, q := newService()
	for i := 0; i < 3; i++ {
		_, err := svc.CreateCustomer("Jane", "Doe", nil, nil)
		require.NoError(t, err)
	}

	deleted, err := svc.DeleteAllCustomers()
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	last := q.published[len(q.published)-1]
	assert.Equal(t, model.ActionDeletedAll, last.Action)
	assert.Equal(t, 0, last.CustomerID)

	customers, err := svc.ListCustomers()
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestCustomerEventsRequiresExistingCustomer(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.CustomerEvents(12)

	var notFound *appErrors.ErrCustomerNotFound
	require.True(t, errors.As(err, &notFound))
}
