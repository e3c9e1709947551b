package service

import (
	"context"
	"errors"
	"maps"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/repository"
)

// memStore is an in-memory BookingStore. Transactions are serialised by mu
// and work on copies that only replace the live maps on commit, which is the
// guarantee a row-locking database gives the engine.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*model.User
	classes  map[uuid.UUID]model.Class
	bookings map[uuid.UUID]model.ClassBooking

	// hook, when set, runs before every tx operation named op and may fail it.
	hook func(ctx context.Context, op string) error
	// hideBookings makes FindBooking miss, to reach the unique constraint.
	hideBookings bool
	userErr      error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uuid.UUID]*model.User{},
		classes:  map[uuid.UUID]model.Class{},
		bookings: map[uuid.UUID]model.ClassBooking{},
	}
}

func (s *memStore) addUser(t *testing.T, status model.UserStatus) uuid.UUID {
	t.Helper()
	id := uuid.New()
	s.users[id] = &model.User{ID: id, Name: "member", Role: model.UserRole, Status: status, IsActive: true}
	return id
}

func (s *memStore) disableUser(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id].IsActive = false
}

// counters returns capacity, available slots and booking count for a class
// from a single consistent view of the store.
func (s *memStore) counters(classID uuid.UUID) (capacity, available, booked int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.classes[classID]
	for _, b := range s.bookings {
		if b.ClassID == classID {
			booked++
		}
	}
	return c.Capacity, c.AvailableSlots, booked
}

func (s *memStore) addClass(t *testing.T, capacity, available int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	s.classes[id] = model.Class{ID: id, Name: "Spin", Capacity: capacity, AvailableSlots: available}
	return id
}

func (s *memStore) slots(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.classes[id].AvailableSlots
}

func (s *memStore) bookingCount(classID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.bookings {
		if b.ClassID == classID {
			n++
		}
	}
	return n
}

func (s *memStore) FindUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if s.userErr != nil {
		return nil, s.userErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) WithinTx(ctx context.Context, fn func(tx repository.BookingTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{
		store:    s,
		classes:  maps.Clone(s.classes),
		bookings: maps.Clone(s.bookings),
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.classes = tx.classes
	s.bookings = tx.bookings
	return nil
}

type memTx struct {
	store    *memStore
	classes  map[uuid.UUID]model.Class
	bookings map[uuid.UUID]model.ClassBooking
}

func (t *memTx) before(ctx context.Context, op string) error {
	if t.store.hook != nil {
		if err := t.store.hook(ctx, op); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (t *memTx) FindClassForUpdate(ctx context.Context, classID uuid.UUID) (*model.Class, error) {
	if err := t.before(ctx, "FindClassForUpdate"); err != nil {
		return nil, err
	}
	c, ok := t.classes[classID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (t *memTx) FindBooking(ctx context.Context, classID, userID uuid.UUID) (*model.ClassBooking, error) {
	if err := t.before(ctx, "FindBooking"); err != nil {
		return nil, err
	}
	if t.store.hideBookings {
		return nil, repository.ErrNotFound
	}
	for _, b := range t.bookings {
		if b.ClassID == classID && b.UserID == userID {
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (t *memTx) FindBookingByID(ctx context.Context, bookingID uuid.UUID) (*model.ClassBooking, error) {
	if err := t.before(ctx, "FindBookingByID"); err != nil {
		return nil, err
	}
	b, ok := t.bookings[bookingID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (t *memTx) DecrementAvailableSlots(ctx context.Context, classID uuid.UUID) (int, error) {
	if err := t.before(ctx, "DecrementAvailableSlots"); err != nil {
		return 0, err
	}
	c := t.classes[classID]
	if c.AvailableSlots <= 0 {
		return 0, repository.ErrNoSlots
	}
	c.AvailableSlots--
	t.classes[classID] = c
	return c.AvailableSlots, nil
}

func (t *memTx) IncrementAvailableSlots(ctx context.Context, classID uuid.UUID) (int, error) {
	if err := t.before(ctx, "IncrementAvailableSlots"); err != nil {
		return 0, err
	}
	c, ok := t.classes[classID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	c.AvailableSlots = min(c.Capacity, c.AvailableSlots+1)
	t.classes[classID] = c
	return c.AvailableSlots, nil
}

func (t *memTx) InsertBooking(ctx context.Context, classID, userID uuid.UUID) (*model.ClassBooking, error) {
	if err := t.before(ctx, "InsertBooking"); err != nil {
		return nil, err
	}
	for _, b := range t.bookings {
		if b.ClassID == classID && b.UserID == userID {
			return nil, repository.ErrDuplicateBooking
		}
	}
	b := model.ClassBooking{ID: uuid.New(), ClassID: classID, UserID: userID, BookingDate: time.Now()}
	t.bookings[b.ID] = b
	return &b, nil
}

func (t *memTx) DeleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	if err := t.before(ctx, "DeleteBooking"); err != nil {
		return err
	}
	if _, ok := t.bookings[bookingID]; !ok {
		return repository.ErrNotFound
	}
	delete(t.bookings, bookingID)
	return nil
}

// failOn returns a hook that fails op with err.
func failOn(op string, err error) func(context.Context, string) error {
	return func(_ context.Context, name string) error {
		if name == op {
			return err
		}
		return nil
	}
}

// stallOn returns a hook that blocks op until ctx is done.
func stallOn(op string) func(context.Context, string) error {
	return func(ctx context.Context, name string) error {
		if name != op {
			return nil
		}
		<-ctx.Done()
		return ctx.Err()
	}
}

var errConnReset = errors.New("read tcp 10.0.0.2:5432: connection reset by peer")

// recordingNotifier keeps every slot update it is told about.
type recordingNotifier struct {
	mu      sync.Mutex
	updates []model.SlotUpdate
}

func (n *recordingNotifier) SlotsChanged(_ context.Context, u model.SlotUpdate) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updates = append(n.updates, u)
}

func (n *recordingNotifier) all() []model.SlotUpdate {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.SlotUpdate(nil), n.updates...)
}
