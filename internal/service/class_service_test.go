package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memClassCache is a generation-keyed ClassListCache held in memory.
type memClassCache struct {
	mu      sync.Mutex
	gen     int64
	lists   map[int64][]model.Class
	genErr  error
	stores  int
	invalid int
}

func newMemClassCache() *memClassCache {
	return &memClassCache{lists: map[int64][]model.Class{}}
}

func (c *memClassCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, c.genErr
}

func (c *memClassCache) Load(_ context.Context, gen int64) ([]model.Class, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	classes, ok := c.lists[gen]
	return classes, ok
}

func (c *memClassCache) Store(_ context.Context, gen int64, classes []model.Class) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[gen] = append([]model.Class(nil), classes...)
	c.stores++
}

func (c *memClassCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.invalid++
}

// memClassStore serves a fixed class set. onList runs after the rows are
// read and before List returns, where a concurrent commit would land.
type memClassStore struct {
	mu      sync.Mutex
	classes []model.Class
	lists   int
	created []*model.Class
	onList  func()
}

func (s *memClassStore) List(context.Context) ([]model.Class, error) {
	s.mu.Lock()
	rows := append([]model.Class(nil), s.classes...)
	s.lists++
	hook := s.onList
	s.onList = nil
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return rows, nil
}

func (s *memClassStore) GetByID(_ context.Context, id uuid.UUID) (*model.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.classes {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memClassStore) Create(_ context.Context, c *model.Class) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.New()
	c.AvailableSlots = c.Capacity
	s.created = append(s.created, c)
	s.classes = append(s.classes, *c)
	return nil
}

func (s *memClassStore) setSlots(id uuid.UUID, slots int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.classes {
		if s.classes[i].ID == id {
			s.classes[i].AvailableSlots = slots
		}
	}
}

func (s *memClassStore) listCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists
}

type memTrainers map[uuid.UUID]*model.Trainer

func (m memTrainers) GetByID(_ context.Context, id uuid.UUID) (*model.Trainer, error) {
	t, ok := m[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

type noBookings struct{}

func (noBookings) ListByUser(context.Context, uuid.UUID) ([]model.UserBooking, error) {
	return nil, nil
}

func TestListClasses_InvalidationDuringReadIsNotCached(t *testing.T) {
	classID := uuid.New()
	store := &memClassStore{classes: []model.Class{{ID: classID, Name: "Spin", Capacity: 5, AvailableSlots: 5}}}
	cache := newMemClassCache()
	svc := NewClassService(store, noBookings{}, memTrainers{}, cache, zerolog.Nop())

	// A booking commits after the rows were read and before they are cached.
	store.onList = func() {
		store.setSlots(classID, 4)
		cache.Invalidate(context.Background())
	}

	first, err := svc.ListClasses(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 5, first[0].AvailableSlots, "the in-flight read saw the old counter")

	second, err := svc.ListClasses(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 4, second[0].AvailableSlots)
	assert.Equal(t, 2, store.listCalls(), "the stale listing must not be served from cache")

	third, err := svc.ListClasses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, third[0].AvailableSlots)
	assert.Equal(t, 2, store.listCalls())
}

func TestListClasses_CacheHitSkipsStore(t *testing.T) {
	store := &memClassStore{classes: []model.Class{{ID: uuid.New(), Name: "Yoga", Capacity: 8, AvailableSlots: 8}}}
	cache := newMemClassCache()
	svc := NewClassService(store, noBookings{}, memTrainers{}, cache, zerolog.Nop())

	for range 3 {
		classes, err := svc.ListClasses(context.Background())
		require.NoError(t, err)
		assert.Len(t, classes, 1)
	}
	assert.Equal(t, 1, store.listCalls())
	assert.Equal(t, 1, cache.stores)
}

func TestListClasses_GenerationErrorBypassesCache(t *testing.T) {
	store := &memClassStore{classes: []model.Class{{ID: uuid.New(), Name: "Yoga", Capacity: 8, AvailableSlots: 8}}}
	cache := newMemClassCache()
	cache.genErr = errors.New("dial tcp 10.0.0.3:6379: connect: connection refused")
	svc := NewClassService(store, noBookings{}, memTrainers{}, cache, zerolog.Nop())

	for range 2 {
		classes, err := svc.ListClasses(context.Background())
		require.NoError(t, err)
		assert.Len(t, classes, 1)
	}
	assert.Equal(t, 2, store.listCalls())
	assert.Zero(t, cache.stores)
}

func TestCreateClass(t *testing.T) {
	active := &model.Trainer{ID: uuid.New(), Name: "Rina", Role: model.StaffRoleTrainer, IsActive: true}
	inactive := &model.Trainer{ID: uuid.New(), Name: "Budi", Role: model.StaffRoleTrainer, IsActive: false}
	admin := &model.Trainer{ID: uuid.New(), Name: "Ops", Role: model.StaffRoleAdmin, IsActive: true}
	trainers := memTrainers{active.ID: active, inactive.ID: inactive, admin.ID: admin}

	request := func(trainerID uuid.UUID, start, end string) *model.CreateClassRequest {
		return &model.CreateClassRequest{
			Name: "Spin", Category: "cardio", Date: "2026-11-02",
			StartTime: start, EndTime: end, Capacity: 12, TrainerID: trainerID,
		}
	}

	tests := []struct {
		name       string
		req        *model.CreateClassRequest
		caller     uuid.UUID
		callerRole model.StaffRole
		expectErr  error
		expectID   uuid.UUID
	}{
		{"admin names a trainer", request(active.ID, "07:00", "08:00"), admin.ID, model.StaffRoleAdmin, nil, active.ID},
		{"trainer assigned to self", request(uuid.Nil, "07:00", "08:00"), active.ID, model.StaffRoleTrainer, nil, active.ID},
		{"deactivated trainer", request(inactive.ID, "07:00", "08:00"), admin.ID, model.StaffRoleAdmin, ErrTrainerNotFound, uuid.Nil},
		{"admin account is not a trainer", request(admin.ID, "07:00", "08:00"), admin.ID, model.StaffRoleAdmin, ErrTrainerNotFound, uuid.Nil},
		{"unknown trainer", request(uuid.New(), "07:00", "08:00"), admin.ID, model.StaffRoleAdmin, ErrTrainerNotFound, uuid.Nil},
		{"end before start", request(active.ID, "09:00", "08:00"), admin.ID, model.StaffRoleAdmin, ErrInvalidSchedule, uuid.Nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memClassStore{}
			cache := newMemClassCache()
			svc := NewClassService(store, noBookings{}, trainers, cache, zerolog.Nop())

			class, err := svc.CreateClass(context.Background(), tt.req, tt.caller, tt.callerRole)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Empty(t, store.created)
				assert.Zero(t, cache.invalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectID, class.TrainerID)
			assert.Equal(t, 12, class.AvailableSlots)
			assert.Equal(t, time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), class.Date)
			assert.Equal(t, 1, cache.invalid)
		})
	}
}

func TestCreateClass_InvalidatesCachedListing(t *testing.T) {
	trainer := &model.Trainer{ID: uuid.New(), Name: "Rina", Role: model.StaffRoleTrainer, IsActive: true}
	store := &memClassStore{}
	cache := newMemClassCache()
	svc := NewClassService(store, noBookings{}, memTrainers{trainer.ID: trainer}, cache, zerolog.Nop())

	classes, err := svc.ListClasses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, classes)

	_, err = svc.CreateClass(context.Background(), &model.CreateClassRequest{
		Name: "Spin", Category: "cardio", Date: "2026-11-02",
		StartTime: "07:00", EndTime: "08:00", Capacity: 12,
	}, trainer.ID, model.StaffRoleTrainer)
	require.NoError(t, err)

	classes, err = svc.ListClasses(context.Background())
	require.NoError(t, err)
	assert.Len(t, classes, 1)
}
