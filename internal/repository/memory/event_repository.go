package memory

import (
	"context"
	"sync"
	"time"

	"getscience-be/internal/entity"
	"getscience-be/internal/repository/contract"
	"getscience-be/internal/repository/specification"

	"github.com/google/uuid"
)

type EventRepository struct {
	mu     sync.RWMutex
	events map[uuid.UUID]entity.Event
	staff  map[uuid.UUID]entity.EventStaff
}

func NewEventRepository() *EventRepository {
	return &EventRepository{
		events: make(map[uuid.UUID]entity.Event),
		staff:  make(map[uuid.UUID]entity.EventStaff),
	}
}

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.Id == uuid.Nil {
		event.Id = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	r.events[event.Id] = *event
	return nil
}

func (r *EventRepository) Update(ctx context.Context, event *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.Id] = *event
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.events, id)
	return nil
}

func (r *EventRepository) match(e entity.Event, f filters) bool {
	if f.id != nil && e.Id != *f.id {
		return false
	}
	if len(f.ids) > 0 && !containsID(f.ids, e.Id) {
		return false
	}
	if f.organizerID != nil && e.OrganizerId != *f.organizerID {
		return false
	}
	if f.status != nil && string(e.Status) != *f.status {
		return false
	}
	return true
}

func (r *EventRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := collect(specs...)
	for _, e := range r.events {
		if r.match(e, f) {
			out := e
			return &out, nil
		}
	}
	return nil, nil
}

func (r *EventRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := collect(specs...)
	var result []*entity.Event
	for _, e := range r.events {
		if r.match(e, f) {
			out := e
			result = append(result, &out)
		}
	}
	sortByCreatedAt(result, func(e *entity.Event) time.Time { return e.CreatedAt }, f.orderDesc)
	return page(result, f), nil
}

func (r *EventRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func (r *EventRepository) CreateStaff(ctx context.Context, staff *entity.EventStaff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if staff.Id == uuid.Nil {
		staff.Id = uuid.New()
	}
	if staff.CreatedAt.IsZero() {
		staff.CreatedAt = time.Now()
	}
	r.staff[staff.Id] = *staff
	return nil
}

func (r *EventRepository) DeleteStaffByEventId(ctx context.Context, eventId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.staff {
		if s.EventId == eventId {
			delete(r.staff, id)
		}
	}
	return nil
}

func (r *EventRepository) FindStaff(ctx context.Context, specs ...specification.Specification) ([]*entity.EventStaff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := collect(specs...)
	var result []*entity.EventStaff
	for _, s := range r.staff {
		if f.eventID != nil && s.EventId != *f.eventID {
			continue
		}
		if f.userID != nil && s.UserId != *f.userID {
			continue
		}
		if f.staffRole != nil && string(s.Role) != *f.staffRole {
			continue
		}
		out := s
		result = append(result, &out)
	}
	sortByCreatedAt(result, func(s *entity.EventStaff) time.Time { return s.CreatedAt }, f.orderDesc)
	return page(result, f), nil
}

var _ contract.EventRepository = (*EventRepository)(nil)
