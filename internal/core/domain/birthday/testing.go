package birthday

import (
	"context"
	"sync"
	"time"
)

// TestRepository is an in-memory Repository with real (owner, name)
// uniqueness semantics, keyed the same way the database is.
type TestRepository struct {
	CreateError error
	ReadError   error
	DeleteError error

	records []Record
	nextID  ID
	lock    sync.Mutex
}

func NewTestRepository() *TestRepository {
	return &TestRepository{nextID: 1}
}

func (r *TestRepository) Create(ctx context.Context, input CreateInput) (rec Record, err error) {
	if r.CreateError != nil {
		return rec, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.records {
		if existing.Owner == input.Owner && existing.Name == input.Name {
			return rec, ErrAlreadyExists
		}
	}
	rec = Record{
		ID:        r.nextID,
		Owner:     input.Owner,
		Name:      input.Name,
		Date:      input.Date,
		Service:   input.Service,
		Handle:    input.Handle,
		CreatedAt: input.CreatedAt,
	}
	r.nextID++
	r.records = append(r.records, rec)
	return rec, nil
}

func (r *TestRepository) GetByName(ctx context.Context, owner ChatID, name string) (rec Record, err error) {
	if r.ReadError != nil {
		return rec, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.records {
		if existing.Owner == owner && existing.Name == name {
			return existing, nil
		}
	}
	return rec, ErrDoesNotExist
}

func (r *TestRepository) List(ctx context.Context, owner ChatID) ([]Record, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	records := make([]Record, 0)
	for _, existing := range r.records {
		if existing.Owner == owner {
			records = append(records, existing)
		}
	}
	return records, nil
}

func (r *TestRepository) ListByDay(ctx context.Context, owner ChatID, day int, month int) ([]Record, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	records := make([]Record, 0)
	for _, existing := range r.records {
		if existing.Owner == owner && existing.Date.Matches(day, month) {
			records = append(records, existing)
		}
	}
	return records, nil
}

func (r *TestRepository) Delete(ctx context.Context, owner ChatID, name string) error {
	if r.DeleteError != nil {
		return r.DeleteError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, existing := range r.records {
		if existing.Owner == owner && existing.Name == name {
			r.records = append(r.records[:ix], r.records[ix+1:]...)
			return nil
		}
	}
	return ErrDoesNotExist
}

func (r *TestRepository) Owners(ctx context.Context) ([]ChatID, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	seen := make(map[ChatID]struct{})
	owners := make([]ChatID, 0)
	for _, existing := range r.records {
		if _, ok := seen[existing.Owner]; ok {
			continue
		}
		seen[existing.Owner] = struct{}{}
		owners = append(owners, existing.Owner)
	}
	return owners, nil
}

// Count returns the number of stored records for an owner.
func (r *TestRepository) Count(owner ChatID) int {
	r.lock.Lock()
	defer r.lock.Unlock()
	count := 0
	for _, existing := range r.records {
		if existing.Owner == owner {
			count++
		}
	}
	return count
}

type scheduledDigest struct {
	Owner ChatID
	At    time.Time
}

type TestDigestScheduler struct {
	Scheduled []scheduledDigest
	Error     error
	lock      sync.Mutex
}

func NewTestDigestScheduler() *TestDigestScheduler {
	return &TestDigestScheduler{}
}

func (s *TestDigestScheduler) ScheduleDigest(ctx context.Context, owner ChatID, at time.Time) error {
	if s.Error != nil {
		return s.Error
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Scheduled = append(s.Scheduled, scheduledDigest{Owner: owner, At: at})
	return nil
}
