package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Kabachel/FeedingKittiesBot/internal/domain"
)

// MemoryStore is an in-memory implementation of the repository contracts for
// tests and development. A single mutex serializes units of work, which
// stands in for the per-entity locking the Postgres implementation gets from
// row locks. Rollback is not simulated; services validate before mutating.
type MemoryStore struct {
	mu        sync.Mutex
	users     map[int64]domain.User
	cats      map[uint]domain.Cat
	nextCatID uint
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[int64]domain.User),
		cats:      make(map[uint]domain.Cat),
		nextCatID: 1,
	}
}

// Users returns the user repository view of the store.
func (s *MemoryStore) Users() domain.UserRepository { return &memoryUserRepo{store: s} }

// Cats returns the cat repository view of the store.
func (s *MemoryStore) Cats() domain.CatRepository { return &memoryCatRepo{store: s} }

// Do runs fn under the store lock.
func (s *MemoryStore) Do(ctx context.Context, fn func(users domain.UserRepository, cats domain.CatRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&memoryUserRepo{store: s, locked: true}, &memoryCatRepo{store: s, locked: true})
}

func (s *MemoryStore) lock(alreadyLocked bool) func() {
	if alreadyLocked {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type memoryUserRepo struct {
	store  *MemoryStore
	locked bool
}

func (r *memoryUserRepo) GetByChatID(ctx context.Context, chatID int64) (*domain.User, error) {
	defer r.store.lock(r.locked)()
	u, ok := r.store.users[chatID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memoryUserRepo) Save(ctx context.Context, user *domain.User) error {
	defer r.store.lock(r.locked)()
	r.store.users[user.ChatID] = *user
	return nil
}

func (r *memoryUserRepo) Delete(ctx context.Context, chatID int64) error {
	defer r.store.lock(r.locked)()
	delete(r.store.users, chatID)
	return nil
}

type memoryCatRepo struct {
	store  *MemoryStore
	locked bool
}

func (r *memoryCatRepo) GetByID(ctx context.Context, id uint) (*domain.Cat, error) {
	defer r.store.lock(r.locked)()
	c, ok := r.store.cats[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *memoryCatRepo) GetByIDForUpdate(ctx context.Context, id uint) (*domain.Cat, error) {
	return r.GetByID(ctx, id)
}

func (r *memoryCatRepo) ListByOwner(ctx context.Context, chatID int64) ([]domain.Cat, error) {
	defer r.store.lock(r.locked)()
	out := make([]domain.Cat, 0)
	for _, c := range r.store.cats {
		if c.UserChatID == chatID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryCatRepo) Save(ctx context.Context, cat *domain.Cat) error {
	defer r.store.lock(r.locked)()
	if cat.ID == 0 {
		cat.ID = r.store.nextCatID
		r.store.nextCatID++
	}
	r.store.cats[cat.ID] = *cat
	return nil
}

func (r *memoryCatRepo) Delete(ctx context.Context, id uint) error {
	defer r.store.lock(r.locked)()
	delete(r.store.cats, id)
	return nil
}

func (r *memoryCatRepo) DeleteByOwner(ctx context.Context, chatID int64) error {
	defer r.store.lock(r.locked)()
	for id, c := range r.store.cats {
		if c.UserChatID == chatID {
			delete(r.store.cats, id)
		}
	}
	return nil
}

func (r *memoryCatRepo) ResetAllFeeds(ctx context.Context) error {
	defer r.store.lock(r.locked)()
	for id, c := range r.store.cats {
		c.FeedsToday = 0
		r.store.cats[id] = c
	}
	return nil
}
