package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/spinthreads/wheel-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository fakes backing the handler tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
	order []primitive.ObjectID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	cp := *user
	r.users[user.ID] = &cp
	r.order = append(r.order, user.ID)
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.User, 0, len(r.order))
	for _, id := range r.order {
		if u, ok := r.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindEligibleParticipants(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.User, 0)
	for _, id := range r.order {
		u, ok := r.users[id]
		if ok && u.Role == models.RoleParticipant && !u.IsBlocked && u.TotalEntries > 0 {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) IncrementEntries(ctx context.Context, userID primitive.ObjectID, entries, shirts int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.TotalEntries += entries
	u.TotalShirtsPurchased += shirts
	return nil
}

func (r *fakeUserRepo) MarkWinner(ctx context.Context, userID primitive.ObjectID, winDate time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.IsWinner = true
	u.LastWinDate = winDate
	u.SeenCongrats = false
	return nil
}

func (r *fakeUserRepo) SetBlocked(ctx context.Context, userID primitive.ObjectID, blocked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.IsBlocked = blocked
	return nil
}

func (r *fakeUserRepo) SetCongratsSeen(ctx context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.SeenCongrats = true
	return nil
}

func (r *fakeUserRepo) ResetEntriesToBaseline(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Role == models.RoleParticipant {
			u.TotalEntries = 1
			u.TotalShirtsPurchased = 0
		}
	}
	return nil
}

type fakeEntryRepo struct {
	mu      sync.Mutex
	entries []*models.WheelEntry
}

func (r *fakeEntryRepo) Create(ctx context.Context, entry *models.WheelEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = primitive.NewObjectID()
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeEntryRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.WheelEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.WheelEntry, 0)
	for _, e := range r.entries {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	return nil
}

type fakeCodeRepo struct {
	mu    sync.Mutex
	codes map[string]*models.PurchaseCode
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{codes: make(map[string]*models.PurchaseCode)}
}

func (r *fakeCodeRepo) CreateMany(ctx context.Context, codes []*models.PurchaseCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range codes {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		cp := *c
		r.codes[c.Code] = &cp
	}
	return nil
}

func (r *fakeCodeRepo) FindByCode(ctx context.Context, code string) (*models.PurchaseCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[code]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCodeRepo) FindAll(ctx context.Context, page, limit int) ([]*models.PurchaseCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.PurchaseCode, 0, len(r.codes))
	for _, c := range r.codes {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCodeRepo) Redeem(ctx context.Context, code string, userID primitive.ObjectID, now time.Time) (*models.PurchaseCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[code]
	if !ok || c.IsUsed || !c.ExpiresAt.After(now) {
		return nil, mongo.ErrNoDocuments
	}
	c.IsUsed = true
	c.UsedBy = userID
	c.UsedAt = now
	cp := *c
	return &cp, nil
}

func (r *fakeCodeRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes = make(map[string]*models.PurchaseCode)
	return nil
}

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings models.GameSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		settings: models.GameSettings{
			ID:              primitive.NewObjectID(),
			TimerMinutes:    60,
			EntriesPerShirt: 10,
		},
	}
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*models.GameSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := r.settings
	return &cp, nil
}

func (r *fakeSettingsRepo) Upsert(ctx context.Context, settings *models.GameSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = *settings
	return nil
}

func (r *fakeSettingsRepo) DeactivateCountdown(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.settings.CountdownActive {
		return false, nil
	}
	r.settings.CountdownActive = false
	return true, nil
}

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.StoreItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[primitive.ObjectID]*models.StoreItem)}
}

func (r *fakeItemRepo) Create(ctx context.Context, item *models.StoreItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.StoreItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *item
	return &cp, nil
}

func (r *fakeItemRepo) FindAll(ctx context.Context, activeOnly bool) ([]*models.StoreItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.StoreItem, 0, len(r.items))
	for _, item := range r.items {
		if activeOnly && !item.Active {
			continue
		}
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, item *models.StoreItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.items, id)
	return nil
}
