package services

import (
	"context"
	"sync"
	"time"

	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/pkg/broadcast"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository fakes. They mirror the conditional-update semantics
// of the Mongo implementations so concurrency tests mean something.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
	order []primitive.ObjectID

	resetErr error
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
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
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
		if !ok {
			continue
		}
		if u.Role == models.RoleParticipant && !u.IsBlocked && u.TotalEntries > 0 {
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
	user.UpdatedAt = time.Now()
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
	u.UpdatedAt = time.Now()
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
	if r.resetErr != nil {
		return r.resetErr
	}
	for _, u := range r.users {
		if u.Role != models.RoleParticipant {
			continue
		}
		u.TotalEntries = 1
		u.TotalShirtsPurchased = 0
	}
	return nil
}

type fakeEntryRepo struct {
	mu      sync.Mutex
	entries []*models.WheelEntry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{}
}

func (r *fakeEntryRepo) Create(ctx context.Context, entry *models.WheelEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()
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
		c.CreatedAt = time.Now()
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
	// Same filter semantics as the conditional Mongo update: the code must
	// exist, be unused and be unexpired, or nothing matches.
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
	getErr   error
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		settings: models.GameSettings{
			ID:              primitive.NewObjectID(),
			TimerMinutes:    60,
			EntriesPerShirt: 10,
			PrizeName:       "Signed jersey",
		},
	}
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*models.GameSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
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

type fakeSpinRepo struct {
	mu    sync.Mutex
	spins map[primitive.ObjectID]*models.Spin
	order []primitive.ObjectID

	// failUpdates makes the next N Update calls fail
	failUpdates int
	updateErr   error
}

func newFakeSpinRepo() *fakeSpinRepo {
	return &fakeSpinRepo{spins: make(map[primitive.ObjectID]*models.Spin)}
}

func (r *fakeSpinRepo) Create(ctx context.Context, spin *models.Spin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	spin.ID = primitive.NewObjectID()
	spin.CreatedAt = time.Now()
	spin.UpdatedAt = time.Now()
	cp := *spin
	r.spins[spin.ID] = &cp
	r.order = append(r.order, spin.ID)
	return nil
}

func (r *fakeSpinRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Spin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.spins[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSpinRepo) FindAll(ctx context.Context, page, limit int) ([]*models.Spin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Spin, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		if s, ok := r.spins[r.order[i]]; ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSpinRepo) Update(ctx context.Context, spin *models.Spin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdates > 0 {
		r.failUpdates--
		return r.updateErr
	}
	if _, ok := r.spins[spin.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	spin.UpdatedAt = time.Now()
	cp := *spin
	r.spins[spin.ID] = &cp
	return nil
}

func (r *fakeSpinRepo) MarkLedgerReset(ctx context.Context, spinID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.spins[spinID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	s.LedgerReset = true
	return nil
}

func (r *fakeSpinRepo) FindCompletedWithoutReset(ctx context.Context) ([]*models.Spin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Spin, 0)
	for _, id := range r.order {
		s, ok := r.spins[id]
		if ok && s.Status == models.SpinStatusCompleted && !s.LedgerReset {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSpinRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spins = make(map[primitive.ObjectID]*models.Spin)
	r.order = nil
	return nil
}

type fakeWinnerRepo struct {
	mu      sync.Mutex
	winners []*models.Winner
}

func newFakeWinnerRepo() *fakeWinnerRepo {
	return &fakeWinnerRepo{}
}

func (r *fakeWinnerRepo) Create(ctx context.Context, winner *models.Winner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	winner.ID = primitive.NewObjectID()
	winner.CreatedAt = time.Now()
	cp := *winner
	r.winners = append(r.winners, &cp)
	return nil
}

func (r *fakeWinnerRepo) FindBySpinID(ctx context.Context, spinID primitive.ObjectID) (*models.Winner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.winners {
		if w.SpinID == spinID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeWinnerRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Winner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Winner, 0)
	for _, w := range r.winners {
		if w.UserID == userID {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeWinnerRepo) FindAll(ctx context.Context, page, limit int) ([]*models.Winner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Winner, 0, len(r.winners))
	for i := len(r.winners) - 1; i >= 0; i-- {
		cp := *r.winners[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeWinnerRepo) FindLatest(ctx context.Context) (*models.Winner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.winners) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	cp := *r.winners[len(r.winners)-1]
	return &cp, nil
}

func (r *fakeWinnerRepo) UpdateClaimStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.winners {
		if w.ID == id {
			w.ClaimStatus = status
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeWinnerRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.winners = nil
	return nil
}

// recordingBroadcaster captures published messages for assertions
type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []publishedMessage
}

type publishedMessage struct {
	topic string
	event string
}

func (b *recordingBroadcaster) Publish(ctx context.Context, topic string, msg broadcast.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, publishedMessage{topic: topic, event: msg.Event})
	return nil
}

func (b *recordingBroadcaster) events(topic string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0)
	for _, m := range b.messages {
		if m.topic == topic {
			out = append(out, m.event)
		}
	}
	return out
}

// recordingMailer captures outbound mail for assertions
type recordingMailer struct {
	mu    sync.Mutex
	sends []sentMail
}

type sentMail struct {
	to       string
	template string
}

func (m *recordingMailer) Send(to, template string, data map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, sentMail{to: to, template: template})
	return nil
}
