package services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"hostelcare/internal/adapters/persistence/models"
	"hostelcare/internal/core/domain"
	"hostelcare/internal/pkg/jwt"

	"gorm.io/gorm"
)

// memStore backs the in-memory repositories used by service tests
type memStore struct {
	mu         sync.Mutex
	users      map[uint]*models.User
	complaints map[uint]*models.Complaint
	feedback   map[uint]*models.Feedback
	nextID     uint
	clock      time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[uint]*models.User{},
		complaints: map[uint]*models.Complaint{},
		feedback:   map[uint]*models.Feedback{},
		clock:      time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

// ---- users ----

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.s.id()
	user.CreatedAt = r.s.tick()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

// ---- complaints ----

type memComplaintRepo struct{ s *memStore }

func (r *memComplaintRepo) Create(_ context.Context, complaint *models.Complaint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	complaint.ID = r.s.id()
	complaint.CreatedAt = r.s.tick()
	complaint.UpdatedAt = complaint.CreatedAt
	cp := *complaint
	r.s.complaints[complaint.ID] = &cp
	return nil
}

func (r *memComplaintRepo) GetByID(_ context.Context, id uint, ownerID uint) (*models.Complaint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.complaints[id]
	if !ok || (ownerID != 0 && c.UserID != ownerID) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memComplaintRepo) List(_ context.Context, filter domain.ComplaintFilter) ([]*models.Complaint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Complaint{}
	for _, c := range r.s.complaints {
		switch {
		case filter.OwnerID != 0 && c.UserID != filter.OwnerID,
			filter.Status != "" && c.Status != filter.Status,
			filter.Category != "" && c.Category != filter.Category,
			filter.Urgency != "" && c.Urgency != filter.Urgency:
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memComplaintRepo) UpdateStatus(_ context.Context, id uint, status domain.Status) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.complaints[id]
	if !ok {
		return 0, nil
	}
	c.Status = status
	c.UpdatedAt = r.s.tick()
	return 1, nil
}

func (r *memComplaintRepo) Assign(_ context.Context, id uint, a domain.Assignment) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.complaints[id]
	if !ok {
		return 0, nil
	}
	assignee := a.AssignedTo
	c.AssignedTo = &assignee
	c.Urgency = a.Urgency
	c.Deadline = a.Deadline
	c.Status = domain.AssignStatus
	c.UpdatedAt = r.s.tick()
	return 1, nil
}

func (r *memComplaintRepo) Delete(_ context.Context, id uint, ownerID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.complaints[id]
	if !ok || (ownerID != 0 && c.UserID != ownerID) {
		return 0, nil
	}
	delete(r.s.complaints, id)
	for fid, f := range r.s.feedback {
		if f.ComplaintID == id {
			delete(r.s.feedback, fid)
		}
	}
	return 1, nil
}

func (r *memComplaintRepo) CountByStatus(_ context.Context, ownerID uint) ([]models.StatusCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[domain.Status]int64{}
	for _, c := range r.s.complaints {
		if ownerID != 0 && c.UserID != ownerID {
			continue
		}
		counts[c.Status]++
	}
	out := make([]models.StatusCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, models.StatusCount{Status: status, Count: n})
	}
	return out, nil
}

// ---- feedback ----

type memFeedbackRepo struct{ s *memStore }

func (r *memFeedbackRepo) Create(_ context.Context, feedback *models.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.feedback {
		if f.ComplaintID == feedback.ComplaintID && f.UserID == feedback.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	feedback.ID = r.s.id()
	feedback.CreatedAt = r.s.tick()
	cp := *feedback
	r.s.feedback[feedback.ID] = &cp
	return nil
}

func (r *memFeedbackRepo) Exists(_ context.Context, complaintID, userID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.feedback {
		if f.ComplaintID == complaintID && f.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFeedbackRepo) ListByComplaint(_ context.Context, complaintID uint) ([]*models.FeedbackWithUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.FeedbackWithUser{}
	for _, f := range r.s.feedback {
		if f.ComplaintID != complaintID {
			continue
		}
		row := &models.FeedbackWithUser{
			ID:          f.ID,
			ComplaintID: f.ComplaintID,
			UserID:      f.UserID,
			Rating:      f.Rating,
			Comment:     f.Comment,
			CreatedAt:   f.CreatedAt,
		}
		if u, ok := r.s.users[f.UserID]; ok {
			row.FullName = u.FullName
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memFeedbackRepo) Aggregate(_ context.Context) (*models.FeedbackAggregate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	agg := &models.FeedbackAggregate{}
	sum := 0
	for _, f := range r.s.feedback {
		agg.TotalFeedback++
		sum += f.Rating
		if f.Rating >= domain.PositiveRating {
			agg.PositiveFeedback++
		}
		if f.Rating <= domain.NegativeRating {
			agg.NegativeFeedback++
		}
	}
	if agg.TotalFeedback > 0 {
		avg := float64(sum) / float64(agg.TotalFeedback)
		agg.AverageRating = &avg
	}
	return agg, nil
}

// ---- wiring ----

const testSecret = "service-test-secret-with-enough-bytes"

type testEnv struct {
	store      *memStore
	auth       *AuthService
	complaints *ComplaintService
	feedback   *FeedbackService
}

func newTestEnv() *testEnv {
	store := newMemStore()
	users := &memUserRepo{s: store}

	auth := NewAuthService(users, jwt.NewManager(testSecret, time.Hour))
	auth.hashCost = 4 // bcrypt.MinCost keeps tests fast

	complaints := NewComplaintService(&memComplaintRepo{s: store}, users)
	feedback := NewFeedbackService(&memFeedbackRepo{s: store}, complaints)

	return &testEnv{store: store, auth: auth, complaints: complaints, feedback: feedback}
}

// signup registers a user and returns the verified identity from its token
func (e *testEnv) signup(t testing.TB, name, email string, role domain.Role) domain.Identity {
	t.Helper()
	res, err := e.auth.Register(context.Background(), &RegisterInput{
		FullName:   name,
		Email:      email,
		Password:   "secret123",
		Role:       role,
		HostelName: "Block A",
		RoomNumber: "12",
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	identity, err := e.auth.Verify(res.Token)
	if err != nil {
		t.Fatalf("verify %s: %v", email, err)
	}
	return identity
}

func (e *testEnv) file(t testing.TB, caller domain.Identity, title string) *models.Complaint {
	t.Helper()
	c, err := e.complaints.Create(context.Background(), caller, &CreateComplaintInput{
		Title:       title,
		Category:    domain.CategoryPlumbing,
		Description: "Tap is leaking",
		Location:    "Room 12",
		Urgency:     domain.UrgencyHigh,
	})
	if err != nil {
		t.Fatalf("create complaint %q: %v", title, err)
	}
	return c
}
