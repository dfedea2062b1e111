package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/repository"
)

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
	closeErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*domain.Session{}}
}

func (f *fakeSessionRepo) Create(_ context.Context, s *domain.Session) error {
	copied := *s
	f.sessions[s.ID] = &copied
	return nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id string) (*domain.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) List(_ context.Context) ([]domain.Session, error) {
	out := []domain.Session{}
	for _, s := range f.sessions {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByUID(_ context.Context, uid string) ([]domain.Session, error) {
	out := []domain.Session{}
	for _, s := range f.sessions {
		if s.UID == uid {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Close(_ context.Context, id string, logoutTime time.Time, durationSeconds int64) error {
	if f.closeErr != nil {
		return f.closeErr
	}
	s, ok := f.sessions[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	s.LogoutTime = &logoutTime
	s.DurationSeconds = &durationSeconds
	s.IsActive = false
	return nil
}

type fakeUserRepo struct {
	online  map[string]bool
	lastOut map[string]time.Time
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{online: map[string]bool{}, lastOut: map[string]time.Time{}}
}

func (f *fakeUserRepo) Create(_ context.Context, _ *domain.User) error { return nil }
func (f *fakeUserRepo) Update(_ context.Context, _ *domain.User) error { return nil }
func (f *fakeUserRepo) GetByUID(_ context.Context, _ string) (*domain.User, error) {
	return nil, mongo.ErrNoDocuments
}
func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, mongo.ErrNoDocuments
}
func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) { return nil, nil }
func (f *fakeUserRepo) MarkOnline(_ context.Context, uid string, _ time.Time) error {
	f.online[uid] = true
	return nil
}
func (f *fakeUserRepo) MarkOffline(_ context.Context, uid string, at time.Time) error {
	f.online[uid] = false
	f.lastOut[uid] = at
	return nil
}
func (f *fakeUserRepo) AddProvider(_ context.Context, _, _ string) error { return nil }

type fakeResumeStore struct {
	tokens map[string]string
}

func newFakeResumeStore() *fakeResumeStore {
	return &fakeResumeStore{tokens: map[string]string{}}
}

func (f *fakeResumeStore) Get(_ context.Context, clientID string) (string, error) {
	return f.tokens[clientID], nil
}
func (f *fakeResumeStore) Set(_ context.Context, clientID, sessionID string) error {
	f.tokens[clientID] = sessionID
	return nil
}
func (f *fakeResumeStore) Clear(_ context.Context, clientID string) error {
	delete(f.tokens, clientID)
	return nil
}

var _ repository.SessionRepository = (*fakeSessionRepo)(nil)
var _ repository.UserRepository = (*fakeUserRepo)(nil)
var _ repository.ResumeStore = (*fakeResumeStore)(nil)

func newTestTracker(sessions *fakeSessionRepo, users *fakeUserRepo, resume *fakeResumeStore) *SessionService {
	return NewSessionService(SessionDependencies{
		SessionRepo: sessions,
		UserRepo:    users,
		Resume:      resume,
	}, zap.NewNop())
}

func TestSessionRoundTrip(t *testing.T) {
	sessions := newFakeSessionRepo()
	users := newFakeUserRepo()
	resume := newFakeResumeStore()
	tracker := newTestTracker(sessions, users, resume)

	loginAt := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return loginAt }

	ctx := context.Background()
	id, err := tracker.StartSession(ctx, "client-1", "uid-1", "Ana Ruiz", "ana@municipio.gob", "password")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if resume.tokens["client-1"] != id {
		t.Error("resume token not stored")
	}
	if !users.online["uid-1"] {
		t.Error("user not marked online")
	}

	// Sign out 90.7 seconds later; duration must floor to 90.
	tracker.now = func() time.Time { return loginAt.Add(90*time.Second + 700*time.Millisecond) }
	if err := tracker.EndSession(ctx, "client-1"); err != nil {
		t.Fatalf("EndSession failed: %v", err)
	}

	closed := sessions.sessions[id]
	if closed.IsActive {
		t.Error("session still active after close")
	}
	if closed.LogoutTime == nil {
		t.Fatal("logout time not set")
	}
	if closed.DurationSeconds == nil || *closed.DurationSeconds != 90 {
		t.Errorf("Expected duration 90, got %v", closed.DurationSeconds)
	}
	if _, ok := resume.tokens["client-1"]; ok {
		t.Error("resume token not cleared")
	}
	if users.online["uid-1"] {
		t.Error("user still marked online")
	}
}

func TestEndSessionWithoutStartIsNoOp(t *testing.T) {
	sessions := newFakeSessionRepo()
	tracker := newTestTracker(sessions, newFakeUserRepo(), newFakeResumeStore())

	if err := tracker.EndSession(context.Background(), "client-without-session"); err != nil {
		t.Errorf("Expected no-op, got %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Error("No record should have been written")
	}
}

func TestEndSessionMissingLoginTimeDefaultsToZero(t *testing.T) {
	sessions := newFakeSessionRepo()
	resume := newFakeResumeStore()
	tracker := newTestTracker(sessions, newFakeUserRepo(), resume)

	// Corrupt record without a login time.
	sessions.sessions["s-1"] = &domain.Session{ID: "s-1", UID: "uid-1", IsActive: true}
	resume.tokens["client-1"] = "s-1"

	if err := tracker.EndSession(context.Background(), "client-1"); err != nil {
		t.Fatalf("EndSession failed: %v", err)
	}
	closed := sessions.sessions["s-1"]
	if closed.DurationSeconds == nil || *closed.DurationSeconds != 0 {
		t.Errorf("Expected duration 0 for corrupt record, got %v", closed.DurationSeconds)
	}
}

func TestEndSessionStaleTokenClears(t *testing.T) {
	resume := newFakeResumeStore()
	resume.tokens["client-1"] = "missing-session"
	tracker := newTestTracker(newFakeSessionRepo(), newFakeUserRepo(), resume)

	if err := tracker.EndSession(context.Background(), "client-1"); err != nil {
		t.Errorf("Stale token should close silently, got %v", err)
	}
	if _, ok := resume.tokens["client-1"]; ok {
		t.Error("Stale resume token should be dropped")
	}
}

func TestEndSessionCloseFailureKeepsToken(t *testing.T) {
	sessions := newFakeSessionRepo()
	resume := newFakeResumeStore()
	tracker := newTestTracker(sessions, newFakeUserRepo(), resume)

	sessions.sessions["s-1"] = &domain.Session{ID: "s-1", UID: "uid-1", LoginTime: time.Now(), IsActive: true}
	resume.tokens["client-1"] = "s-1"
	sessions.closeErr = errors.New("write rejected")

	if err := tracker.EndSession(context.Background(), "client-1"); err == nil {
		t.Error("Expected close failure to surface")
	}
	if _, ok := resume.tokens["client-1"]; !ok {
		t.Error("Token must survive a failed close so a retry can find the record")
	}
}
