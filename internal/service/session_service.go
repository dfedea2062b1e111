package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/events"
	"github.com/spec-kit/tramites-portal/internal/repository"
)

// SessionService owns the lifecycle of login session records: creation at
// sign-in, duration computation and closure at sign-out. The resume store
// stands in for the client's local storage, so a sign-out after a reconnect
// can still locate the right record.
type SessionService struct {
	sessions   repository.SessionRepository
	users      repository.UserRepository
	resume     repository.ResumeStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// SessionDependencies bundles requirements for the tracker.
type SessionDependencies struct {
	SessionRepo repository.SessionRepository
	UserRepo    repository.UserRepository
	Resume      repository.ResumeStore
	Dispatcher  events.Dispatcher
}

// NewSessionService builds the service.
func NewSessionService(deps SessionDependencies, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessions:   deps.SessionRepo,
		users:      deps.UserRepo,
		resume:     deps.Resume,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// StartSession records a new active session for a successful sign-in of any
// kind and stores its id under the caller's client id.
func (s *SessionService) StartSession(ctx context.Context, clientID, uid, displayName, email, provider string) (string, error) {
	session := &domain.Session{
		ID:          uuid.NewString(),
		UID:         uid,
		DisplayName: displayName,
		Email:       email,
		Provider:    provider,
		LoginTime:   s.now(),
		IsActive:    true,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}

	if err := s.resume.Set(ctx, clientID, session.ID); err != nil {
		return "", err
	}

	if err := s.users.MarkOnline(ctx, uid, session.LoginTime); err != nil {
		// Presence is bookkeeping; the session record is already in place.
		s.logger.Warn("failed to mark user online", zap.String("uid", uid), zap.Error(err))
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSessionStarted,
		UID:       uid,
		Timestamp: session.LoginTime,
		Payload:   events.SessionStartedPayload{SessionID: session.ID, Provider: provider},
	})

	return session.ID, nil
}

// EndSession closes the session recorded for the client id. A missing
// resume token or session record is a normal condition and a no-op. Any
// returned error is non-fatal to the sign-out itself; callers surface it as
// a notice and proceed.
func (s *SessionService) EndSession(ctx context.Context, clientID string) error {
	sessionID, err := s.resume.Get(ctx, clientID)
	if err != nil {
		return err
	}
	if sessionID == "" {
		return nil
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Record vanished; nothing to close, drop the stale token.
			_ = s.resume.Clear(ctx, clientID)
			return nil
		}
		return err
	}

	logoutTime := s.now()

	// Duration comes from the record's own login time, never a client
	// estimate. A corrupt record without one closes with duration 0.
	var duration int64
	if !session.LoginTime.IsZero() {
		duration = int64(logoutTime.Sub(session.LoginTime) / time.Second)
		if duration < 0 {
			duration = 0
		}
	}

	if err := s.sessions.Close(ctx, sessionID, logoutTime, duration); err != nil {
		s.logger.Error("failed to close session", zap.String("session_id", sessionID), zap.Error(err))
		return err
	}

	if err := s.users.MarkOffline(ctx, session.UID, logoutTime); err != nil {
		s.logger.Warn("failed to mark user offline", zap.String("uid", session.UID), zap.Error(err))
	}

	if err := s.resume.Clear(ctx, clientID); err != nil {
		s.logger.Warn("failed to clear resume token", zap.String("client_id", clientID), zap.Error(err))
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSessionEnded,
		UID:       session.UID,
		Timestamp: logoutTime,
		Payload:   events.SessionEndedPayload{SessionID: sessionID, DurationSeconds: duration},
	})

	return nil
}

// ListSessions returns the login log for the admin dashboard.
func (s *SessionService) ListSessions(ctx context.Context, actor *domain.User) ([]domain.Session, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.sessions.List(ctx)
}

// ListSessionsByUser returns one account's login history.
func (s *SessionService) ListSessionsByUser(ctx context.Context, actor *domain.User, uid string) ([]domain.Session, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.sessions.ListByUID(ctx, uid)
}

func (s *SessionService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
