package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eaglebank/signup-service/internal/metrics"
	"github.com/eaglebank/signup-service/internal/repository"
	"github.com/eaglebank/signup-service/shared/cqrs"
	"github.com/eaglebank/signup-service/shared/events"
	"github.com/eaglebank/signup-service/shared/logger"
	"github.com/eaglebank/signup-service/shared/models"
	"go.uber.org/zap"
)

type UserWriter interface {
	Create(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

type ProfileWriter interface {
	Create(ctx context.Context, profile *models.Profile) error
}

type ViewCacher interface {
	CacheView(ctx context.Context, view *models.ProvisionedUserView)
	InvalidateView(ctx context.Context, userID string)
}

type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

type Options struct {
	// Compensate deletes the user row when the profile insert fails.
	Compensate bool
	Metrics    *metrics.Metrics
	Now        func() time.Time
}

// ProvisionResult describes a signup whose user and profile rows both exist.
type ProvisionResult struct {
	User    *models.User
	Profile *models.Profile
	Message string
}

// SignupCommandService writes the user row, then the profile row, and deletes the
// user row again if the profile cannot be written. The writes are sequential and
// not wrapped in a transaction.
type SignupCommandService struct {
	users      UserWriter
	profiles   ProfileWriter
	views      ViewCacher
	publisher  EventPublisher
	compensate bool
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewSignupCommandService(
	users UserWriter,
	profiles ProfileWriter,
	views ViewCacher,
	publisher EventPublisher,
	opts Options,
) *SignupCommandService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SignupCommandService{
		users:      users,
		profiles:   profiles,
		views:      views,
		publisher:  publisher,
		compensate: opts.Compensate,
		metrics:    opts.Metrics,
		now:        opts.Now,
	}
}

func (s *SignupCommandService) ProvisionSignup(ctx context.Context, cmd cqrs.ProvisionSignupCommand) (*ProvisionResult, error) {
	if cmd.UserID == "" || cmd.Email == "" {
		return nil, ErrInvalidPayload
	}
	log := logger.From(ctx).With(logger.UserID(cmd.UserID), logger.Email(cmd.Email))
	now := s.now().UTC()

	user := &models.User{ID: cmd.UserID, Email: cmd.Email, CreatedAt: now}
	if err := s.users.Create(ctx, user); err != nil {
		log.Error("failed to insert user", logger.Op("insert_user"), logger.Err(err))
		s.metrics.Provisioning(metrics.ResultUserWriteFailed)
		return nil, &ProvisionError{Kind: ErrUserWriteFailed, Cause: err, Compensation: CompensationNotAttempted}
	}

	profile := &models.Profile{
		Email:     cmd.Email,
		FirstName: cmd.Metadata.FirstName,
		LastName:  cmd.Metadata.LastName,
		PhoneNo:   cmd.Metadata.PhoneNo,
		CreatedAt: now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		log.Error("failed to insert profile", logger.Op("insert_profile"), logger.Err(err))
		perr := &ProvisionError{Kind: ErrProfileWriteFailed, Cause: err}
		s.rollbackUser(ctx, log, user.ID, perr)
		s.metrics.Provisioning(metrics.ResultProfileWriteFailed)
		return nil, perr
	}

	s.views.CacheView(ctx, &models.ProvisionedUserView{
		ID:    user.ID,
		Email: user.Email,
		Profile: &models.ProfileView{
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			PhoneNo:   profile.PhoneNo,
		},
		CreatedAt: user.CreatedAt,
	})
	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserProvisioned, events.UserProvisionedEvent{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		log.Warn("failed to publish user.provisioned event", logger.Err(err))
	}

	s.metrics.Provisioning(metrics.ResultProvisioned)
	log.Info("provisioned user and profile")
	return &ProvisionResult{
		User:    user,
		Profile: profile,
		Message: fmt.Sprintf("User profile created successfully for %s", user.Email),
	}, nil
}

// rollbackUser runs the compensating delete and records its outcome on perr.
// The delete ignores cancellation of ctx so a dropped client cannot strand the orphan.
func (s *SignupCommandService) rollbackUser(ctx context.Context, log *zap.Logger, userID string, perr *ProvisionError) {
	log = log.With(logger.Op("compensate_user"))
	if !s.compensate {
		perr.Compensation = CompensationDisabled
		log.Error("compensation disabled, user row left without profile")
		s.metrics.Compensation(string(perr.Compensation))
		return
	}

	cctx := context.WithoutCancel(ctx)
	err := s.users.Delete(cctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		perr.Compensation = CompensationCleanedUp
		log.Warn("compensating delete found no user row")
	case err != nil:
		perr.Compensation = CompensationFailed
		perr.CompensationErr = err
		log.Error("compensating delete failed, orphan user row may remain", logger.Err(err))
	default:
		perr.Compensation = CompensationCleanedUp
		log.Warn("compensating delete removed user row")
	}
	s.views.InvalidateView(cctx, userID)
	s.metrics.Compensation(string(perr.Compensation))
}
