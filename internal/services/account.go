package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/cryptox"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
	"github.com/dmitrijs2005/gophsocial/internal/models"
	"github.com/dmitrijs2005/gophsocial/internal/repositories/users"
	"github.com/dmitrijs2005/gophsocial/internal/session"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("handle", validateHandle)
}

// validateHandle rejects handles containing whitespace.
func validateHandle(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}

// RegisterRequest carries the fields of a new account.
type RegisterRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Handle   string `validate:"required,max=32,handle"`
	Password []byte `validate:"required,min=1"`
}

// AccountOptions tune authentication policy.
type AccountOptions struct {
	// LegacyLogin lets accounts imported without a password hash sign in
	// with any password. Off by default.
	LegacyLogin bool
}

type AccountService struct {
	repo   users.Repository
	logger logging.Logger
	opts   AccountOptions
}

func NewAccountService(repo users.Repository, logger logging.Logger, opts AccountOptions) *AccountService {
	return &AccountService{repo: repo, logger: logger.With("service", "account"), opts: opts}
}

// Register validates req, hashes the password and stores the account.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (models.Profile, error) {
	if err := validateRequest(req); err != nil {
		return models.Profile{}, err
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return models.Profile{}, err
	}

	u, err := s.repo.Create(ctx, &models.User{
		Name:       req.Name,
		Email:      req.Email,
		Handle:     req.Handle,
		Credential: models.HashedCredential(hash),
	})
	if err != nil {
		s.logFailure(ctx, "register failed", err, "handle", req.Handle)
		return models.Profile{}, err
	}

	s.logger.Info(ctx, "user registered", "handle", u.Handle)
	return u.Profile(), nil
}

// Authenticate checks password against the stored credential of handle.
func (s *AccountService) Authenticate(ctx context.Context, handle string, password []byte) (models.Profile, error) {
	u, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		s.logFailure(ctx, "authentication failed", err, "handle", handle)
		return models.Profile{}, err
	}

	switch u.Credential.Kind {
	case models.CredentialLegacy:
		if !s.opts.LegacyLogin {
			s.logger.Warn(ctx, "legacy account rejected, enable legacy_login (-l) to allow it", "handle", handle)
			return models.Profile{}, common.ErrInvalidCredential
		}
		s.logger.Warn(ctx, "legacy account signed in without password check", "handle", handle)
	default:
		if err := cryptox.VerifyPassword(u.Credential.Hash, password); err != nil {
			s.logFailure(ctx, "authentication failed", err, "handle", handle)
			return models.Profile{}, err
		}
	}

	return u.Profile(), nil
}

// Login authenticates and installs handle into sess.
func (s *AccountService) Login(ctx context.Context, sess *session.Session, handle string, password []byte) (models.Profile, error) {
	p, err := s.Authenticate(ctx, handle, password)
	if err != nil {
		return models.Profile{}, err
	}
	sess.SignIn(p.Handle, p)
	s.logger.Info(ctx, "user logged in", "handle", p.Handle)
	return p, nil
}

// Logout clears sess. It fails with common.ErrUnauthenticated when nobody is
// signed in.
func (s *AccountService) Logout(ctx context.Context, sess *session.Session) error {
	handle, err := sess.Handle()
	if err != nil {
		return err
	}
	sess.SignOut()
	s.logger.Info(ctx, "user logged out", "handle", handle)
	return nil
}

func (s *AccountService) logFailure(ctx context.Context, msg string, err error, args ...any) {
	logFailure(ctx, s.logger, msg, err, args...)
}

func validateRequest(req RegisterRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "email is not a valid address"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "handle":
		return "handle must not contain whitespace"
	}
	return fmt.Sprintf("%s is invalid", field)
}

// logFailure logs infrastructure errors at Error and domain errors at Warn.
func logFailure(ctx context.Context, logger logging.Logger, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if common.IsFatal(err) || errors.Is(err, common.ErrQuery) {
		logger.Error(ctx, msg, args...)
		return
	}
	logger.Warn(ctx, msg, args...)
}
