package users

import (
	"context"

	"github.com/dmitrijs2005/accountd/internal/auth"
	"github.com/dmitrijs2005/accountd/internal/common"
	"github.com/dmitrijs2005/accountd/internal/confirmation"
	"github.com/dmitrijs2005/accountd/internal/logging"
	"github.com/dmitrijs2005/accountd/internal/notify"
)

// Service orchestrates the account lifecycle: registration, activation,
// login, and password reset. Each user moves through
// Unregistered → PendingActivation → Active; password reset is an orthogonal
// operation gated only by a valid confirmation code.
//
// Every mutation of User/Profile routes through the Directory so the cached
// projection stays coherent with the durable store.
type Service struct {
	directory *Directory
	hasher    auth.Hasher
	tokens    *auth.TokenService
	codes     *confirmation.Service
	notifier  notify.Dispatcher
	logger    logging.Logger
}

func NewService(
	directory *Directory,
	hasher auth.Hasher,
	tokens *auth.TokenService,
	codes *confirmation.Service,
	notifier notify.Dispatcher,
	logger logging.Logger,
) *Service {
	return &Service{
		directory: directory,
		hasher:    hasher,
		tokens:    tokens,
		codes:     codes,
		notifier:  notifier,
		logger:    logger.With("module", "account_service"),
	}
}

// RegistrationInput is the raw registration request before hashing.
type RegistrationInput struct {
	Email     string
	Password  string
	FirstName *string
	LastName  *string
}

type confirmationKind int

const (
	confirmActivation confirmationKind = iota
	confirmResetPassword
)

// sendConfirmation issues a fresh code (replacing any prior one) and
// dispatches the matching notification. Dispatch failures are logged, not
// returned: the account operation already succeeded and the user can always
// request a resend.
func (s *Service) sendConfirmation(ctx context.Context, info *UserInfo, kind confirmationKind) error {
	code, err := s.codes.Issue(ctx, info.UserID)
	if err != nil {
		return err
	}

	expiresIn := int64(s.codes.CodeTTL().Seconds())

	var msgContext notify.Context
	switch kind {
	case confirmResetPassword:
		msgContext = notify.ResetPasswordContext{
			FirstName: info.Profile.FirstName,
			LastName:  info.Profile.LastName,
			Code:      code,
			ExpiresIn: expiresIn,
		}
	default:
		msgContext = notify.ActivationContext{
			FirstName: info.Profile.FirstName,
			LastName:  info.Profile.LastName,
			Code:      code,
			ExpiresIn: expiresIn,
		}
	}

	msg := notify.Message{To: info.Email, Context: msgContext}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Error(ctx, "notification dispatch failed", "user_id", info.UserID, "error", err)
	}
	return nil
}

// Register creates an inactive user with its profile, issues a confirmation
// code, and dispatches the activation notification. A taken email yields
// common.ErrUserAlreadyExists.
func (s *Service) Register(ctx context.Context, input *RegistrationInput) (*UserInfo, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	info, err := s.directory.Create(ctx, &Registration{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	})
	if err != nil {
		return nil, err
	}

	if err := s.sendConfirmation(ctx, info, confirmActivation); err != nil {
		return nil, common.ErrorInternal
	}
	return info, nil
}

// Login verifies credentials and issues a session token pair. An inactive
// account is rejected before the password is even checked.
func (s *Service) Login(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	creds, err := s.directory.GetCredentialsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !creds.IsActive {
		return nil, common.ErrUserNotActivated
	}
	if !s.hasher.Verify(password, creds.PasswordHash) {
		return nil, common.ErrInvalidPassword
	}

	return s.tokens.IssueSession(creds.UserID)
}

// RefreshToken exchanges a valid refresh token for a fresh access token.
func (s *Service) RefreshToken(refreshToken string) (*auth.AccessToken, error) {
	return s.tokens.RefreshToAccess(refreshToken)
}

// GetUserInfo returns the user projection for user_id.
func (s *Service) GetUserInfo(ctx context.Context, userID int64) (*UserInfo, error) {
	return s.directory.GetUserInfo(ctx, userID)
}

// UpdateProfile overwrites the provided profile fields. An update with no
// fields set is a validation error.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*Profile, error) {
	if update.Empty() {
		return nil, common.ErrValidation
	}
	return s.directory.UpdateProfile(ctx, userID, update)
}

// ResendActivation issues a new confirmation code (implicitly invalidating
// the prior one) and dispatches a fresh activation notification.
func (s *Service) ResendActivation(ctx context.Context, email string) error {
	info, err := s.directory.GetUserInfoByEmail(ctx, email)
	if err != nil {
		return err
	}
	if info.IsActive {
		return common.ErrUserAlreadyActivated
	}

	if err := s.sendConfirmation(ctx, &info.UserInfo, confirmActivation); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// Activate flips the account to active when the confirmation code matches.
func (s *Service) Activate(ctx context.Context, email, code string) error {
	creds, err := s.directory.GetCredentialsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if creds.IsActive {
		return common.ErrUserAlreadyActivated
	}

	ok, err := s.codes.Verify(ctx, creds.UserID, code)
	if err != nil {
		return common.ErrorInternal
	}
	if !ok {
		return common.ErrInvalidConfirmationCode
	}

	return s.directory.Activate(ctx, creds.UserID)
}

// ResetPasswordRequest issues a confirmation code and dispatches the
// reset-password notification.
func (s *Service) ResetPasswordRequest(ctx context.Context, email string) error {
	info, err := s.directory.GetUserInfoByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.sendConfirmation(ctx, &info.UserInfo, confirmResetPassword); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// ResetPassword overwrites the password hash when the confirmation code
// matches.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	creds, err := s.directory.GetCredentialsByEmail(ctx, email)
	if err != nil {
		return err
	}

	ok, err := s.codes.Verify(ctx, creds.UserID, code)
	if err != nil {
		return common.ErrorInternal
	}
	if !ok {
		return common.ErrInvalidConfirmationCode
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return common.ErrorInternal
	}

	return s.directory.ChangePassword(ctx, creds.UserID, hash)
}
