package auth

import (
	"context"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/internal/repository"
	"github.com/clinicdesk/clinic-api/pkg/auth"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
	"github.com/clinicdesk/clinic-api/pkg/logger"
	"github.com/clinicdesk/clinic-api/pkg/security"
	"github.com/clinicdesk/clinic-api/pkg/validator"
)

type Service struct {
	users    repository.UserRepository
	hasher   security.PasswordHasher
	jwt      auth.JWTService
	validate *validator.Validator
	logger   *logger.Logger
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher, jwt auth.JWTService, logger *logger.Logger) *Service {
	return &Service{
		users:    users,
		hasher:   hasher,
		jwt:      jwt,
		validate: validator.New(),
		logger:   logger,
	}
}

// Login verifies the credentials and issues a token. Unknown usernames
// and bad passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized(err)
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		s.logger.Warn("failed login attempt", "username", req.Username)
		return nil, apperrors.Unauthorized(err)
	}

	token, err := s.jwt.Generate(user.ID, user.EmployeeID, user.Username)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{
		Token:      token,
		Username:   user.Username,
		EmployeeID: user.EmployeeID,
	}, nil
}
