package service

import (
	"careplus/cmd/internal/domain/entity"
	"careplus/cmd/internal/records"
	"careplus/cmd/internal/utils"
	"careplus/cmd/internal/utils/apierror"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type SessionStore interface {
	Authenticate(email, password string) (*entity.User, error)
	SetSession(u entity.User) error
	Session() *entity.User
	ClearSession() error
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=64"`
}

type DefaultSessionService struct {
	Store    SessionStore
	Validate *validator.Validate
}

func NewSessionService(store SessionStore, validate *validator.Validate) *DefaultSessionService {
	return &DefaultSessionService{Store: store, Validate: validate}
}

// Login matches the credentials against the user collection, exact and
// case-sensitive on both fields. On success the user becomes the single
// active session; on failure any existing session is left untouched.
func (s *DefaultSessionService) Login(req *LoginRequest) (*SessionResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := s.Store.Authenticate(req.Email, req.Password)
	if errors.Is(err, records.ErrInvalidCredentials) {
		return nil, apierror.InvalidCredentialsError
	}
	if err != nil {
		log.Errorf("failed to authenticate %s: %v", req.Email, err)
		return nil, apierror.InternalServerError
	}

	if err := s.Store.SetSession(*user); err != nil {
		log.Errorf("failed to persist session for user %s: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	token, err := utils.NewToken(user.ID, string(user.Role))
	if err != nil {
		log.Errorf("failed to issue token for user %s: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}
	return &SessionResponse{User: toUserResponse(user), Token: token}, nil
}

// Logout clears the active session. Logging out with no session is fine.
func (s *DefaultSessionService) Logout() apierror.ErrorResponse {
	if err := s.Store.ClearSession(); err != nil {
		log.Errorf("failed to clear session: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

// Current returns the persisted active session, if any. The session is
// restored verbatim across restarts and is not re-checked against the user
// collection.
func (s *DefaultSessionService) Current() (*UserResponse, apierror.ErrorResponse) {
	user := s.Store.Session()
	if user == nil {
		return nil, apierror.NoActiveSessionError
	}
	return toUserResponse(user), nil
}
