package service

import (
	"careplus/cmd/internal/domain/entity"
	"careplus/cmd/internal/records"
	"careplus/cmd/internal/utils"
	"careplus/cmd/internal/utils/apierror"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type UserStore interface {
	CreateUser(candidate entity.User) (*entity.User, error)
	DeleteUser(id string) error
	UserByID(id string) *entity.User
	Users() []entity.User
	SetSession(u entity.User) error
}

type RegisterRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=80"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=1,max=64"`
	Role           string `json:"role" validate:"omitempty,oneof=patient doctor"`
	Specialization string `json:"specialization" validate:"max=80"`
	Bio            string `json:"bio" validate:"max=500"`
	Image          string `json:"image" validate:"omitempty,url"`
}

type UserResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Specialization string `json:"specialization,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Image          string `json:"image,omitempty"`
}

// SessionResponse is returned by registration and login: the authenticated
// user plus the bearer token for subsequent requests.
type SessionResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

type DefaultUserService struct {
	Store    UserStore
	Validate *validator.Validate
}

func NewUserService(store UserStore, validate *validator.Validate) *DefaultUserService {
	return &DefaultUserService{Store: store, Validate: validate}
}

// Register creates a new user. The role defaults to patient; admin accounts
// can never be self-registered. A successful registration also signs the
// new user in.
func (u *DefaultUserService) Register(req *RegisterRequest) (*SessionResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := u.Store.CreateUser(entity.User{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Role:           entity.Role(req.Role),
		Specialization: req.Specialization,
		Bio:            req.Bio,
		Image:          req.Image,
	})
	if errors.Is(err, records.ErrDuplicateEmail) {
		return nil, apierror.DuplicateEmailError
	}
	if err != nil {
		log.Errorf("failed to create user (%s): %v", req.Email, err)
		return nil, apierror.InternalServerError
	}

	if err := u.Store.SetSession(*user); err != nil {
		log.Errorf("failed to persist session for new user %s: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	token, err := utils.NewToken(user.ID, string(user.Role))
	if err != nil {
		log.Errorf("failed to issue token for user %s: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}
	return &SessionResponse{User: toUserResponse(user), Token: token}, nil
}

// GetUsers returns the full roster. Admin only.
func (u *DefaultUserService) GetUsers(issuer *utils.TokenData) ([]*UserResponse, apierror.ErrorResponse) {
	if issuer.Role != string(entity.RoleAdmin) {
		return nil, apierror.ForbiddenError
	}

	users := u.Store.Users()
	resp := make([]*UserResponse, len(users))
	for i := range users {
		resp[i] = toUserResponse(&users[i])
	}
	return resp, nil
}

// GetDoctors returns the doctor directory, optionally narrowed by a
// case-insensitive substring match on name or specialization.
func (u *DefaultUserService) GetDoctors(search string) ([]*UserResponse, apierror.ErrorResponse) {
	search = strings.ToLower(strings.TrimSpace(search))

	resp := make([]*UserResponse, 0)
	for _, user := range u.Store.Users() {
		if user.Role != entity.RoleDoctor {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(user.Name), search) &&
			!strings.Contains(strings.ToLower(user.Specialization), search) {
			continue
		}
		resp = append(resp, toUserResponse(&user))
	}
	return resp, nil
}

// DeleteUser removes a user and every appointment referencing them. Admin
// only, and admin accounts themselves cannot be deleted.
func (u *DefaultUserService) DeleteUser(id string, issuer *utils.TokenData) apierror.ErrorResponse {
	if issuer.Role != string(entity.RoleAdmin) {
		return apierror.ForbiddenError
	}

	target := u.Store.UserByID(id)
	if target == nil {
		return apierror.NotFoundError
	}
	if target.Role == entity.RoleAdmin {
		return apierror.ForbiddenError
	}

	err := u.Store.DeleteUser(id)
	if errors.Is(err, records.ErrNotFound) {
		return apierror.NotFoundError
	}
	if err != nil {
		log.Errorf("failed to delete user %s: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

func toUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           string(user.Role),
		Specialization: user.Specialization,
		Bio:            user.Bio,
		Image:          user.Image,
	}
}
