package routes

import (
	"careplus/cmd/internal/service"
	"careplus/cmd/internal/utils/apierror"
	"net/http"

	"github.com/labstack/echo/v4"
)

type SessionService interface {
	Login(req *service.LoginRequest) (*service.SessionResponse, apierror.ErrorResponse)
	Logout() apierror.ErrorResponse
	Current() (*service.UserResponse, apierror.ErrorResponse)
}

type DefaultSessionRoute struct {
	SessionService SessionService
}

func NewSessionDefault(sessionService SessionService) *DefaultSessionRoute {
	return &DefaultSessionRoute{SessionService: sessionService}
}

func (s *DefaultSessionRoute) Login(c echo.Context) error {
	var req service.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := s.SessionService.Login(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *DefaultSessionRoute) Logout(c echo.Context) error {
	if apierr := s.SessionService.Logout(); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (s *DefaultSessionRoute) GetSession(c echo.Context) error {
	user, apierr := s.SessionService.Current()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, user)
}
