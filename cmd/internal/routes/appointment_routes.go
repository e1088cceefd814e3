package routes

import (
	"careplus/cmd/internal/service"
	"careplus/cmd/internal/utils"
	"careplus/cmd/internal/utils/apierror"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type AppointmentService interface {
	Book(req *service.BookRequest, patientID string) (*service.AppointmentResponse, apierror.ErrorResponse)
	AvailableSlots(doctorID, date string) (*service.CalendarResponse, apierror.ErrorResponse)
	SetStatus(id, status string) (*service.AppointmentResponse, apierror.ErrorResponse)
	GetAppointments(issuer *utils.TokenData) ([]*service.AppointmentResponse, apierror.ErrorResponse)
}

type DefaultAppointmentRoute struct {
	AppointmentService AppointmentService
}

func NewAppointmentDefault(apptService AppointmentService) *DefaultAppointmentRoute {
	return &DefaultAppointmentRoute{AppointmentService: apptService}
}

func (a *DefaultAppointmentRoute) GetAppointments(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	appts, apierr := a.AppointmentService.GetAppointments(data)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"appointments": appts}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAppointmentRoute) CreateAppointment(c echo.Context) error {
	var req service.BookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	appt, apierr := a.AppointmentService.Book(&req, data.Sub)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, appt)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (a *DefaultAppointmentRoute) UpdateStatus(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	if _, err := utils.ParseTokenDataCtx(c); err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	appt, apierr := a.AppointmentService.SetStatus(id, strings.TrimSpace(req.Status))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, appt)
}

// GetCalendar answers "which slots can still be booked" for one doctor on
// one date.
func (a *DefaultAppointmentRoute) GetCalendar(c echo.Context) error {
	doctorID := strings.TrimSpace(c.QueryParam("doctor_id"))
	if doctorID == "" {
		return c.JSON(400, apierror.NewMissingParamError("doctor_id"))
	}
	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		return c.JSON(400, apierror.NewMissingParamError("date"))
	}

	calendar, apierr := a.AppointmentService.AvailableSlots(doctorID, date)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, calendar)
}
