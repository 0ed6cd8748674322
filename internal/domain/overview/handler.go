package overview

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:id/scores", h.Scores)
	api.GET("/patients/:id/dashboard", h.Dashboard)
	api.GET("/patients/:id/timeline", h.Timeline)
	api.GET("/patients/:id/report", h.Report)
	api.GET("/patients/:id/plan/:condition", h.Plan)
}

func patientID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	return id, nil
}

func (h *Handler) Scores(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	results, err := h.svc.Scores(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, results)
}

func (h *Handler) Dashboard(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.Dashboard(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Timeline(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}

	var filter *TimelineFilter
	if tipos := c.QueryParam("tipos"); tipos != "" {
		filter = &TimelineFilter{Types: strings.Split(tipos, ",")}
	}
	if raw := c.QueryParam("periodoDias"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid periodoDias")
		}
		if filter == nil {
			filter = &TimelineFilter{}
		}
		filter.PeriodDays = &days
	}

	events, err := h.svc.Timeline(c.Request().Context(), id, filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, events)
}

func (h *Handler) Report(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}

	if c.QueryParam("formato") == "pdf" {
		pdf, err := h.svc.ReportPDF(c.Request().Context(), id)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
		return c.Blob(http.StatusOK, "application/pdf", pdf)
	}

	rep, err := h.svc.BuildReport(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *Handler) Plan(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	plan, err := h.svc.Plan(c.Request().Context(), id, c.Param("condition"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, plan)
}
