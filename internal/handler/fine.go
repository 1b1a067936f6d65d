package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aolivares/school-library-service/internal/model"
)

func (h *Handler) CreateFine(c echo.Context) error {
	var req model.CreateFineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fine, err := h.fineSvc.CreateFine(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, fine)
}

func (h *Handler) GetFine(c echo.Context) error {
	fine, err := h.fineSvc.GetFine(c.Request().Context(), c.Param("fineUid"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, fine)
}

func (h *Handler) ListFines(c echo.Context) error {
	page, size, err := pageSize(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var status model.FineStatus
	switch s := c.QueryParam("status"); s {
	case "", string(model.FinePending), string(model.FinePaid):
		status = model.FineStatus(s)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "status is invalid")
	}

	fines, err := h.fineSvc.ListFines(c.Request().Context(), c.QueryParam("studentUid"), status, page, size)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, fines)
}

func (h *Handler) PayFine(c echo.Context) error {
	fineUid := c.Param("fineUid")
	if fineUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "fineUid is empty")
	}
	fine, err := h.fineSvc.PayFine(c.Request().Context(), fineUid)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, fine)
}
