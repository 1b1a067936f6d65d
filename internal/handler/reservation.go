package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aolivares/school-library-service/internal/model"
)

func (h *Handler) CreateReservation(c echo.Context) error {
	var req model.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rsv, err := h.reservationSvc.CreateReservation(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, rsv)
}

func (h *Handler) GetReservation(c echo.Context) error {
	rsv, err := h.reservationSvc.GetReservation(c.Request().Context(), c.Param("reservationUid"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, rsv)
}

func (h *Handler) ListReservations(c echo.Context) error {
	page, size, err := pageSize(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var status model.ReservationStatus
	switch s := c.QueryParam("status"); s {
	case "", string(model.ReservationActive), string(model.ReservationFulfilled),
		string(model.ReservationCancelled), string(model.ReservationExpired):
		status = model.ReservationStatus(s)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "status is invalid")
	}

	rsvs, err := h.reservationSvc.ListReservations(c.Request().Context(), c.QueryParam("studentUid"), status, page, size)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, rsvs)
}

func (h *Handler) CancelReservation(c echo.Context) error {
	reservationUid := c.Param("reservationUid")
	if reservationUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reservationUid is empty")
	}
	rsv, err := h.reservationSvc.CancelReservation(c.Request().Context(), reservationUid)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, rsv)
}

func (h *Handler) FulfillReservation(c echo.Context) error {
	reservationUid := c.Param("reservationUid")
	if reservationUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reservationUid is empty")
	}
	var req model.FulfillReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	loan, err := h.reservationSvc.FulfillReservation(c.Request().Context(), reservationUid, req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, loan)
}
