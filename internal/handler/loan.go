package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aolivares/school-library-service/internal/model"
)

func (h *Handler) CreateLoan(c echo.Context) error {
	var req model.CreateLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	loan, err := h.loanSvc.CreateLoan(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

func (h *Handler) GetLoan(c echo.Context) error {
	loanUid := c.Param("loanUid")
	loan, err := h.loanSvc.GetLoan(c.Request().Context(), loanUid)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) ListLoans(c echo.Context) error {
	page, size, err := pageSize(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var status model.LoanStatus
	switch s := c.QueryParam("status"); s {
	case "", string(model.LoanActive), string(model.LoanReturned):
		status = model.LoanStatus(s)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "status is invalid")
	}

	loans, err := h.loanSvc.ListLoans(c.Request().Context(), status, page, size)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) RecordReturn(c echo.Context) error {
	loanUid := c.Param("loanUid")
	if loanUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "loanUid is empty")
	}
	var req model.CreateReturnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ret, err := h.loanSvc.RecordReturn(c.Request().Context(), loanUid, req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, ret)
}

func (h *Handler) GetReturn(c echo.Context) error {
	ret, err := h.loanSvc.GetReturn(c.Request().Context(), c.Param("returnUid"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, ret)
}

func (h *Handler) ListReturns(c echo.Context) error {
	page, size, err := pageSize(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	returns, err := h.loanSvc.ListReturns(c.Request().Context(), page, size)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, returns)
}
