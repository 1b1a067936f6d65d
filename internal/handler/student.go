package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aolivares/school-library-service/internal/model"
)

func (h *Handler) CreateStudent(c echo.Context) error {
	var req model.CreateStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	student, err := h.catalogSvc.CreateStudent(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, student)
}

func (h *Handler) GetStudent(c echo.Context) error {
	student, err := h.catalogSvc.GetStudent(c.Request().Context(), c.Param("studentUid"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, student)
}

func (h *Handler) ListStudents(c echo.Context) error {
	page, size, err := pageSize(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	students, err := h.catalogSvc.ListStudents(c.Request().Context(), page, size)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, students)
}

func (h *Handler) UpdateStudent(c echo.Context) error {
	var req model.UpdateStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	student, err := h.catalogSvc.UpdateStudent(c.Request().Context(), c.Param("studentUid"), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, student)
}

func (h *Handler) DeleteStudent(c echo.Context) error {
	if err := h.catalogSvc.DeleteStudent(c.Request().Context(), c.Param("studentUid")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
