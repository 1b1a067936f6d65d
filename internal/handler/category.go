package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aolivares/school-library-service/internal/model"
)

func (h *Handler) CreateCategory(c echo.Context) error {
	var req model.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.catalogSvc.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *Handler) GetCategory(c echo.Context) error {
	category, err := h.catalogSvc.GetCategory(c.Request().Context(), c.Param("categoryUid"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *Handler) ListCategories(c echo.Context) error {
	categories, err := h.catalogSvc.ListCategories(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *Handler) UpdateCategory(c echo.Context) error {
	var req model.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.catalogSvc.UpdateCategory(c.Request().Context(), c.Param("categoryUid"), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c echo.Context) error {
	if err := h.catalogSvc.DeleteCategory(c.Request().Context(), c.Param("categoryUid")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
