package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/leolovestravel/vietnamtravel/internal/models"
	"github.com/leolovestravel/vietnamtravel/internal/remote"
	"github.com/leolovestravel/vietnamtravel/internal/web"
)

const categoryManagementPath = "/admin/category-management"

func (h *AdminHandler) Categories(c echo.Context) error {
	mgr := sessionFrom(c)
	view := web.View{Title: "Category management"}

	list, err := h.categories.Categories(c.Request().Context(), mgr.AuthHeaders())
	if err != nil {
		view.Error = remote.UserMessage(err)
		list = []models.Category{}
	}
	view.Data = map[string]interface{}{"Categories": list}
	return render(c, http.StatusOK, "admin/categories.html", view)
}

func (h *AdminHandler) AddCategory(c echo.Context) error {
	mgr := sessionFrom(c)
	if err := h.categories.Add(c.Request().Context(), mgr.AuthHeaders(), c.FormValue("name")); err != nil {
		return redirectWithFlash(c, categoryManagementPath, errorMessage(err))
	}
	return redirectWithFlash(c, categoryManagementPath, "Category added.")
}

func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return redirectWithFlash(c, categoryManagementPath, "Unknown category.")
	}

	mgr := sessionFrom(c)
	if err := h.categories.Update(c.Request().Context(), mgr.AuthHeaders(), id, c.FormValue("name")); err != nil {
		return redirectWithFlash(c, categoryManagementPath, errorMessage(err))
	}
	return redirectWithFlash(c, categoryManagementPath, "Category renamed.")
}

func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return redirectWithFlash(c, categoryManagementPath, "Unknown category.")
	}

	mgr := sessionFrom(c)
	if err := h.categories.Delete(c.Request().Context(), mgr.AuthHeaders(), id); err != nil {
		return redirectWithFlash(c, categoryManagementPath, errorMessage(err))
	}
	return redirectWithFlash(c, categoryManagementPath, "Category deleted.")
}
