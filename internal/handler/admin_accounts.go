package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/leolovestravel/vietnamtravel/internal/models"
	"github.com/leolovestravel/vietnamtravel/internal/remote"
	"github.com/leolovestravel/vietnamtravel/internal/web"
)

const accountManagementPath = "/admin/account-management"

func (h *AdminHandler) Accounts(c echo.Context) error {
	mgr := sessionFrom(c)
	user, _ := mgr.User()
	view := web.View{Title: "Account management"}

	admins, err := h.client.ListAdmins(c.Request().Context(), mgr.AuthHeaders())
	if err != nil {
		view.Error = remote.UserMessage(err)
		admins = []models.Admin{}
	}
	view.Data = map[string]interface{}{
		"Admins":     admins,
		"SuperAdmin": user.IsSuperAdmin(),
	}
	return render(c, http.StatusOK, "admin/accounts.html", view)
}

func (h *AdminHandler) CreateAccount(c echo.Context) error {
	var req models.CreateAdminRequest
	if err := c.Bind(&req); err != nil {
		return redirectWithFlash(c, accountManagementPath, "Could not read the form.")
	}
	if err := c.Validate(&req); err != nil {
		return redirectWithFlash(c, accountManagementPath, validationMessage(err))
	}

	mgr := sessionFrom(c)
	msg, err := h.client.CreateAdmin(c.Request().Context(), mgr.AuthHeaders(), req)
	if err != nil {
		return redirectWithFlash(c, accountManagementPath, errorMessage(err))
	}
	if msg == "" {
		msg = "Admin " + req.Username + " created."
	}
	return redirectWithFlash(c, accountManagementPath, msg)
}

func (h *AdminHandler) DeleteAccount(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return redirectWithFlash(c, accountManagementPath, "Unknown account.")
	}

	mgr := sessionFrom(c)
	if user, _ := mgr.User(); user.ID == id {
		return redirectWithFlash(c, accountManagementPath, "You cannot delete your own account.")
	}

	msg, err := h.client.DeleteAdmin(c.Request().Context(), mgr.AuthHeaders(), id)
	if err != nil {
		return redirectWithFlash(c, accountManagementPath, errorMessage(err))
	}
	if msg == "" {
		msg = "Account deleted."
	}
	return redirectWithFlash(c, accountManagementPath, msg)
}

func (h *AdminHandler) GrantRole(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return redirectWithFlash(c, accountManagementPath, "Unknown account.")
	}
	role := models.Role(c.FormValue("role"))
	if !role.Valid() {
		return redirectWithFlash(c, accountManagementPath, "Role must be admin or superadmin.")
	}

	mgr := sessionFrom(c)
	msg, err := h.client.GrantRole(c.Request().Context(), mgr.AuthHeaders(), id, role)
	if err != nil {
		return redirectWithFlash(c, accountManagementPath, errorMessage(err))
	}
	if msg == "" {
		msg = "Role updated."
	}
	return redirectWithFlash(c, accountManagementPath, msg)
}
