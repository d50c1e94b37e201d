package remote

import (
	"context"
	"net/http"

	"github.com/leolovestravel/vietnamtravel/internal/models"
)

type adminPayload struct {
	ID        FlexInt `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	CreatedAt string  `json:"created_at"`
}

type listAdminsResponse struct {
	Admins []adminPayload `json:"admins"`
}

func (c *Client) ListAdmins(ctx context.Context, headers http.Header) ([]models.Admin, error) {
	var resp listAdminsResponse
	if _, err := c.do(ctx, http.MethodGet, EndpointListAdmins, nil, headers, nil, &resp); err != nil {
		return nil, err
	}

	admins := make([]models.Admin, len(resp.Admins))
	for i, a := range resp.Admins {
		admins[i] = models.Admin{
			ID:        int(a.ID),
			Username:  a.Username,
			Email:     a.Email,
			Role:      models.Role(a.Role),
			CreatedAt: a.CreatedAt,
		}
	}
	return admins, nil
}

func (c *Client) CreateAdmin(ctx context.Context, headers http.Header, req models.CreateAdminRequest) (string, error) {
	var resp messageBody
	if _, err := c.do(ctx, http.MethodPost, EndpointCreateAdmin, nil, headers, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

type idBody struct {
	ID int `json:"id"`
}

func (c *Client) DeleteAdmin(ctx context.Context, headers http.Header, id int) (string, error) {
	var resp messageBody
	if _, err := c.do(ctx, http.MethodPost, EndpointDeleteAdmin, nil, headers, idBody{ID: id}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

type grantRoleBody struct {
	ID   int         `json:"id"`
	Role models.Role `json:"role"`
}

func (c *Client) GrantRole(ctx context.Context, headers http.Header, id int, role models.Role) (string, error) {
	var resp messageBody
	if _, err := c.do(ctx, http.MethodPost, EndpointGrantRole, nil, headers, grantRoleBody{ID: id, Role: role}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
