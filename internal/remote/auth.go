package remote

import (
	"context"
	"net/http"
)

type AdminPayload struct {
	ID        *FlexInt `json:"id"`
	Email     string   `json:"email"`
	Role      string   `json:"role"`
	CreatedAt string   `json:"created_at"`
}

type LoginResponse struct {
	Success Truthy        `json:"success"`
	Token   string        `json:"token"`
	Admin   *AdminPayload `json:"admin"`
	Message string        `json:"message"`
}

type LoginResult struct {
	Response LoginResponse
	Cookies  []*http.Cookie
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var resp LoginResponse
	cookies, err := c.do(ctx, http.MethodPost, EndpointLogin, nil, nil, loginBody{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Response: resp, Cookies: cookies}, nil
}

func (c *Client) Logout(ctx context.Context, headers http.Header) error {
	_, err := c.do(ctx, http.MethodPost, EndpointLogout, nil, headers, nil, nil)
	return err
}

type changePasswordBody struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (c *Client) ChangePassword(ctx context.Context, headers http.Header, oldPassword, newPassword string) (string, error) {
	var resp messageBody
	_, err := c.do(ctx, http.MethodPost, EndpointChangePassword, nil, headers, changePasswordBody{OldPassword: oldPassword, NewPassword: newPassword}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
