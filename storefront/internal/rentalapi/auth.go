package rentalapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrInvalidRegistration = errors.New("invalid registration")

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func (r LoginResult) IsAdmin() bool {
	return strings.EqualFold(r.Role, "Admin")
}

type Registration struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

// Validate requires every field except the address.
func (r Registration) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"fullName", r.FullName},
		{"email", r.Email},
		{"password", r.Password},
		{"phone", r.Phone},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidRegistration, strings.Join(missing, ", "))
	}
	return nil
}

// POST /api/auth/login
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var res LoginResult
	u := c.serverURL.JoinPath("api", "auth", "login")
	if err := c.do(ctx, http.MethodPost, u, "", credentials{Email: email, Password: password}, &res); err != nil {
		return LoginResult{}, err
	}
	if res.Token == "" {
		return LoginResult{}, fmt.Errorf("%w: login response has no token", ErrTransport)
	}
	return res, nil
}

// POST /api/auth/register
func (c *Client) Register(ctx context.Context, reg Registration) error {
	u := c.serverURL.JoinPath("api", "auth", "register")
	return c.do(ctx, http.MethodPost, u, "", reg, nil)
}
