package authapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Abraxas-365/backoffice/pkg/iam/auth"
	"github.com/Abraxas-365/backoffice/pkg/logx"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/Abraxas-365/backoffice/pkg/upstream"
	"github.com/tidwall/gjson"
)

// LoginPath is the upstream endpoint that exchanges credentials for a token
const LoginPath = "auth/login"

// tokenPaths are tried in order on a successful login body
var tokenPaths = []string{
	"token",
	"accessToken",
	"access_token",
	"data.token",
	"data.accessToken",
	"data.access_token",
}

// LoginResult is the upstream answer plus the token found in it
type LoginResult struct {
	Result upstream.Result
	Token  string
}

// Succeeded reports a 2xx upstream answer
func (r LoginResult) Succeeded() bool {
	return r.Result.Status >= 200 && r.Result.Status < 300
}

// LoginService forwards credentials upstream
type LoginService struct {
	gateway *proxy.Gateway
}

// NewLoginService creates a new login service
func NewLoginService(gateway *proxy.Gateway) *LoginService {
	return &LoginService{gateway: gateway}
}

// Login posts credentials to the upstream login endpoint. A failed
// upstream answer is returned normalized, not as an error; a successful
// one without a token is ErrTokenNotIssued.
func (s *LoginService) Login(ctx context.Context, credentials json.RawMessage) (LoginResult, error) {
	email := gjson.GetBytes(credentials, "email")
	password := gjson.GetBytes(credentials, "password")
	if email.Type != gjson.String || email.Str == "" || password.Type != gjson.String || password.Str == "" {
		return LoginResult{}, auth.ErrMissingCredentials()
	}

	res, err := s.gateway.Forward(ctx, upstream.Request{
		Method: http.MethodPost,
		Base:   upstream.BasePrimary,
		Path:   LoginPath,
		Body:   credentials,
	})
	if err != nil {
		return LoginResult{}, err
	}

	result := LoginResult{Result: res}
	if !result.Succeeded() {
		return result, nil
	}

	result.Token = ExtractToken(res.Body)
	if result.Token == "" {
		logx.Warnf("upstream login answered %d without a token", res.Status)
		return LoginResult{}, auth.ErrTokenNotIssued().WithDetail("reason", "no token in login response")
	}
	return result, nil
}

// ExtractToken returns the first non-empty string token in a login body
func ExtractToken(body []byte) string {
	for _, path := range tokenPaths {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}
