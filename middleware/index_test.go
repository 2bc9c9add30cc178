package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"room_booking/apperror"
	"room_booking/constants"
	"room_booking/model"
	"room_booking/utils"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeTokens map[string]model.TokenClaim

func (f fakeTokens) ParseAccessToken(token string) (model.TokenClaim, error) {
	claim, ok := f[token]
	if !ok {
		return model.TokenClaim{}, errors.New("bad token")
	}
	return claim, nil
}

type fakeResolver struct {
	blocked map[uuid.UUID]bool
	admins  map[uuid.UUID]bool
}

func (f fakeResolver) ResolvePrincipal(_ context.Context, id uuid.UUID) (model.Principal, error) {
	if f.blocked[id] {
		return model.Principal{}, apperror.ErrAccountBlocked
	}
	return model.Principal{UserID: id, IsAdmin: f.admins[id]}, nil
}

type envelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Code       string `json:"code"`
}

func newApp(tokens fakeTokens, users fakeResolver) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
	app.Get("/me", Protected(tokens, users), func(c *fiber.Ctx) error {
		p, _ := GetPrincipal(c)
		return c.SendString(p.UserID.String())
	})
	app.Get("/admin", Protected(tokens, users), AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func decode(t *testing.T, app *fiber.App, req *testRequest) (int, envelope) {
	t.Helper()
	resp, err := app.Test(req.build())
	require.NoError(t, err)
	defer resp.Body.Close()

	var body envelope
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

type testRequest struct {
	path   string
	bearer string
	cookie string
}

func (r *testRequest) build() *http.Request {
	req := httptest.NewRequest(fiber.MethodGet, r.path, nil)
	if r.bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+r.bearer)
	}
	if r.cookie != "" {
		req.AddCookie(&http.Cookie{Name: constants.ACCESS_TOKEN_COOKIE, Value: r.cookie})
	}
	return req
}

func TestProtectedMissingToken(t *testing.T) {
	app := newApp(fakeTokens{}, fakeResolver{})

	status, body := decode(t, app, &testRequest{path: "/me"})
	require.Equal(t, fiber.StatusUnauthorized, status)
	require.False(t, body.Success)
	require.Equal(t, constants.MISSING_TOKEN, body.Message)
}

func TestProtectedInvalidToken(t *testing.T) {
	app := newApp(fakeTokens{}, fakeResolver{})

	status, body := decode(t, app, &testRequest{path: "/me", bearer: "forged"})
	require.Equal(t, fiber.StatusUnauthorized, status)
	require.Equal(t, constants.INVALID_TOKEN, body.Message)
}

func TestProtectedAcceptsCookieOrBearer(t *testing.T) {
	id := uuid.New()
	app := newApp(fakeTokens{"good": {UserID: id}}, fakeResolver{})

	for _, req := range []*testRequest{
		{path: "/me", cookie: "good"},
		{path: "/me", bearer: "good"},
	} {
		resp, err := app.Test(req.build())
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}
}

func TestProtectedRejectsBlockedUser(t *testing.T) {
	id := uuid.New()
	app := newApp(fakeTokens{"good": {UserID: id}}, fakeResolver{blocked: map[uuid.UUID]bool{id: true}})

	status, body := decode(t, app, &testRequest{path: "/me", bearer: "good"})
	require.Equal(t, fiber.StatusForbidden, status)
	require.Equal(t, "AccountBlocked", body.Code)
}

func TestAdminOnly(t *testing.T) {
	user, admin := uuid.New(), uuid.New()
	app := newApp(
		fakeTokens{"user": {UserID: user}, "admin": {UserID: admin}},
		fakeResolver{admins: map[uuid.UUID]bool{admin: true}},
	)

	status, body := decode(t, app, &testRequest{path: "/admin", bearer: "user"})
	require.Equal(t, fiber.StatusForbidden, status)
	require.Equal(t, constants.NOT_ADMIN, body.Message)

	resp, err := app.Test((&testRequest{path: "/admin", bearer: "admin"}).build())
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
