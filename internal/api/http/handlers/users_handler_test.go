package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/spec-kit/user-directory/internal/api/dto"
	"github.com/spec-kit/user-directory/internal/api/http/handlers/mocks"
	"github.com/spec-kit/user-directory/internal/domain"
	"github.com/spec-kit/user-directory/pkg/util/errorutil"
)

func newTestApp(h *UsersHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := errorutil.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).SendString(domainErr.Message)
		},
	})
	app.Get("/", h.Root)
	app.Get("/api/users", h.List)
	app.Post("/api/users", h.Create)
	app.Get("/api/users/:id", h.Get)
	app.Put("/api/users/:id", h.Update)
	app.Delete("/api/users/:id", h.Delete)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestUsersHandler_Root(t *testing.T) {
	ctrl := gomock.NewController(t)
	app := newTestApp(NewUsersHandler(mocks.NewMockUserService(ctrl), dto.BodyDecoder{}))

	status, body := doRequest(t, app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, `"Hello"`, body)
}

func TestUsersHandler_List(t *testing.T) {
	tests := []struct {
		name       string
		users      domain.Collection
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "returns collection",
			users:      domain.Collection{{"id": 1, "first_name": "Anet"}},
			wantStatus: http.StatusOK,
			wantBody:   `[{"first_name":"Anet","id":1}]`,
		},
		{
			name:       "empty collection is an empty array",
			users:      nil,
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:       "read failure",
			err:        errorutil.NewInternalError("Error reading JSON file", errors.New("boom")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Error reading JSON file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockUserService(ctrl)
			svc.EXPECT().List(gomock.Any()).Return(tt.users, tt.err)

			status, body := doRequest(t, newTestApp(NewUsersHandler(svc, dto.BodyDecoder{})), http.MethodGet, "/api/users", "")
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, tt.wantBody, body)
			} else {
				assert.Equal(t, tt.wantBody, body)
			}
		})
	}
}

func TestUsersHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockUserService(ctrl)
	svc.EXPECT().Get(gomock.Any(), 2).Return(domain.Record{"id": 2, "first_name": "Honey"}, nil)
	svc.EXPECT().Get(gomock.Any(), 9).Return(nil, errorutil.NewNotFound("User", nil))
	app := newTestApp(NewUsersHandler(svc, dto.BodyDecoder{}))

	status, body := doRequest(t, app, http.MethodGet, "/api/users/2", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":2,"first_name":"Honey"}`, body)

	status, body = doRequest(t, app, http.MethodGet, "/api/users/9", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", body)
}

func TestUsersHandler_NonNumericIDIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockUserService(ctrl)
	app := newTestApp(NewUsersHandler(svc, dto.BodyDecoder{}))

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		status, body := doRequest(t, app, method, "/api/users/abc", "")
		assert.Equal(t, http.StatusNotFound, status, method)
		assert.Equal(t, "User not found", body, method)
	}
}

func TestUsersHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockUserService(ctrl)
	svc.EXPECT().
		Create(gomock.Any(), domain.Record{"first_name": "X"}).
		Return(domain.Record{"id": 3, "first_name": "X"}, nil)
	app := newTestApp(NewUsersHandler(svc, dto.BodyDecoder{}))

	status, body := doRequest(t, app, http.MethodPost, "/api/users", `{"first_name":"X"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"id":3,"first_name":"X"}`, body)

	status, body = doRequest(t, app, http.MethodPost, "/api/users", `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Request body must be a JSON object", body)
}

func TestUsersHandler_CreateStrict(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockUserService(ctrl)
	svc.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
	app := newTestApp(NewUsersHandler(svc, dto.BodyDecoder{Strict: true}))

	status, body := doRequest(t, app, http.MethodPost, "/api/users", `{"first_name":"X"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "last_name failed required")
}

func TestUsersHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockUserService(ctrl)
	svc.EXPECT().
		Update(gomock.Any(), 1, domain.Record{"available": false}).
		Return(domain.Record{"id": 1, "first_name": "Anet", "available": false}, nil)
	svc.EXPECT().
		Update(gomock.Any(), 7, gomock.Any()).
		Return(nil, errorutil.NewNotFound("User", nil))
	app := newTestApp(NewUsersHandler(svc, dto.BodyDecoder{}))

	status, body := doRequest(t, app, http.MethodPut, "/api/users/1", `{"available":false}`)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":1,"first_name":"Anet","available":false}`, body)

	status, _ = doRequest(t, app, http.MethodPut, "/api/users/7", `{"available":true}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUsersHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockUserService(ctrl)
	svc.EXPECT().Delete(gomock.Any(), 1).Return(nil)
	svc.EXPECT().Delete(gomock.Any(), 2).Return(errorutil.NewInternalError("Error writing JSON file", errors.New("disk full")))
	app := newTestApp(NewUsersHandler(svc, dto.BodyDecoder{}))

	status, body := doRequest(t, app, http.MethodDelete, "/api/users/1", "")
	assert.Equal(t, http.StatusNoContent, status)
	assert.Empty(t, body)

	status, body = doRequest(t, app, http.MethodDelete, "/api/users/2", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Error writing JSON file", body)
}
