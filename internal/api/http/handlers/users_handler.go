package handlers

//go:generate mockgen -source=users_handler.go -destination=mocks/mock_user_service.go -package=mocks

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-directory/internal/api/dto"
	"github.com/spec-kit/user-directory/internal/domain"
	"github.com/spec-kit/user-directory/pkg/util/errorutil"
)

// UserService is the subset of the user service the HTTP layer drives.
type UserService interface {
	List(ctx context.Context) (domain.Collection, error)
	Get(ctx context.Context, id int) (domain.Record, error)
	Create(ctx context.Context, input domain.Record) (domain.Record, error)
	Update(ctx context.Context, id int, patch domain.Record) (domain.Record, error)
	Delete(ctx context.Context, id int) error
}

// UsersHandler exposes the user collection over REST.
type UsersHandler struct {
	users   UserService
	decoder dto.BodyDecoder
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users UserService, decoder dto.BodyDecoder) *UsersHandler {
	return &UsersHandler{users: users, decoder: decoder}
}

// Root handles GET /.
func (h *UsersHandler) Root(c *fiber.Ctx) error {
	return c.JSON("Hello")
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	if users == nil {
		users = domain.Collection{}
	}
	return c.JSON(users)
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	input, err := h.decoder.DecodeCreate(c.Body())
	if err != nil {
		return err
	}
	user, err := h.users.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(user)
}

// Update handles PUT /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	patch, err := h.decoder.DecodeUpdate(c.Body())
	if err != nil {
		return err
	}
	user, err := h.users.Update(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// Delete handles DELETE /api/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// userID parses :id. A value that is not an integer can never match a
// stored id, so it is reported as a missing user.
func userID(c *fiber.Ctx) (int, error) {
	raw := c.Params("id")
	id, ok := domain.ParseID(raw)
	if !ok {
		return 0, errorutil.NewNotFound("User", map[string]any{"id": raw})
	}
	return id, nil
}
