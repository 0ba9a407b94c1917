package handlers

import (
	"net/url"

	"stockroom/internal/models"
	"stockroom/internal/services"
	pkgerrors "stockroom/pkg/errors"
	"stockroom/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service *services.UserService
	log     *logger.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, logg *logger.Logger) *UserHandler {
	if logg == nil {
		logg = logger.Nop()
	}
	return &UserHandler{
		service: service,
		log:     logg,
	}
}

// RegisterRoutes registers the user routes on router.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Get("/", h.HandleGetUsers)
	// Registered before /:id so the literal segment wins.
	userRoutes.Get("/email/:email", h.HandleGetUserByEmail)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleCreateUser creates a user.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var in models.UserInput
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, h.log, badBody(err))
	}

	user, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleGetUsers lists every user.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(users)
}

// HandleGetUser retrieves a single user by id.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(user)
}

// HandleGetUserByEmail retrieves a user by exact email.
func (h *UserHandler) HandleGetUserByEmail(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return writeError(c, h.log, pkgerrors.New(pkgerrors.CodeInvalidInput, "malformed email in path"))
	}

	user, err := h.service.GetByEmail(c.UserContext(), email)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(user)
}

// HandleUpdateUser applies a partial update.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var upd models.UserUpdate
	if err := c.BodyParser(&upd); err != nil {
		return writeError(c, h.log, badBody(err))
	}

	user, err := h.service.Update(c.UserContext(), c.Params("id"), upd)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(user)
}

// HandleDeleteUser deletes a user and answers with an empty 204.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	deleted, err := h.service.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if !deleted {
		return writeError(c, h.log, pkgerrors.New(pkgerrors.CodeNotFound, "user not found"))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
