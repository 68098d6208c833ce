package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fittrack/exercise-tracker/internal/api/metrics"
	"github.com/fittrack/exercise-tracker/internal/core/ports"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /users.
//
// @Summary      Create a new user
// @Tags         users
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body  body      createUserRequest  true  "Username"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.CreateUser(c.Request().Context(), req.Username)
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, userResponse{Username: user.Username, ID: user.ID})
}

// List handles GET /users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {array}  userResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.GetAllUsers(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userResponse{Username: u.Username, ID: u.ID})
	}
	return c.JSON(http.StatusOK, resp)
}
