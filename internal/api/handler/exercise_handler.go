package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fittrack/exercise-tracker/internal/api/metrics"
	"github.com/fittrack/exercise-tracker/internal/core/ports"
)

// ExerciseHandler handles HTTP requests for exercise appends and log queries.
type ExerciseHandler struct {
	service ports.ExerciseService
}

func NewExerciseHandler(service ports.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{service: service}
}

// Add handles POST /users/:id/exercises.
//
// @Summary      Append an exercise to a user's log
// @Tags         exercises
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id    path      string              true  "User id"
// @Param        body  body      addExerciseRequest  true  "Exercise fields (date optional, YYYY-MM-DD)"
// @Success      200   {object}  exerciseResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id}/exercises [post]
func (h *ExerciseHandler) Add(c echo.Context) error {
	var req addExerciseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.AddExercise(c.Request().Context(), ports.AddExerciseInput{
		UserID:      c.Param("id"),
		Description: req.Description,
		Duration:    string(req.Duration),
		Date:        req.Date,
	})
	if err != nil {
		return err
	}

	metrics.ExercisesLoggedTotal.Inc()
	return c.JSON(http.StatusOK, toExerciseResponse(result))
}

// Logs handles GET /users/:id/logs.
//
// @Summary      Retrieve a user's exercise log
// @Tags         exercises
// @Produce      json
// @Param        id     path      string  true   "User id"
// @Param        from   query     string  false  "Inclusive lower bound (YYYY-MM-DD)"
// @Param        to     query     string  false  "Inclusive upper bound (YYYY-MM-DD)"
// @Param        limit  query     int     false  "Keep only the earliest N entries"
// @Success      200    {object}  logResponse
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /users/{id}/logs [get]
func (h *ExerciseHandler) Logs(c echo.Context) error {
	in := ports.LogQueryInput{
		UserID: c.Param("id"),
		From:   c.QueryParam("from"),
		To:     c.QueryParam("to"),
		Limit:  c.QueryParam("limit"),
	}

	result, err := h.service.GetLog(c.Request().Context(), in)
	if err != nil {
		return err
	}

	filtered := in.From != "" || in.To != "" || in.Limit != ""
	metrics.LogQueriesTotal.WithLabelValues(strconv.FormatBool(filtered)).Inc()

	return c.JSON(http.StatusOK, toLogResponse(result))
}
