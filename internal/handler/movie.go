package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/movigo/movies-api/internal/repository"
	"github.com/movigo/movies-api/internal/service"
	"github.com/movigo/movies-api/internal/validation"
)

// MovieHandler bundles dependencies for the movies resource.
type MovieHandler struct {
	Movies   *service.MovieService
	Validate *validator.Validate
}

func NewMovieHandler(m *service.MovieService, v *validator.Validate) *MovieHandler {
	return &MovieHandler{Movies: m, Validate: v}
}

// ----- DTOs -----

type createMovieReq struct {
	Title        string   `json:"title" validate:"required"`
	EpisodeID    int      `json:"episodeId" validate:"required"`
	OpeningCrawl string   `json:"openingCrawl" validate:"required"`
	Director     string   `json:"director" validate:"required"`
	Producer     string   `json:"producer" validate:"required"`
	ReleaseDate  string   `json:"releaseDate" validate:"required"`
	Characters   []string `json:"characters"`
	Planets      []string `json:"planets"`
	Starships    []string `json:"starships"`
	Vehicles     []string `json:"vehicles"`
	Species      []string `json:"species"`
}

type updateMovieReq struct {
	Title        *string  `json:"title"`
	EpisodeID    *int     `json:"episodeId"`
	OpeningCrawl *string  `json:"openingCrawl"`
	Director     *string  `json:"director"`
	Producer     *string  `json:"producer"`
	ReleaseDate  *string  `json:"releaseDate"`
	Characters   []string `json:"characters"`
	Planets      []string `json:"planets"`
	Starships    []string `json:"starships"`
	Vehicles     []string `json:"vehicles"`
	Species      []string `json:"species"`
}

// parseReleaseDate accepts the calendar-date wire format used by both the
// API payloads and the upstream source.
func parseReleaseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// List handles GET /v1/movies.
func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Movies.FindAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Movies.FindOne(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, m)
}

// Create handles POST /v1/movies.
func (h *MovieHandler) Create(c echo.Context) error {
	var req createMovieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed: " + err.Error()})
	}
	release, err := parseReleaseDate(req.ReleaseDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "releaseDate: invalid release date format"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Movies.Create(ctx, service.CreateMovieInput{
		Title:        req.Title,
		EpisodeID:    req.EpisodeID,
		OpeningCrawl: req.OpeningCrawl,
		Director:     req.Director,
		Producer:     req.Producer,
		ReleaseDate:  release,
		Characters:   req.Characters,
		Planets:      req.Planets,
		Starships:    req.Starships,
		Vehicles:     req.Vehicles,
		Species:      req.Species,
	})
	if err != nil {
		return h.writeError(c, err, "create movie failed")
	}
	return c.JSON(http.StatusCreated, m)
}

// Update handles PATCH /v1/movies/:id with a partial payload.
func (h *MovieHandler) Update(c echo.Context) error {
	var req updateMovieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in := service.UpdateMovieInput{
		Title:        req.Title,
		EpisodeID:    req.EpisodeID,
		OpeningCrawl: req.OpeningCrawl,
		Director:     req.Director,
		Producer:     req.Producer,
		Characters:   req.Characters,
		Planets:      req.Planets,
		Starships:    req.Starships,
		Vehicles:     req.Vehicles,
		Species:      req.Species,
	}
	if req.ReleaseDate != nil {
		release, err := parseReleaseDate(*req.ReleaseDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "releaseDate: invalid release date format"})
		}
		in.ReleaseDate = &release
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Movies.Update(ctx, c.Param("id"), in)
	if err != nil {
		return h.writeError(c, err, "update movie failed")
	}
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /v1/movies/:id.
func (h *MovieHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Movies.Remove(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Sync handles POST /v1/movies/sync, running the same sync path as the
// scheduler and reporting the run summary.
func (h *MovieHandler) Sync(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Minute)
	defer cancel()

	res, err := h.Movies.SyncExternal(ctx)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

// writeError maps service failures shared by Create and Update.
func (h *MovieHandler) writeError(c echo.Context, err error, fallback string) error {
	var fieldErr *validation.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": fieldErr.Error()})
	case errors.Is(err, service.ErrEpisodeIDExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrMovieNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
}
