package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/movigo/movies-api/internal/model"
	"github.com/movigo/movies-api/internal/queue"
	"github.com/movigo/movies-api/internal/repository"
	"github.com/movigo/movies-api/internal/swapi"
	"github.com/movigo/movies-api/internal/validation"
)

// MovieStore is the persistence surface MovieService needs. It is satisfied
// by repository.MovieRepo and by in-memory fakes in tests.
type MovieStore interface {
	Create(ctx context.Context, m *model.Movie) error
	Update(ctx context.Context, m *model.Movie) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Movie, error)
	GetByEpisodeID(ctx context.Context, episodeID int) (*model.Movie, error)
	GetBySwapiURL(ctx context.Context, url string) (*model.Movie, error)
	List(ctx context.Context) ([]*model.Movie, error)
}

// FilmSource fetches the upstream film list. Satisfied by *swapi.Client.
type FilmSource interface {
	Films(ctx context.Context) ([]swapi.Film, error)
}

// EventPublisher announces completed sync runs. Satisfied by
// *queue.Publisher; may be nil when no broker is configured.
type EventPublisher interface {
	PublishMoviesSynced(ctx context.Context, ev queue.MoviesSyncedEvent) error
}

// MovieService owns the movie business rules: field validation, episode-id
// uniqueness enforced by read-then-check, partial updates, and the
// upsert-by-swapi-url sync shared by the manual endpoint and the scheduler.
type MovieService struct {
	store  MovieStore
	source FilmSource
	events EventPublisher
	srcURL string // reported in sync events
}

// NewMovieService wires the service with its store, upstream source and
// optional event publisher.
func NewMovieService(store MovieStore, source FilmSource, events EventPublisher, srcURL string) *MovieService {
	return &MovieService{store: store, source: source, events: events, srcURL: srcURL}
}

// CreateMovieInput carries a full movie payload. The reference lists are
// optional and default to empty.
type CreateMovieInput struct {
	Title        string
	EpisodeID    int
	OpeningCrawl string
	Director     string
	Producer     string
	ReleaseDate  time.Time
	Characters   []string
	Planets      []string
	Starships    []string
	Vehicles     []string
	Species      []string
}

// UpdateMovieInput carries a partial payload; nil fields are left
// untouched on the stored record.
type UpdateMovieInput struct {
	Title        *string
	EpisodeID    *int
	OpeningCrawl *string
	Director     *string
	Producer     *string
	ReleaseDate  *time.Time
	Characters   []string
	Planets      []string
	Starships    []string
	Vehicles     []string
	Species      []string
}

// Create validates the payload, rejects a taken episode id and persists a
// new movie under a generated UUID.
func (s *MovieService) Create(ctx context.Context, in CreateMovieInput) (*model.Movie, error) {
	err := validation.Movie(validation.MovieFields{
		Title:        &in.Title,
		EpisodeID:    &in.EpisodeID,
		OpeningCrawl: &in.OpeningCrawl,
		Director:     &in.Director,
		Producer:     &in.Producer,
		ReleaseDate:  &in.ReleaseDate,
	})
	if err != nil {
		return nil, err
	}
	if err := s.checkEpisodeID(ctx, in.EpisodeID, ""); err != nil {
		return nil, err
	}
	m := &model.Movie{
		ID:           uuid.NewString(),
		Title:        in.Title,
		EpisodeID:    in.EpisodeID,
		OpeningCrawl: in.OpeningCrawl,
		Director:     in.Director,
		Producer:     in.Producer,
		ReleaseDate:  in.ReleaseDate,
		Characters:   orEmpty(in.Characters),
		Planets:      orEmpty(in.Planets),
		Starships:    orEmpty(in.Starships),
		Vehicles:     orEmpty(in.Vehicles),
		Species:      orEmpty(in.Species),
	}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Update re-reads the movie, validates the present fields, re-checks
// episode-id uniqueness against other rows and merges the patch onto the
// stored record. Absent fields are unchanged.
func (s *MovieService) Update(ctx context.Context, id string, in UpdateMovieInput) (*model.Movie, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = validation.Movie(validation.MovieFields{
		Title:        in.Title,
		EpisodeID:    in.EpisodeID,
		OpeningCrawl: in.OpeningCrawl,
		Director:     in.Director,
		Producer:     in.Producer,
		ReleaseDate:  in.ReleaseDate,
	})
	if err != nil {
		return nil, err
	}
	if in.EpisodeID != nil {
		if err := s.checkEpisodeID(ctx, *in.EpisodeID, id); err != nil {
			return nil, err
		}
		m.EpisodeID = *in.EpisodeID
	}
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.OpeningCrawl != nil {
		m.OpeningCrawl = *in.OpeningCrawl
	}
	if in.Director != nil {
		m.Director = *in.Director
	}
	if in.Producer != nil {
		m.Producer = *in.Producer
	}
	if in.ReleaseDate != nil {
		m.ReleaseDate = *in.ReleaseDate
	}
	if in.Characters != nil {
		m.Characters = in.Characters
	}
	if in.Planets != nil {
		m.Planets = in.Planets
	}
	if in.Starships != nil {
		m.Starships = in.Starships
	}
	if in.Vehicles != nil {
		m.Vehicles = in.Vehicles
	}
	if in.Species != nil {
		m.Species = in.Species
	}
	if err := s.store.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Remove deletes a movie by id.
func (s *MovieService) Remove(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// FindAll returns every movie.
func (s *MovieService) FindAll(ctx context.Context) ([]*model.Movie, error) {
	return s.store.List(ctx)
}

// FindOne returns a single movie by id.
func (s *MovieService) FindOne(ctx context.Context, id string) (*model.Movie, error) {
	return s.store.GetByID(ctx, id)
}

// checkEpisodeID fails with ErrEpisodeIDExists when a movie other than
// selfID already holds the given episode id. This is a read-then-check:
// two concurrent writers can both pass it, and the last writer wins unless
// the schema adds its own constraint.
func (s *MovieService) checkEpisodeID(ctx context.Context, episodeID int, selfID string) error {
	other, err := s.store.GetByEpisodeID(ctx, episodeID)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil
		}
		return err
	}
	if other.ID != selfID {
		return ErrEpisodeIDExists
	}
	return nil
}

// SyncResult summarizes one sync run.
type SyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

// SyncExternal fetches the full upstream film list and upserts each film
// by its canonical URL: a matching local movie is overwritten field by
// field (keeping its id), anything unmatched becomes a new movie. Films
// are processed in upstream order with no transactional grouping; the
// first failure aborts the remaining items. All failures surface as
// ErrSyncFailed and are never retried within the call.
func (s *MovieService) SyncExternal(ctx context.Context) (SyncResult, error) {
	var res SyncResult
	films, err := s.source.Films(ctx)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	res.Total = len(films)

	for _, f := range films {
		existing, err := s.store.GetBySwapiURL(ctx, f.URL)
		switch {
		case err == nil:
			applyFilm(existing, f)
			if err := s.store.Update(ctx, existing); err != nil {
				return res, fmt.Errorf("%w: %v", ErrSyncFailed, err)
			}
			res.Updated++
		case errors.Is(err, repository.ErrMovieNotFound):
			m := &model.Movie{ID: uuid.NewString(), SwapiURL: f.URL}
			applyFilm(m, f)
			if err := s.store.Create(ctx, m); err != nil {
				return res, fmt.Errorf("%w: %v", ErrSyncFailed, err)
			}
			res.Created++
		default:
			return res, fmt.Errorf("%w: %v", ErrSyncFailed, err)
		}
	}

	if s.events != nil {
		// Best effort; a broker outage must not fail the sync.
		_ = s.events.PublishMoviesSynced(ctx, queue.MoviesSyncedEvent{
			Created:  res.Created,
			Updated:  res.Updated,
			Total:    res.Total,
			Source:   s.srcURL,
			SyncedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return res, nil
}

// applyFilm overwrites every mapped field of m with the upstream values,
// preserving local identity fields (id, created_at).
func applyFilm(m *model.Movie, f swapi.Film) {
	m.Title = f.Title
	m.EpisodeID = f.EpisodeID
	m.OpeningCrawl = f.OpeningCrawl
	m.Director = f.Director
	m.Producer = f.Producer
	m.ReleaseDate = parseReleaseDate(f.ReleaseDate)
	m.Characters = orEmpty(f.Characters)
	m.Planets = orEmpty(f.Planets)
	m.Starships = orEmpty(f.Starships)
	m.Vehicles = orEmpty(f.Vehicles)
	m.Species = orEmpty(f.Species)
	m.SwapiURL = f.URL
}

// parseReleaseDate parses the upstream "2006-01-02" date. An unparseable
// value maps to the zero time rather than failing the run.
func parseReleaseDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
