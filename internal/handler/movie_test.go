package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/movigo/movies-api/internal/model"
	"github.com/movigo/movies-api/internal/repository"
	"github.com/movigo/movies-api/internal/service"
	"github.com/movigo/movies-api/internal/swapi"
)

// memMovieStore implements service.MovieStore on a map for handler tests.
type memMovieStore struct {
	rows map[string]*model.Movie
}

func newMemMovieStore() *memMovieStore {
	return &memMovieStore{rows: make(map[string]*model.Movie)}
}

func (s *memMovieStore) Create(_ context.Context, m *model.Movie) error {
	cp := *m
	s.rows[m.ID] = &cp
	return nil
}

func (s *memMovieStore) Update(_ context.Context, m *model.Movie) error {
	if _, ok := s.rows[m.ID]; !ok {
		return repository.ErrMovieNotFound
	}
	cp := *m
	s.rows[m.ID] = &cp
	return nil
}

func (s *memMovieStore) Delete(_ context.Context, id string) error {
	if _, ok := s.rows[id]; !ok {
		return repository.ErrMovieNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *memMovieStore) GetByID(_ context.Context, id string) (*model.Movie, error) {
	if m, ok := s.rows[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, repository.ErrMovieNotFound
}

func (s *memMovieStore) GetByEpisodeID(_ context.Context, ep int) (*model.Movie, error) {
	for _, m := range s.rows {
		if m.EpisodeID == ep {
			cp := *m
			return &cp, nil
		}
	}
	return nil, repository.ErrMovieNotFound
}

func (s *memMovieStore) GetBySwapiURL(_ context.Context, url string) (*model.Movie, error) {
	for _, m := range s.rows {
		if m.SwapiURL == url {
			cp := *m
			return &cp, nil
		}
	}
	return nil, repository.ErrMovieNotFound
}

func (s *memMovieStore) List(_ context.Context) ([]*model.Movie, error) {
	out := make([]*model.Movie, 0, len(s.rows))
	for _, m := range s.rows {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

// stubFilms implements service.FilmSource with canned data.
type stubFilms struct {
	films []swapi.Film
	err   error
}

func (s *stubFilms) Films(context.Context) ([]swapi.Film, error) { return s.films, s.err }

func newMovieHandler(store *memMovieStore, source service.FilmSource) *MovieHandler {
	if source == nil {
		source = &stubFilms{}
	}
	svc := service.NewMovieService(store, source, nil, "")
	return NewMovieHandler(svc, validator.New())
}

func doRequest(h echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	e := echo.New()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	_ = h(c)
	return rec
}

const validMovieBody = `{
	"title": "A New Hope",
	"episodeId": 4,
	"openingCrawl": "It is a period of civil war.",
	"director": "George Lucas",
	"producer": "Gary Kurtz, Rick McCallum",
	"releaseDate": "1977-05-25"
}`

func TestCreateMovieHandler(t *testing.T) {
	h := newMovieHandler(newMemMovieStore(), nil)

	rec := doRequest(h.Create, http.MethodPost, "/v1/movies", validMovieBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got model.Movie
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.ID == "" || got.Title != "A New Hope" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if got.Characters == nil {
		t.Fatal("reference lists must serialize as arrays, not null")
	}
}

func TestCreateMovieHandlerMissingField(t *testing.T) {
	h := newMovieHandler(newMemMovieStore(), nil)
	rec := doRequest(h.Create, http.MethodPost, "/v1/movies", `{"title":"A New Hope"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateMovieHandlerBadDate(t *testing.T) {
	h := newMovieHandler(newMemMovieStore(), nil)
	body := strings.Replace(validMovieBody, "1977-05-25", "25/05/1977", 1)
	rec := doRequest(h.Create, http.MethodPost, "/v1/movies", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateMovieHandlerFieldRule(t *testing.T) {
	h := newMovieHandler(newMemMovieStore(), nil)
	body := strings.Replace(validMovieBody, "A New Hope", "AB", 1)
	rec := doRequest(h.Create, http.MethodPost, "/v1/movies", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "title") {
		t.Fatalf("error must name the field: %s", rec.Body.String())
	}
}

func TestCreateMovieHandlerEpisodeConflict(t *testing.T) {
	h := newMovieHandler(newMemMovieStore(), nil)
	if rec := doRequest(h.Create, http.MethodPost, "/v1/movies", validMovieBody); rec.Code != http.StatusCreated {
		t.Fatalf("seed create: got %d", rec.Code)
	}
	rec := doRequest(h.Create, http.MethodPost, "/v1/movies", validMovieBody)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetMovieHandlerNotFound(t *testing.T) {
	h := newMovieHandler(newMemMovieStore(), nil)
	rec := doRequest(h.Get, http.MethodGet, "/v1/movies/nope", "", "id", "nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateMovieHandler(t *testing.T) {
	store := newMemMovieStore()
	h := newMovieHandler(store, nil)
	if rec := doRequest(h.Create, http.MethodPost, "/v1/movies", validMovieBody); rec.Code != http.StatusCreated {
		t.Fatalf("seed create: got %d", rec.Code)
	}
	var id string
	for k := range store.rows {
		id = k
	}

	rec := doRequest(h.Update, http.MethodPatch, "/v1/movies/"+id, `{"title":"Star Wars"}`, "id", id)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if m := store.rows[id]; m.Title != "Star Wars" || m.Director != "George Lucas" {
		t.Fatalf("patch misapplied: %+v", m)
	}

	rec = doRequest(h.Update, http.MethodPatch, "/v1/movies/nope", `{"title":"Star Wars"}`, "id", "nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteMovieHandler(t *testing.T) {
	store := newMemMovieStore()
	h := newMovieHandler(store, nil)
	if rec := doRequest(h.Create, http.MethodPost, "/v1/movies", validMovieBody); rec.Code != http.StatusCreated {
		t.Fatalf("seed create: got %d", rec.Code)
	}
	var id string
	for k := range store.rows {
		id = k
	}

	rec := doRequest(h.Delete, http.MethodDelete, "/v1/movies/"+id, "", "id", id)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = doRequest(h.Delete, http.MethodDelete, "/v1/movies/"+id, "", "id", id)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestSyncMovieHandler(t *testing.T) {
	store := newMemMovieStore()
	source := &stubFilms{films: []swapi.Film{{
		Title:        "A New Hope",
		EpisodeID:    4,
		OpeningCrawl: "It is a period of civil war.",
		Director:     "George Lucas",
		Producer:     "Gary Kurtz",
		ReleaseDate:  "1977-05-25",
		URL:          "https://swapi.dev/api/films/1/",
	}}}
	h := newMovieHandler(store, source)

	rec := doRequest(h.Sync, http.MethodPost, "/v1/movies/sync", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res service.SyncResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if res.Created != 1 || res.Total != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestSyncMovieHandlerUpstreamDown(t *testing.T) {
	h := newMovieHandler(newMemMovieStore(), &stubFilms{err: context.DeadlineExceeded})
	rec := doRequest(h.Sync, http.MethodPost, "/v1/movies/sync", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}
}
