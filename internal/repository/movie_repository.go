// This file defines the MovieRepo with CRUD and lookup operations over the
// `movies` table. Lookups by episode id and by upstream URL exist so the
// service layer can enforce episode-id uniqueness and match synced films
// to local rows.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/movigo/movies-api/internal/model"
)

const movieColumns = `id, title, episode_id, opening_crawl, director, producer,
	release_date, characters, planets, starships, vehicles, species,
	swapi_url, created_at, updated_at`

// MovieRepo encapsulates all database queries related to movies. It
// depends on a sql.DB connection which should be configured elsewhere.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// Create inserts a new movie. The caller assigns the UUID; timestamps are
// set here so the returned struct matches what was written.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	const q = `INSERT INTO movies (` + movieColumns + `)
	           VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, q,
		m.ID, m.Title, m.EpisodeID, m.OpeningCrawl, m.Director, m.Producer,
		m.ReleaseDate, encodeList(m.Characters), encodeList(m.Planets),
		encodeList(m.Starships), encodeList(m.Vehicles), encodeList(m.Species),
		nullStr(m.SwapiURL), m.CreatedAt, m.UpdatedAt)
	return err
}

// Update overwrites every mutable column of an existing movie. It returns
// ErrMovieNotFound when no row matches the id.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	m.UpdatedAt = time.Now().UTC()
	const q = `UPDATE movies SET title=?, episode_id=?, opening_crawl=?,
	           director=?, producer=?, release_date=?, characters=?, planets=?,
	           starships=?, vehicles=?, species=?, swapi_url=?, updated_at=?
	           WHERE id=?`
	res, err := r.db.ExecContext(ctx, q,
		m.Title, m.EpisodeID, m.OpeningCrawl, m.Director, m.Producer,
		m.ReleaseDate, encodeList(m.Characters), encodeList(m.Planets),
		encodeList(m.Starships), encodeList(m.Vehicles), encodeList(m.Species),
		nullStr(m.SwapiURL), m.UpdatedAt, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also zero for a no-op write to an existing row,
		// so confirm absence before reporting not found.
		if _, err := r.GetByID(ctx, m.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a movie by id, reporting ErrMovieNotFound when absent.
func (r *MovieRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM movies WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// GetByID fetches a single movie by its UUID.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	return r.getOne(ctx, "SELECT "+movieColumns+" FROM movies WHERE id=?", id)
}

// GetByEpisodeID fetches the movie holding the given episode id, if any.
func (r *MovieRepo) GetByEpisodeID(ctx context.Context, episodeID int) (*model.Movie, error) {
	return r.getOne(ctx, "SELECT "+movieColumns+" FROM movies WHERE episode_id=?", episodeID)
}

// GetBySwapiURL fetches the movie previously synced from the given
// upstream URL, if any.
func (r *MovieRepo) GetBySwapiURL(ctx context.Context, url string) (*model.Movie, error) {
	return r.getOne(ctx, "SELECT "+movieColumns+" FROM movies WHERE swapi_url=?", url)
}

// List returns every movie ordered by creation time.
func (r *MovieRepo) List(ctx context.Context) ([]*model.Movie, error) {
	const q = "SELECT " + movieColumns + " FROM movies ORDER BY created_at, id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MovieRepo) getOne(ctx context.Context, q string, arg any) (*model.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx, q, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner) (*model.Movie, error) {
	var (
		m                                  model.Movie
		chars, planets, ships, vehs, specs sql.NullString
		swapiURL                           sql.NullString
	)
	if err := s.Scan(&m.ID, &m.Title, &m.EpisodeID, &m.OpeningCrawl,
		&m.Director, &m.Producer, &m.ReleaseDate,
		&chars, &planets, &ships, &vehs, &specs,
		&swapiURL, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Characters = decodeList(chars)
	m.Planets = decodeList(planets)
	m.Starships = decodeList(ships)
	m.Vehicles = decodeList(vehs)
	m.Species = decodeList(specs)
	if swapiURL.Valid {
		m.SwapiURL = swapiURL.String
	}
	return &m, nil
}

// nullStr maps an empty string to NULL so the unique-ish swapi_url column
// stays NULL for manually created movies.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
