package model

import "time"

// Movie represents a film record as stored in the `movies` table. The five
// cross-reference collections (characters, planets, starships, vehicles,
// species) are persisted as JSON-encoded longtext columns; the repository
// layer owns the encoding and always materializes them as string slices,
// never nil, so handlers can serialize them directly.
//
// SwapiURL is the canonical URL of the film on the upstream Star Wars API
// and acts as the natural key when reconciling synced records. It is empty
// for movies created manually.
type Movie struct {
	ID           string    `json:"id"`           // movies.id (UUID)
	Title        string    `json:"title"`        // movies.title
	EpisodeID    int       `json:"episodeId"`    // movies.episode_id, unique across rows
	OpeningCrawl string    `json:"openingCrawl"` // movies.opening_crawl
	Director     string    `json:"director"`     // movies.director
	Producer     string    `json:"producer"`     // movies.producer
	ReleaseDate  time.Time `json:"releaseDate"`  // movies.release_date
	Characters   []string  `json:"characters"`   // movies.characters (JSON text)
	Planets      []string  `json:"planets"`      // movies.planets (JSON text)
	Starships    []string  `json:"starships"`    // movies.starships (JSON text)
	Vehicles     []string  `json:"vehicles"`     // movies.vehicles (JSON text)
	Species      []string  `json:"species"`      // movies.species (JSON text)
	SwapiURL     string    `json:"swApiUrl,omitempty"` // movies.swapi_url (nullable)
	CreatedAt    time.Time `json:"createdAt"`    // movies.created_at
	UpdatedAt    time.Time `json:"updatedAt"`    // movies.updated_at
}
