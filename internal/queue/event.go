// Package queue defines message payloads exchanged over the message broker.
package queue

// MoviesSyncedQueue is the broker queue that carries sync outcome events.
const MoviesSyncedQueue = "movies.synced"

// MoviesSyncedEvent is published after a catalog sync run completes
// successfully. It carries enough information for downstream consumers to
// log or alert on sync activity without querying the primary database.
type MoviesSyncedEvent struct {
	Created  int    `json:"created"`  // movies inserted this run
	Updated  int    `json:"updated"`  // movies overwritten this run
	Total    int    `json:"total"`    // films returned by the upstream API
	Source   string `json:"source"`   // upstream base URL
	SyncedAt string `json:"synced_at"`
}
