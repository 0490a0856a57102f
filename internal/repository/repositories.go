// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
package repository

import (
	"github.com/deppfellow/casting-agency/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Actor *ActorRepository
	Movie *MovieRepository
}

// NewRepositories constructs the repository container on the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Actor: NewActorRepository(s),
		Movie: NewMovieRepository(s),
	}
}
