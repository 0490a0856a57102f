package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/casting-agency/internal/model"
	"github.com/deppfellow/casting-agency/internal/server"
	"github.com/deppfellow/casting-agency/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const actorsTable = "actors"

const actorColumns = `id, name, age, gender, created_at, updated_at`

type ActorRepository struct {
	server *server.Server
}

func NewActorRepository(s *server.Server) *ActorRepository {
	return &ActorRepository{server: s}
}

// ListActors returns every actor ordered by id.
func (r *ActorRepository) ListActors(ctx context.Context) ([]model.Actor, error) {
	stmt := `SELECT ` + actorColumns + ` FROM actors ORDER BY id`

	rows, err := r.server.DB.Pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list actors query: %w", err)
	}

	actors, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Actor])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:actors: %w", err)
	}

	return actors, nil
}

// GetActorByID returns the actor with id, or an error wrapping pgx.ErrNoRows.
func (r *ActorRepository) GetActorByID(ctx context.Context, id int) (*model.Actor, error) {
	stmt := `SELECT ` + actorColumns + ` FROM actors WHERE id = @id`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get actor query for id=%d: %w", id, err)
	}

	return collectActor(rows, id)
}

// CreateActor inserts actor and returns the stored row.
func (r *ActorRepository) CreateActor(ctx context.Context, actor model.Actor) (*model.Actor, error) {
	stmt := `
		INSERT INTO actors (name, age, gender)
		VALUES (@name, @age, @gender)
		RETURNING ` + actorColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"name":   actor.Name,
		"age":    actor.Age,
		"gender": actor.Gender,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create actor query: %w", err)
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Actor])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:actors: %w", err)
	}

	return created, nil
}

// UpdateActor writes the non-nil fields of patch and returns the updated row.
func (r *ActorRepository) UpdateActor(ctx context.Context, id int, patch model.ActorPatch) (*model.Actor, error) {
	if patch.IsEmpty() {
		return r.GetActorByID(ctx, id)
	}

	stmt := `
		UPDATE actors
		SET name   = COALESCE(@name, name),
		    age    = COALESCE(@age, age),
		    gender = COALESCE(@gender, gender)
		WHERE id = @id
		RETURNING ` + actorColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"id":     id,
		"name":   patch.Name,
		"age":    patch.Age,
		"gender": patch.Gender,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute update actor query for id=%d: %w", id, err)
	}

	return collectActor(rows, id)
}

// DeleteActor removes the actor with id.
func (r *ActorRepository) DeleteActor(ctx context.Context, id int) error {
	stmt := `DELETE FROM actors WHERE id = @id`

	tag, err := r.server.DB.Pool.Exec(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("failed to execute delete actor query for id=%d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return sqlerr.WrapNotFound(actorsTable, pgx.ErrNoRows)
	}

	return nil
}

func collectActor(rows pgx.Rows, id int) (*model.Actor, error) {
	actor, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Actor])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.WrapNotFound(actorsTable, err)
		}
		return nil, fmt.Errorf("failed to collect actor id=%d: %w", id, err)
	}
	return actor, nil
}
