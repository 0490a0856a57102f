package model

import (
	"github.com/deppfellow/casting-agency/internal/errs"
)

// Actor is a performer that can be cast in movies. Every column is free
// text.
type Actor struct {
	Base
	Name   string `json:"name" db:"name"`
	Age    string `json:"age" db:"age"`
	Gender string `json:"gender" db:"gender"`
}

// ActorID addresses a single actor through the ":id" path parameter.
type ActorID struct {
	ID int `param:"id" json:"-"`
}

// Validate rejects ids that cannot name a row. A bad id is a malformed
// request, not an unprocessable one, so it answers 400.
func (p *ActorID) Validate() error {
	return validateID(p.ID)
}

// CreateActorRequest is the body of POST /add-actor.
//
// Every field must be present; an empty value is still a value.
type CreateActorRequest struct {
	Name   *Text `json:"name" validate:"required"`
	Age    *Text `json:"age" validate:"required"`
	Gender *Text `json:"gender" validate:"required"`
}

func (p *CreateActorRequest) Validate() error {
	return validate.Struct(p)
}

// Actor builds the entity to insert.
func (p *CreateActorRequest) Actor() Actor {
	return Actor{
		Name:   text(p.Name),
		Age:    text(p.Age),
		Gender: text(p.Gender),
	}
}

// UpdateActorRequest is the body of PATCH /actors/:id.
//
// Absent, empty and zero fields are left unchanged.
type UpdateActorRequest struct {
	ActorID
	Name   *Text `json:"name"`
	Age    *Text `json:"age"`
	Gender *Text `json:"gender"`
}

func (p *UpdateActorRequest) Validate() error {
	return p.ActorID.Validate()
}

// ActorPatch is the set of columns an update will write. Nil fields are kept.
type ActorPatch struct {
	Name   *string
	Age    *string
	Gender *string
}

// Patch drops the fields that carry no value.
func (p *UpdateActorRequest) Patch() ActorPatch {
	return ActorPatch{
		Name:   value(p.Name),
		Age:    value(p.Age),
		Gender: value(p.Gender),
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p ActorPatch) IsEmpty() bool {
	return p.Name == nil && p.Age == nil && p.Gender == nil
}

// ListActorsRequest is the (empty) payload of GET /actors.
type ListActorsRequest struct{}

func (p *ListActorsRequest) Validate() error {
	return nil
}

// ActorsResponse is the body of GET /actors.
type ActorsResponse struct {
	Success bool    `json:"success"`
	Actors  []Actor `json:"actors"`
}

// ActorResponse is the body of a single-actor read or write.
type ActorResponse struct {
	Success bool  `json:"success"`
	Actor   Actor `json:"actor"`
}

// ActorDeletedResponse is the body of DELETE /actors/:id.
type ActorDeletedResponse struct {
	Success bool `json:"success"`
	ActorID int  `json:"actor_id"`
}

func validateID(id int) error {
	if id <= 0 {
		code := "INVALID_ID"
		return errs.NewBadRequestError("id must be a positive integer", true, &code,
			[]errs.FieldError{{Field: "id", Error: "must be a positive integer"}}, nil)
	}
	return nil
}
