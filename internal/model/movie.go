package model

// Movie is a production that actors can be cast in. Release is kept
// exactly as the client wrote it ("2019-11-27", "June 30, 2006").
type Movie struct {
	Base
	Title   string `json:"title" db:"title"`
	Release string `json:"release" db:"release"`
}

// MovieID addresses a single movie through the ":id" path parameter.
type MovieID struct {
	ID int `param:"id" json:"-"`
}

func (p *MovieID) Validate() error {
	return validateID(p.ID)
}

// CreateMovieRequest is the body of POST /add-movie.
type CreateMovieRequest struct {
	Title   *Text `json:"title" validate:"required"`
	Release *Text `json:"release" validate:"required"`
}

func (p *CreateMovieRequest) Validate() error {
	return validate.Struct(p)
}

// Movie builds the entity to insert.
func (p *CreateMovieRequest) Movie() Movie {
	return Movie{Title: text(p.Title), Release: text(p.Release)}
}

// UpdateMovieRequest is the body of PATCH /movies/:id.
type UpdateMovieRequest struct {
	MovieID
	Title   *Text `json:"title"`
	Release *Text `json:"release"`
}

func (p *UpdateMovieRequest) Validate() error {
	return p.MovieID.Validate()
}

// MoviePatch is the set of columns an update will write. Nil fields are kept.
type MoviePatch struct {
	Title   *string
	Release *string
}

// Patch drops the fields that carry no value.
func (p *UpdateMovieRequest) Patch() MoviePatch {
	return MoviePatch{Title: value(p.Title), Release: value(p.Release)}
}

func (p MoviePatch) IsEmpty() bool {
	return p.Title == nil && p.Release == nil
}

// ListMoviesRequest is the (empty) payload of GET /movies.
type ListMoviesRequest struct{}

func (p *ListMoviesRequest) Validate() error {
	return nil
}

// MoviesResponse is the body of GET /movies.
type MoviesResponse struct {
	Success bool    `json:"success"`
	Movies  []Movie `json:"movies"`
}

// MovieResponse is the body of a single-movie read or write.
type MovieResponse struct {
	Success bool  `json:"success"`
	Movie   Movie `json:"movie"`
}

// MovieDeletedResponse is the body of DELETE /movies/:id.
type MovieDeletedResponse struct {
	Success bool `json:"success"`
	MovieID int  `json:"movie_id"`
}
