package httpserver

import (
	"time"

	"filmoteca/errs"
	"filmoteca/movie"
	"filmoteca/pkg/optional"
	"filmoteca/user"
)

const dateLayout = "2006-01-02"

type CreateMovieRequest struct {
	TmdbID       int64    `json:"tmdb_id" validate:"required,gt=0"`
	Title        string   `json:"title" validate:"required,notblank,max=500"`
	Overview     *string  `json:"overview"`
	ReleaseDate  *string  `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
	GenreIDs     []int64  `json:"genre_ids"`
	VoteAverage  *float64 `json:"vote_average" validate:"omitempty,gte=0,lte=10"`
	VoteCount    *int64   `json:"vote_count" validate:"omitempty,gte=0"`
	PosterPath   *string  `json:"poster_path"`
	BackdropPath *string  `json:"backdrop_path"`
}

func (r CreateMovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		TmdbID:       r.TmdbID,
		Title:        r.Title,
		Overview:     r.Overview,
		ReleaseDate:  parseDate(r.ReleaseDate),
		GenreIDs:     r.GenreIDs,
		VoteAverage:  r.VoteAverage,
		VoteCount:    r.VoteCount,
		PosterPath:   r.PosterPath,
		BackdropPath: r.BackdropPath,
	}
}

// UpdateMovieRequest distinguishes absent fields from explicit nulls on the
// nullable columns. Those fields skip the tag validator and are checked in
// ToPatch instead, validator tags cannot see inside the tri-state wrapper.
type UpdateMovieRequest struct {
	Title        *string                 `json:"title" validate:"omitempty,notblank,max=500"`
	Overview     optional.Value[string]  `json:"overview" validate:"-"`
	ReleaseDate  optional.Value[string]  `json:"release_date" validate:"-"`
	GenreIDs     *[]int64                `json:"genre_ids"`
	VoteAverage  optional.Value[float64] `json:"vote_average" validate:"-"`
	VoteCount    optional.Value[int64]   `json:"vote_count" validate:"-"`
	PosterPath   optional.Value[string]  `json:"poster_path" validate:"-"`
	BackdropPath optional.Value[string]  `json:"backdrop_path" validate:"-"`
}

func (r UpdateMovieRequest) ToPatch() (movie.UpdateMovie, error) {
	releaseDate := optional.Value[time.Time]{}
	if r.ReleaseDate.Present() {
		if r.ReleaseDate.IsNull() {
			releaseDate = optional.Null[time.Time]()
		} else {
			raw, _ := r.ReleaseDate.Get()
			d, err := time.Parse(dateLayout, raw)
			if err != nil {
				return movie.UpdateMovie{}, errs.Errorf(errs.EINVALID, "release_date must use the %s format", dateLayout)
			}
			releaseDate = optional.Of(d)
		}
	}
	if avg, ok := r.VoteAverage.Get(); ok && (avg < 0 || avg > 10) {
		return movie.UpdateMovie{}, errs.Errorf(errs.EINVALID, "vote_average must be between 0 and 10")
	}
	if count, ok := r.VoteCount.Get(); ok && count < 0 {
		return movie.UpdateMovie{}, errs.Errorf(errs.EINVALID, "vote_count must not be negative")
	}
	return movie.UpdateMovie{
		Title:        r.Title,
		Overview:     r.Overview,
		ReleaseDate:  releaseDate,
		GenreIDs:     r.GenreIDs,
		VoteAverage:  r.VoteAverage,
		VoteCount:    r.VoteCount,
		PosterPath:   r.PosterPath,
		BackdropPath: r.BackdropPath,
	}, nil
}

type AddUserRequest struct {
	Username string  `json:"username" validate:"required,notblank,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
}

func (r AddUserRequest) ToUser() user.User {
	return user.User{
		Username: r.Username,
		Email:    r.Email,
		FullName: r.FullName,
	}
}

type UpdateUserRequest struct {
	Username *string                `json:"username" validate:"omitempty,notblank,min=2,max=100"`
	Email    *string                `json:"email" validate:"omitempty,email,max=255"`
	FullName optional.Value[string] `json:"full_name" validate:"-"`
	IsActive *bool                  `json:"is_active"`
}

func (r UpdateUserRequest) ToPatch() (user.UpdateUser, error) {
	if name, ok := r.FullName.Get(); ok && len(name) > 255 {
		return user.UpdateUser{}, errs.Errorf(errs.EINVALID, "full_name must not exceed 255 characters")
	}
	return user.UpdateUser{
		Username: r.Username,
		Email:    r.Email,
		FullName: r.FullName,
		IsActive: r.IsActive,
	}, nil
}

// parseDate turns a validated catalog-format date into a time value. The
// datetime validation tag guarantees parseability for bound requests.
func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	d, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &d
}
