package movie

import (
	"strings"
	"time"

	"filmoteca/errs"
	"filmoteca/pkg/optional"
)

var (
	ErrMovieNotFound   = errs.Errorf(errs.ENOTFOUND, "movie: not found")
	ErrInvalidTitle    = errs.Errorf(errs.EINVALID, "movie: invalid title")
	ErrInvalidTmdbID   = errs.Errorf(errs.EINVALID, "movie: invalid tmdb id")
	ErrDuplicateTmdbID = errs.Errorf(errs.ECONFLICT, "movie: tmdb id already registered")
	ErrInvalidQuery    = errs.Errorf(errs.EINVALID, "movie: invalid search query")
)

// releaseDateLayout is the calendar date format used by the catalog.
const releaseDateLayout = "2006-01-02"

// Movie is a locally stored record, created manually or imported from the
// external catalog. TmdbID is the catalog's identifier and is unique across
// all rows; it never changes after creation.
type Movie struct {
	ID           int64      `json:"id"`
	TmdbID       int64      `json:"tmdb_id"`
	Title        string     `json:"title"`
	Overview     *string    `json:"overview"`
	ReleaseDate  *time.Time `json:"release_date"`
	GenreIDs     []int64    `json:"genre_ids"`
	VoteAverage  *float64   `json:"vote_average"`
	VoteCount    *int64     `json:"vote_count"`
	PosterPath   *string    `json:"poster_path"`
	BackdropPath *string    `json:"backdrop_path"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (m Movie) Validate() error {
	if m.TmdbID <= 0 {
		return ErrInvalidTmdbID
	}
	if strings.TrimSpace(m.Title) == "" {
		return ErrInvalidTitle
	}
	return nil
}

// UpdateMovie is a patch. Non-nullable fields use a nil pointer for "not
// supplied"; nullable fields are tri-state so an explicit null clears the
// stored value while an absent field keeps it. TmdbID is deliberately
// absent, the catalog identity of a row is fixed at creation. GenreIDs is
// not nullable, the stored list is empty at minimum.
type UpdateMovie struct {
	Title        *string
	Overview     optional.Value[string]
	ReleaseDate  optional.Value[time.Time]
	GenreIDs     *[]int64
	VoteAverage  optional.Value[float64]
	VoteCount    optional.Value[int64]
	PosterPath   optional.Value[string]
	BackdropPath optional.Value[string]
}

// Apply merges the patch into m field by field. Absent fields keep the
// prior value, explicit nulls clear it.
func (p UpdateMovie) Apply(m Movie) Movie {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Overview.Present() {
		m.Overview = p.Overview.Ptr()
	}
	if p.ReleaseDate.Present() {
		m.ReleaseDate = p.ReleaseDate.Ptr()
	}
	if p.GenreIDs != nil {
		m.GenreIDs = *p.GenreIDs
	}
	if p.VoteAverage.Present() {
		m.VoteAverage = p.VoteAverage.Ptr()
	}
	if p.VoteCount.Present() {
		m.VoteCount = p.VoteCount.Ptr()
	}
	if p.PosterPath.Present() {
		m.PosterPath = p.PosterPath.Ptr()
	}
	if p.BackdropPath.Present() {
		m.BackdropPath = p.BackdropPath.Ptr()
	}
	return m
}

// ListFilter narrows and pages the local listing. Title is a
// case-insensitive substring match when non-empty.
type ListFilter struct {
	Skip  int
	Limit int
	Title string
}

// CatalogMovie is one item as returned by the external catalog. ReleaseDate
// stays a raw string here, parsing happens during mapping.
type CatalogMovie struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Overview     *string  `json:"overview"`
	ReleaseDate  string   `json:"release_date"`
	GenreIDs     []int64  `json:"genre_ids"`
	VoteAverage  *float64 `json:"vote_average"`
	VoteCount    *int64   `json:"vote_count"`
	PosterPath   *string  `json:"poster_path"`
	BackdropPath *string  `json:"backdrop_path"`
}

// FromCatalog maps a catalog item to a local Movie. An absent or
// unparseable release date becomes nil; a missing genre id list becomes an
// empty one. Both import paths use this mapping.
func FromCatalog(cm CatalogMovie) Movie {
	m := Movie{
		TmdbID:       cm.ID,
		Title:        cm.Title,
		Overview:     cm.Overview,
		GenreIDs:     cm.GenreIDs,
		VoteAverage:  cm.VoteAverage,
		VoteCount:    cm.VoteCount,
		PosterPath:   cm.PosterPath,
		BackdropPath: cm.BackdropPath,
	}
	if m.GenreIDs == nil {
		m.GenreIDs = []int64{}
	}
	if cm.ReleaseDate != "" {
		if d, err := time.Parse(releaseDateLayout, cm.ReleaseDate); err == nil {
			m.ReleaseDate = &d
		}
	}
	return m
}
