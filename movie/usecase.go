package movie

import (
	"context"

	"filmoteca/errs"
)

type Service interface {
	CreateMovie(ctx context.Context, m Movie) (Movie, error)
	ListMovies(ctx context.Context, f ListFilter) ([]Movie, error)
	GetMovie(ctx context.Context, id int64) (Movie, error)
	UpdateMovie(ctx context.Context, id int64, patch UpdateMovie) (Movie, error)
	DeleteMovie(ctx context.Context, id int64) error
	ImportPopular(ctx context.Context) (int, error)
	ImportByTmdbID(ctx context.Context, tmdbID int64) (Movie, bool, error)
	SearchCatalog(ctx context.Context, query string) ([]CatalogMovie, error)
}

type Repository interface {
	CreateMovie(ctx context.Context, m Movie) (Movie, error)
	Movies(ctx context.Context, f ListFilter) ([]Movie, error)
	GetByID(ctx context.Context, id int64) (Movie, error)
	GetByTmdbID(ctx context.Context, tmdbID int64) (Movie, error)
	UpdateMovie(ctx context.Context, id int64, patch UpdateMovie) (Movie, error)
	DeleteMovie(ctx context.Context, id int64) error
	// ImportMovies inserts the given movies in one transaction, silently
	// skipping ones whose tmdb id already exists, and returns how many rows
	// were actually inserted.
	ImportMovies(ctx context.Context, movies []Movie) (int, error)
}

// Catalog is the outbound port to the external movie catalog. All calls
// read the first page of results and fail fast on any upstream error.
type Catalog interface {
	MovieByID(ctx context.Context, tmdbID int64) (CatalogMovie, error)
	PopularMovies(ctx context.Context) ([]CatalogMovie, error)
	SearchMovies(ctx context.Context, query string) ([]CatalogMovie, error)
}

type Usecase struct {
	r Repository
	c Catalog
}

func NewUsecase(r Repository, c Catalog) *Usecase {
	return &Usecase{r: r, c: c}
}

func (uc *Usecase) CreateMovie(ctx context.Context, m Movie) (Movie, error) {
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}
	if m.GenreIDs == nil {
		m.GenreIDs = []int64{}
	}
	return uc.r.CreateMovie(ctx, m)
}

func (uc *Usecase) ListMovies(ctx context.Context, f ListFilter) ([]Movie, error) {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	return uc.r.Movies(ctx, f)
}

func (uc *Usecase) GetMovie(ctx context.Context, id int64) (Movie, error) {
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) UpdateMovie(ctx context.Context, id int64, patch UpdateMovie) (Movie, error) {
	return uc.r.UpdateMovie(ctx, id, patch)
}

func (uc *Usecase) DeleteMovie(ctx context.Context, id int64) error {
	return uc.r.DeleteMovie(ctx, id)
}

// ImportPopular pulls the catalog's popular page and stores every item not
// present locally. Duplicates are skipped, never refreshed. The whole batch
// commits at once, so the returned count is exact even on mid-batch failure.
func (uc *Usecase) ImportPopular(ctx context.Context) (int, error) {
	items, err := uc.c.PopularMovies(ctx)
	if err != nil {
		return 0, err
	}

	movies := make([]Movie, 0, len(items))
	for _, item := range items {
		movies = append(movies, FromCatalog(item))
	}
	return uc.r.ImportMovies(ctx, movies)
}

// ImportByTmdbID stores a single catalog record. When the tmdb id already
// exists locally the stored record is returned unchanged and the boolean is
// false; no catalog call is made in that case.
func (uc *Usecase) ImportByTmdbID(ctx context.Context, tmdbID int64) (Movie, bool, error) {
	if tmdbID <= 0 {
		return Movie{}, false, ErrInvalidTmdbID
	}

	existing, err := uc.r.GetByTmdbID(ctx, tmdbID)
	if err == nil {
		return existing, false, nil
	}
	if errs.ErrorCode(err) != errs.ENOTFOUND {
		return Movie{}, false, err
	}

	item, err := uc.c.MovieByID(ctx, tmdbID)
	if err != nil {
		return Movie{}, false, err
	}

	created, err := uc.r.CreateMovie(ctx, FromCatalog(item))
	if err != nil {
		return Movie{}, false, err
	}
	return created, true, nil
}

// SearchCatalog is a passthrough to the catalog, nothing is persisted.
func (uc *Usecase) SearchCatalog(ctx context.Context, query string) ([]CatalogMovie, error) {
	if query == "" {
		return nil, ErrInvalidQuery
	}
	return uc.c.SearchMovies(ctx, query)
}
