package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"filmoteca/errs"
	"filmoteca/movie"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.POST("/movies", s.handleCreateMovie)
	g.GET("/movies", s.handleListMovies)
	g.GET("/movies/search", s.handleSearchCatalog)
	g.GET("/movies/:id", s.handleGetMovie)
	g.PUT("/movies/:id", s.handleUpdateMovie)
	g.DELETE("/movies/:id", s.handleDeleteMovie)
	g.POST("/movies/import/popular", s.handleImportPopular)
	g.POST("/movies/import/:tmdbID", s.handleImportByTmdbID)
}

// MovieResponse is the wire shape of a stored movie. The release date is
// rendered in the catalog's calendar-date format.
type MovieResponse struct {
	ID           int64    `json:"id"`
	TmdbID       int64    `json:"tmdb_id"`
	Title        string   `json:"title"`
	Overview     *string  `json:"overview"`
	ReleaseDate  *string  `json:"release_date"`
	GenreIDs     []int64  `json:"genre_ids"`
	VoteAverage  *float64 `json:"vote_average"`
	VoteCount    *int64   `json:"vote_count"`
	PosterPath   *string  `json:"poster_path"`
	BackdropPath *string  `json:"backdrop_path"`
	CreatedAt    string   `json:"created_at"`
}

func toMovieResponse(m movie.Movie) MovieResponse {
	resp := MovieResponse{
		ID:           m.ID,
		TmdbID:       m.TmdbID,
		Title:        m.Title,
		Overview:     m.Overview,
		GenreIDs:     m.GenreIDs,
		VoteAverage:  m.VoteAverage,
		VoteCount:    m.VoteCount,
		PosterPath:   m.PosterPath,
		BackdropPath: m.BackdropPath,
		CreatedAt:    m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if resp.GenreIDs == nil {
		resp.GenreIDs = []int64{}
	}
	if m.ReleaseDate != nil {
		d := m.ReleaseDate.Format(dateLayout)
		resp.ReleaseDate = &d
	}
	return resp
}

func toMovieResponses(movies []movie.Movie) []MovieResponse {
	out := make([]MovieResponse, len(movies))
	for i, m := range movies {
		out[i] = toMovieResponse(m)
	}
	return out
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Description Add a movie manually
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body CreateMovieRequest true "Movie Data"
// @Success 201 {object} MovieResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	var req CreateMovieRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := s.MovieService.CreateMovie(c.Request().Context(), req.ToMovie())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, toMovieResponse(created))
}

// handleListMovies godoc
// @Summary List Movies
// @Description Page through stored movies, optionally filtered by title substring
// @Tags movies
// @Produce json
// @Param skip query int false "Rows to skip (default 0)"
// @Param limit query int false "Max rows (default 10)"
// @Param title query string false "Case-insensitive title filter"
// @Success 200 {array} MovieResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		return err
	}

	movies, err := s.MovieService.ListMovies(c.Request().Context(), movie.ListFilter{
		Skip:  skip,
		Limit: limit,
		Title: strings.TrimSpace(c.QueryParam("title")),
	})
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, toMovieResponses(movies))
}

func (s *Server) handleGetMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	m, err := s.MovieService.GetMovie(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, toMovieResponse(m))
}

func (s *Server) handleUpdateMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateMovieRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	patch, err := req.ToPatch()
	if err != nil {
		return err
	}

	updated, err := s.MovieService.UpdateMovie(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, toMovieResponse(updated))
}

func (s *Server) handleDeleteMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := s.MovieService.DeleteMovie(c.Request().Context(), id); err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]string{
		"status": "deleted",
	})
}

// handleImportPopular godoc
// @Summary Import Popular Movies
// @Description Import the catalog's current popular page, skipping known tmdb ids
// @Tags movies
// @Produce json
// @Success 201 {object} map[string]int
// @Failure 502 {object} map[string]string
// @Router /api/movies/import/popular [post]
func (s *Server) handleImportPopular(c echo.Context) error {
	count, err := s.MovieService.ImportPopular(c.Request().Context())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, map[string]int{
		"count": count,
	})
}

func (s *Server) handleImportByTmdbID(c echo.Context) error {
	tmdbID, err := pathID(c, "tmdbID")
	if err != nil {
		return err
	}

	m, created, err := s.MovieService.ImportByTmdbID(c.Request().Context(), tmdbID)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return writeSuccess(c, status, toMovieResponse(m))
}

// handleSearchCatalog godoc
// @Summary Search Catalog
// @Description Free-text search against the external catalog, results are not persisted
// @Tags movies
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} movie.CatalogMovie
// @Failure 502 {object} map[string]string
// @Router /api/movies/search [get]
func (s *Server) handleSearchCatalog(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return movie.ErrInvalidQuery
	}

	results, err := s.MovieService.SearchCatalog(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, results)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Errorf(errs.EINVALID, "invalid %s path parameter", name)
	}
	return id, nil
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errs.Errorf(errs.EINVALID, "invalid %s query parameter", name)
	}
	return v, nil
}
