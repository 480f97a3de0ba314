package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"filmoteca/user"
)

func (s *Server) RegisterUserRoutes(g *echo.Group) {
	g.POST("/users", s.handleAddUser)
	g.GET("/users", s.handleListUsers)
	g.GET("/users/:id", s.handleGetUser)
	g.PUT("/users/:id", s.handleUpdateUser)
	g.DELETE("/users/:id", s.handleDeleteUser)
}

type UserResponse struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FullName  *string `json:"full_name"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
}

func toUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toUserResponses(users []user.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

// handleAddUser godoc
// @Summary Create User
// @Description Add a new user; username and email must both be unused
// @Tags users
// @Accept json
// @Produce json
// @Param user body AddUserRequest true "User Data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/users [post]
func (s *Server) handleAddUser(c echo.Context) error {
	var req AddUserRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := s.UserService.AddUser(c.Request().Context(), req.ToUser())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, toUserResponse(created))
}

// handleListUsers godoc
// @Summary List Users
// @Description Page through users
// @Tags users
// @Produce json
// @Param skip query int false "Rows to skip (default 0)"
// @Param limit query int false "Max rows (default 10)"
// @Success 200 {array} UserResponse
// @Router /api/users [get]
func (s *Server) handleListUsers(c echo.Context) error {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		return err
	}

	users, err := s.UserService.ListUsers(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, toUserResponses(users))
}

func (s *Server) handleGetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	u, err := s.UserService.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, toUserResponse(u))
}

func (s *Server) handleUpdateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateUserRequest
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

	updated, err := s.UserService.UpdateUser(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, toUserResponse(updated))
}

func (s *Server) handleDeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := s.UserService.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]string{
		"status": "deleted",
	})
}
