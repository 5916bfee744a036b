package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"devdeck/internal/domain"
	"devdeck/internal/service"
)

type projectRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type ProjectResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func projectToResponse(p domain.TodoProject) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		Color:     p.Color,
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}

type todoRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	ProjectID   *int64  `json:"projectId"`
	DueDate     *string `json:"dueDate"`
	Completed   bool    `json:"completed"`
}

func (r todoRequest) input() (service.TodoInput, error) {
	in := service.TodoInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    domain.Priority(strings.ToLower(strings.TrimSpace(r.Priority))),
		ProjectID:   r.ProjectID,
		Completed:   r.Completed,
	}
	if r.DueDate != nil && strings.TrimSpace(*r.DueDate) != "" {
		due, err := parseDueDate(*r.DueDate)
		if err != nil {
			return in, err
		}
		in.DueDate = &due
	}
	return in, nil
}

// parseDueDate accepts RFC3339 timestamps and plain dates.
func parseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

type TodoResponse struct {
	ID          int64   `json:"id"`
	ProjectID   *int64  `json:"projectId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Completed   bool    `json:"completed"`
	DueDate     *string `json:"dueDate,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func todoToResponse(t domain.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Completed:   t.Completed,
		DueDate:     formatTimePtr(t.DueDate),
		CompletedAt: formatTimePtr(t.CompletedAt),
		CreatedAt:   formatTime(t.CreatedAt),
		UpdatedAt:   formatTime(t.UpdatedAt),
	}
}

func (h *Handler) listProjects(c *gin.Context) {
	projects, err := h.Todos.ListProjects(c.Request.Context(), userID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := make([]ProjectResponse, len(projects))
	for i := range projects {
		resp[i] = projectToResponse(projects[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	project, err := h.Todos.CreateProject(c.Request.Context(), userID(c), req.Name, req.Color)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projectToResponse(*project))
}

func (h *Handler) updateProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	project, err := h.Todos.UpdateProject(c.Request.Context(), userID(c), id, req.Name, req.Color)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectToResponse(*project))
}

func (h *Handler) deleteProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Todos.DeleteProject(c.Request.Context(), userID(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) listTodos(c *gin.Context) {
	var filter domain.TodoFilter
	if v := c.Query("project"); v != "" {
		pid, err := strconv.ParseInt(v, 10, 64)
		if err != nil || pid <= 0 {
			badRequest(c, "invalid project filter")
			return
		}
		filter.ProjectID = &pid
	}
	if v := c.Query("completed"); v != "" {
		done, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(c, "invalid completed filter")
			return
		}
		filter.Completed = &done
	}

	todos, err := h.Todos.ListTodos(c.Request.Context(), userID(c), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := make([]TodoResponse, len(todos))
	for i := range todos {
		resp[i] = todoToResponse(todos[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) bindTodo(c *gin.Context) (service.TodoInput, bool) {
	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return service.TodoInput{}, false
	}
	in, err := req.input()
	if err != nil {
		badRequest(c, "dueDate must be RFC3339 or YYYY-MM-DD")
		return service.TodoInput{}, false
	}
	return in, true
}

func (h *Handler) createTodo(c *gin.Context) {
	in, ok := h.bindTodo(c)
	if !ok {
		return
	}
	todo, err := h.Todos.CreateTodo(c.Request.Context(), userID(c), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todoToResponse(*todo))
}

func (h *Handler) getTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	todo, err := h.Todos.GetTodo(c.Request.Context(), userID(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(*todo))
}

func (h *Handler) updateTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := h.bindTodo(c)
	if !ok {
		return
	}
	todo, err := h.Todos.UpdateTodo(c.Request.Context(), userID(c), id, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(*todo))
}

func (h *Handler) toggleTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	todo, err := h.Todos.ToggleTodo(c.Request.Context(), userID(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(*todo))
}

func (h *Handler) deleteTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Todos.DeleteTodo(c.Request.Context(), userID(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
