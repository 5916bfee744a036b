package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"devdeck/internal/domain"
	"devdeck/internal/service"
)

type promptRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Favorite bool     `json:"favorite"`
}

func (r promptRequest) input() service.PromptInput {
	return service.PromptInput{
		Title:    r.Title,
		Content:  r.Content,
		Category: r.Category,
		Tags:     r.Tags,
		Favorite: r.Favorite,
	}
}

type PromptResponse struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	Favorite  bool     `json:"favorite"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

func promptToResponse(p domain.Prompt) PromptResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return PromptResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Category:  p.Category,
		Tags:      tags,
		Favorite:  p.Favorite,
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}

func (h *Handler) listPrompts(c *gin.Context) {
	filter := domain.PromptFilter{
		Category: c.Query("category"),
		Search:   c.Query("q"),
	}
	if v := c.Query("favorite"); v != "" {
		fav, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(c, "invalid favorite filter")
			return
		}
		filter.FavoriteOnly = fav
	}
	prompts, err := h.Prompts.List(c.Request.Context(), userID(c), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := make([]PromptResponse, len(prompts))
	for i := range prompts {
		resp[i] = promptToResponse(prompts[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createPrompt(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	prompt, err := h.Prompts.Create(c.Request.Context(), userID(c), req.input())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, promptToResponse(*prompt))
}

func (h *Handler) getPrompt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	prompt, err := h.Prompts.Get(c.Request.Context(), userID(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, promptToResponse(*prompt))
}

func (h *Handler) updatePrompt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	prompt, err := h.Prompts.Update(c.Request.Context(), userID(c), id, req.input())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, promptToResponse(*prompt))
}

func (h *Handler) deletePrompt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Prompts.Delete(c.Request.Context(), userID(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
