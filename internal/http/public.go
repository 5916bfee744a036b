package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devdeck/internal/domain"
)

type profileRequest struct {
	DisplayName string       `json:"displayName"`
	Theme       domain.Theme `json:"theme"`
}

type ProfileResponse struct {
	DisplayName string       `json:"displayName"`
	Theme       domain.Theme `json:"theme"`
	UpdatedAt   *string      `json:"updatedAt,omitempty"`
}

func profileToResponse(p domain.Profile) ProfileResponse {
	return ProfileResponse{
		DisplayName: p.DisplayName,
		Theme:       p.Theme,
		UpdatedAt:   formatTimePtr(&p.UpdatedAt),
	}
}

func (h *Handler) getProfile(c *gin.Context) {
	profile, err := h.Profiles.Get(c.Request.Context(), userID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileToResponse(*profile))
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	profile, err := h.Profiles.Update(c.Request.Context(), userID(c), req.DisplayName, req.Theme)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileToResponse(*profile))
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *Handler) submitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	inquiry, err := h.Contact.Submit(c.Request.Context(), domain.ContactInquiry{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": inquiry.ID, "received": formatTime(inquiry.CreatedAt)})
}

type QuoteResponse struct {
	ID     int64    `json:"id"`
	Text   string   `json:"text"`
	Author string   `json:"author"`
	Tags   []string `json:"tags"`
}

func quoteToResponse(q domain.Quote) QuoteResponse {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}
	return QuoteResponse{ID: q.ID, Text: q.Text, Author: q.Author, Tags: tags}
}

func (h *Handler) listQuotes(c *gin.Context) {
	quotes, err := h.Quotes.List(c.Request.Context(), c.Query("tag"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		resp[i] = quoteToResponse(quotes[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) quoteOfTheDay(c *gin.Context) {
	quote, err := h.Quotes.Today(c.Request.Context(), h.Now().In(h.Location))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteToResponse(*quote))
}

func (h *Handler) randomQuote(c *gin.Context) {
	quote, err := h.Quotes.Random(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteToResponse(*quote))
}

func (h *Handler) listHubs(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Hubs())
}

func (h *Handler) getHub(c *gin.Context) {
	hub, err := h.Catalog.Hub(c.Param("slug"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hub.Filter(c.Query("tag")))
}

func (h *Handler) listPlans(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Plans())
}

type assistantRequest struct {
	Message string `json:"message" binding:"required"`
	Context string `json:"context"`
}

func (h *Handler) askAssistant(c *gin.Context) {
	if h.Assistant == nil || !h.Assistant.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is not configured"})
		return
	}
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	reply, err := h.Assistant.Ask(c.Request.Context(), req.Message, req.Context)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
