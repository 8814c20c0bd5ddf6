package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/topicwire/topicwire/app/research"
)

func NewHandler(service ServiceInterface, feedCount int) *Handler {
	return &Handler{
		service:   service,
		feedCount: feedCount,
		startedAt: time.Now(),
	}
}

type fetchRequest struct {
	URL string `json:"url" binding:"required"`
}

func (h *Handler) FetchArticle(c *gin.Context) {
	h.requestCount.Add(1)

	var req fetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid request body, expected {\"url\": ...}"})
		return
	}

	doc, err := h.service.FetchDirect(c.Request.Context(), req.URL)
	if err != nil {
		h.failApplication(c, "fetch", err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *Handler) SearchArticles(c *gin.Context) {
	h.requestCount.Add(1)

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter 'q'"})
		return
	}

	docs, err := h.service.SearchFeeds(c.Request.Context(), query)
	if err != nil {
		h.failApplication(c, "search", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": docs,
		"total":    len(docs),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"feeds":     h.feedCount,
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"uptime":   time.Since(h.startedAt).Round(time.Second).String(),
		"feeds":    h.feedCount,
		"requests": h.requestCount.Load(),
		"failures": h.failureCount.Load(),
	})
}

// failApplication translates an acquisition failure into an HTTP response.
// The response carries the failure kind, never raw error text, so internal
// hostnames and addresses stay out of client-visible output.
func (h *Handler) failApplication(c *gin.Context, operation string, err error) {
	h.failureCount.Add(1)

	kind := research.ClassifyError(err)
	slog.Error("Request failed", "operation", operation,
		"kind", string(kind), "error", err)

	c.JSON(statusFor(kind), gin.H{
		"error": string(kind),
	})
}

func statusFor(kind research.FailureKind) int {
	switch kind {
	case research.FailureInvalidURL:
		return http.StatusUnprocessableEntity
	case research.FailureNoKeywordMatch:
		return http.StatusNotFound
	case research.FailureConfiguration:
		return http.StatusInternalServerError
	default:
		// unreachable, too_large, unsupported_content, no_candidates: the
		// upstream resource is the problem, not the request.
		return http.StatusBadGateway
	}
}
