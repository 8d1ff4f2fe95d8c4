package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/saas-landing-api/internal/application"
	"github.com/oksasatya/saas-landing-api/internal/domain/entity"
)

type BlogHandler struct {
	Svc    *application.BlogService
	Logger *logrus.Logger
}

func NewBlogHandler(svc *application.BlogService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Svc: svc, Logger: logger}
}

// blogResponse is the public shape of a post; it never carries the store id.
type blogResponse struct {
	Title     string   `json:"title"`
	Slug      string   `json:"slug"`
	Excerpt   *string  `json:"excerpt"`
	Content   string   `json:"content"`
	Author    string   `json:"author"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}

func toBlogResponse(b *entity.Blogpost) blogResponse {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return blogResponse{
		Title:     b.Title,
		Slug:      b.Slug,
		Excerpt:   b.Excerpt,
		Content:   b.Content,
		Author:    b.Author,
		Tags:      tags,
		Published: b.Published,
	}
}

// List GET /api/blogs
func (h *BlogHandler) List(c *gin.Context) {
	posts, err := h.Svc.ListPublished(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, "list blogs", err)
		return
	}
	out := make([]blogResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toBlogResponse(p))
	}
	c.JSON(http.StatusOK, out)
}
