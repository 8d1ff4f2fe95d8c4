package application

import (
	"context"
	"fmt"

	"github.com/oksasatya/saas-landing-api/internal/domain/entity"
	repo "github.com/oksasatya/saas-landing-api/internal/domain/repository"
)

// BlogListLimit caps how many posts the public listing returns.
const BlogListLimit = 20

type BlogService struct {
	Store repo.DocumentStore
}

func NewBlogService(store repo.DocumentStore) *BlogService {
	return &BlogService{Store: store}
}

// ListPublished returns up to BlogListLimit published posts in store order.
func (s *BlogService) ListPublished(ctx context.Context) ([]*entity.Blogpost, error) {
	if s.Store == nil {
		return nil, ErrNoDatabase
	}
	docs, err := s.Store.GetDocuments(ctx, entity.BlogpostCollection, repo.Filter{"published": true}, BlogListLimit)
	if err != nil {
		return nil, fmt.Errorf("list blogposts: %w", err)
	}
	out := make([]*entity.Blogpost, 0, len(docs))
	for _, d := range docs {
		b, err := entity.BlogpostFromDocument(d)
		if err != nil {
			return nil, fmt.Errorf("decode blogpost: %w", err)
		}
		if !b.Published {
			continue
		}
		out = append(out, b)
	}
	count("blog_lists")
	return out, nil
}
