package main

import (
	"context"
	"fmt"

	"github.com/oksasatya/saas-landing-api/internal/domain/entity"
	"github.com/oksasatya/saas-landing-api/internal/domain/repository"
)

func ptr[T any](v T) *T { return &v }

var demoPosts = []entity.BlogpostParams{
	{
		Title:   "Launching our public beta",
		Slug:    "launching-public-beta",
		Excerpt: ptr("Everything that shipped in the first public release."),
		Content: "After months of private testing the product is open to everyone. This post walks through what is included and what comes next.",
		Author:  "Product Team",
		Tags:    []string{"announcement", "release"},
	},
	{
		Title:   "Five onboarding tips",
		Slug:    "five-onboarding-tips",
		Content: "Invite your team early, connect one data source, set up alerts, pick a dashboard template and book a walkthrough.",
		Author:  "Customer Success",
		Tags:    []string{"guide"},
	},
	{
		Title:     "Pricing changes (draft)",
		Slug:      "pricing-changes-draft",
		Content:   "Internal draft, not ready for the public listing.",
		Author:    "Product Team",
		Published: ptr(false),
	},
}

var demoProducts = []entity.ProductParams{
	{Title: "Starter", Description: ptr("For individuals trying things out."), Price: 0, Category: "plan"},
	{Title: "Team", Description: ptr("Shared workspaces and SSO."), Price: 29, Category: "plan"},
	{Title: "Enterprise onboarding", Price: 1500, Category: "service", InStock: ptr(false)},
}

// seedBlogposts inserts demo posts whose slug is not stored yet.
func seedBlogposts(ctx context.Context, store repository.DocumentStore) (int, error) {
	n := 0
	for _, p := range demoPosts {
		existing, err := store.GetDocuments(ctx, entity.BlogpostCollection, repository.Filter{"slug": p.Slug}, 1)
		if err != nil {
			return n, err
		}
		if len(existing) > 0 {
			continue
		}
		b, err := entity.NewBlogpost(p)
		if err != nil {
			return n, fmt.Errorf("blogpost %q: %w", p.Slug, err)
		}
		if _, err := store.CreateDocument(ctx, entity.BlogpostCollection, b.ToDocument()); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// seedProducts inserts demo products whose title is not stored yet.
func seedProducts(ctx context.Context, store repository.DocumentStore) (int, error) {
	n := 0
	for _, p := range demoProducts {
		existing, err := store.GetDocuments(ctx, entity.ProductCollection, repository.Filter{"title": p.Title}, 1)
		if err != nil {
			return n, err
		}
		if len(existing) > 0 {
			continue
		}
		pr, err := entity.NewProduct(p)
		if err != nil {
			return n, fmt.Errorf("product %q: %w", p.Title, err)
		}
		if _, err := store.CreateDocument(ctx, entity.ProductCollection, pr.ToDocument()); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
