package entity

import "github.com/oksasatya/saas-landing-api/internal/domain/repository"

// Product is a catalog entry shown on the landing page.
type Product struct {
	Title       string  `json:"title" validate:"required" description:"Product title"`
	Description *string `json:"description" description:"Product description"`
	Price       float64 `json:"price" validate:"gte=0" description:"Price in dollars"`
	Category    string  `json:"category" validate:"required" description:"Product category"`
	InStock     bool    `json:"in_stock" default:"true" description:"Whether product is in stock"`
}

// ProductParams carries constructor input; a nil InStock means true.
type ProductParams struct {
	Title       string
	Description *string
	Price       float64
	Category    string
	InStock     *bool
}

func NewProduct(p ProductParams) (*Product, error) {
	pr := &Product{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		InStock:     true,
	}
	if p.InStock != nil {
		pr.InStock = *p.InStock
	}
	if err := check(pr); err != nil {
		return nil, err
	}
	return pr, nil
}

func (p *Product) ToDocument() repository.Document {
	doc := repository.Document{
		"title":       p.Title,
		"description": nil,
		"price":       p.Price,
		"category":    p.Category,
		"in_stock":    p.InStock,
	}
	if p.Description != nil {
		doc["description"] = *p.Description
	}
	return doc
}
