package entity

import "github.com/oksasatya/saas-landing-api/internal/domain/repository"

// Blogpost is a public article. Only published posts are listed.
type Blogpost struct {
	ID        string   `json:"-"`
	Title     string   `json:"title" validate:"required"`
	Slug      string   `json:"slug" validate:"required" description:"URL-friendly identifier"`
	Excerpt   *string  `json:"excerpt"`
	Content   string   `json:"content" validate:"required"`
	Author    string   `json:"author" validate:"required"`
	Tags      []string `json:"tags" default:"[]"`
	Published bool     `json:"published" default:"true"`
}

// BlogpostParams carries constructor input; a nil Published means true.
type BlogpostParams struct {
	Title     string
	Slug      string
	Excerpt   *string
	Content   string
	Author    string
	Tags      []string
	Published *bool
}

func NewBlogpost(p BlogpostParams) (*Blogpost, error) {
	b := &Blogpost{
		Title:     p.Title,
		Slug:      p.Slug,
		Excerpt:   p.Excerpt,
		Content:   p.Content,
		Author:    p.Author,
		Tags:      append([]string{}, p.Tags...),
		Published: true,
	}
	if p.Published != nil {
		b.Published = *p.Published
	}
	if err := check(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Blogpost) ToDocument() repository.Document {
	tags := make([]any, 0, len(b.Tags))
	for _, t := range b.Tags {
		tags = append(tags, t)
	}
	doc := repository.Document{
		"title":     b.Title,
		"slug":      b.Slug,
		"excerpt":   nil,
		"content":   b.Content,
		"author":    b.Author,
		"tags":      tags,
		"published": b.Published,
	}
	if b.Excerpt != nil {
		doc["excerpt"] = *b.Excerpt
	}
	return doc
}

// BlogpostFromDocument reads and validates a stored blog post.
func BlogpostFromDocument(doc repository.Document) (*Blogpost, error) {
	b := &Blogpost{ID: docID(doc)}
	var err error
	if b.Title, err = str(doc, "title"); err != nil {
		return nil, err
	}
	if b.Slug, err = str(doc, "slug"); err != nil {
		return nil, err
	}
	if b.Excerpt, err = optStr(doc, "excerpt"); err != nil {
		return nil, err
	}
	if b.Content, err = str(doc, "content"); err != nil {
		return nil, err
	}
	if b.Author, err = str(doc, "author"); err != nil {
		return nil, err
	}
	if b.Tags, err = strList(doc, "tags"); err != nil {
		return nil, err
	}
	if b.Published, err = boolean(doc, "published", true); err != nil {
		return nil, err
	}
	if err := check(b); err != nil {
		return nil, err
	}
	return b, nil
}
