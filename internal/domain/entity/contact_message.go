package entity

import "github.com/oksasatya/saas-landing-api/internal/domain/repository"

// ContactMessage is a message submitted through the landing page form.
type ContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=3"`
}

func NewContactMessage(name, email, message string) (*ContactMessage, error) {
	m := &ContactMessage{Name: name, Email: email, Message: message}
	if err := check(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ContactMessage) ToDocument() repository.Document {
	return repository.Document{
		"name":    m.Name,
		"email":   m.Email,
		"message": m.Message,
	}
}
