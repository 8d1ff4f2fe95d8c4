package entity

import "github.com/oksasatya/saas-landing-api/internal/domain/repository"

// User is an account created through signup. PasswordHash never holds the
// raw password.
type User struct {
	ID           string  `json:"-"`
	Name         string  `json:"name" validate:"required" description:"Full name"`
	Email        string  `json:"email" validate:"required,email" description:"Email address"`
	PasswordHash string  `json:"password_hash" validate:"required" description:"Password hash (server-side only)"`
	Avatar       *string `json:"avatar" validate:"omitempty,url" description:"Avatar URL"`
	IsActive     bool    `json:"is_active" default:"true" description:"Whether user is active"`
}

// NewUser builds an active user from a name, email and an already computed hash.
func NewUser(name, email, passwordHash string) (*User, error) {
	u := &User{Name: name, Email: email, PasswordHash: passwordHash, IsActive: true}
	if err := check(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) ToDocument() repository.Document {
	doc := repository.Document{
		"name":          u.Name,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"avatar":        nil,
		"is_active":     u.IsActive,
	}
	if u.Avatar != nil {
		doc["avatar"] = *u.Avatar
	}
	return doc
}

// UserFromDocument reads a stored user record.
func UserFromDocument(doc repository.Document) (*User, error) {
	u := &User{ID: docID(doc)}
	var err error
	if u.Name, err = str(doc, "name"); err != nil {
		return nil, err
	}
	if u.Email, err = str(doc, "email"); err != nil {
		return nil, err
	}
	if u.PasswordHash, err = str(doc, "password_hash"); err != nil {
		return nil, err
	}
	if u.Avatar, err = optStr(doc, "avatar"); err != nil {
		return nil, err
	}
	if u.IsActive, err = boolean(doc, "is_active", true); err != nil {
		return nil, err
	}
	return u, nil
}
