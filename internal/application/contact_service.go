package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/saas-landing-api/internal/domain/entity"
	repo "github.com/oksasatya/saas-landing-api/internal/domain/repository"
	"github.com/oksasatya/saas-landing-api/pkg/mailer"
	tpl "github.com/oksasatya/saas-landing-api/pkg/mailer/templates"
)

type ContactService struct {
	Store       repo.DocumentStore
	Jobs        JobPublisher
	Logger      *logrus.Logger
	AppName     string
	NotifyEmail string
}

type ContactInput struct {
	Name    string
	Email   string
	Message string
}

func NewContactService(store repo.DocumentStore, jobs JobPublisher, logger *logrus.Logger, appName, notifyEmail string) *ContactService {
	return &ContactService{
		Store:       store,
		Jobs:        jobs,
		Logger:      orStandard(logger),
		AppName:     appName,
		NotifyEmail: notifyEmail,
	}
}

// Submit validates and stores a contact message, then notifies the site owner.
// The sender's location is resolved later by the email worker from the IP.
func (s *ContactService) Submit(ctx context.Context, in ContactInput, meta RequestMeta) (string, error) {
	m, err := entity.NewContactMessage(in.Name, in.Email, in.Message)
	if err != nil {
		return "", err
	}
	if s.Store == nil {
		return "", ErrNoDatabase
	}
	id, err := s.Store.CreateDocument(ctx, entity.ContactMessageCollection, m.ToDocument())
	if err != nil {
		return "", err
	}
	count("contacts")

	if s.NotifyEmail != "" && s.Jobs != nil {
		enqueue(ctx, s.Jobs, s.Logger, meta, mailer.EmailJob{
			To:       s.NotifyEmail,
			Template: tpl.ContactNotification,
			Data:     tpl.NewContactNotificationData(s.AppName, s.NotifyEmail, m.Name, m.Email, m.Message, meta.options()...),
		})
	}
	return id, nil
}
