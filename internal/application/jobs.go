package application

import (
	"context"
	"errors"
	"expvar"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/saas-landing-api/pkg/mailer"
	tpl "github.com/oksasatya/saas-landing-api/pkg/mailer/templates"
)

// ErrNoDatabase is returned when the service runs without a document store.
var ErrNoDatabase = errors.New("database not available")

// JobPublisher puts background jobs on the mail queue.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// RequestMeta describes the HTTP request that triggered an operation.
type RequestMeta struct {
	IP        string
	UserAgent string
	RequestID string
}

func (m RequestMeta) options() []tpl.Option {
	return []tpl.Option{tpl.WithIP(m.IP), tpl.WithUserAgent(m.UserAgent), tpl.WithTime(time.Now())}
}

// Stats exposes request counters on /api/debug/vars.
var Stats = expvar.NewMap("landing")

func count(name string) { Stats.Add(name, 1) }

// enqueue publishes job if a publisher is configured. Failures are logged only.
func enqueue(ctx context.Context, pub JobPublisher, logger *logrus.Logger, meta RequestMeta, job mailer.EmailJob) {
	if pub == nil {
		return
	}
	if err := pub.PublishJSON(ctx, job); err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"template":   job.Template,
			"request_id": meta.RequestID,
		}).Warn("enqueue email failed")
	}
}

func orStandard(l *logrus.Logger) *logrus.Logger {
	if l == nil {
		return logrus.StandardLogger()
	}
	return l
}
