package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/saas-landing-api/pkg/mailer"
	"github.com/oksasatya/saas-landing-api/pkg/mailer/templates"
)

type outcome int

const (
	outcomeAck    outcome = iota
	outcomeRetry          // requeue, delivery failed
	outcomeReject         // drop, the job can never succeed
)

type worker struct {
	Sender      mailer.Sender
	Logger      *logrus.Logger
	SendTimeout time.Duration

	// Geo resolves the sender location for templated jobs; nil skips it.
	Geo        templates.GeoResolver
	GeoTimeout time.Duration
}

// Handle decodes, renders and sends one queued email job.
func (w *worker) Handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.WithError(err).Warn("bad message")
		return outcomeReject
	}
	log := w.Logger.WithFields(logrus.Fields{"template": job.Template, "to": job.To})

	if w.Geo != nil && job.Template != "" {
		gctx, cancel := context.WithTimeout(ctx, w.geoTimeout())
		templates.Locate(gctx, w.Geo, job.Data)
		cancel()
	}

	if err := job.Prepare(); err != nil {
		log.WithError(err).Warn("prepare email failed")
		return outcomeReject
	}
	if job.Subject == "" || (job.Text == "" && job.HTML == "") {
		log.Warn("email job has no content")
		return outcomeReject
	}

	c, cancel := context.WithTimeout(ctx, w.SendTimeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, job.Subject, job.Text, job.HTML); err != nil {
		log.WithError(err).Warn("send failed")
		return outcomeRetry
	}
	log.Info("email sent")
	return outcomeAck
}

func (w *worker) geoTimeout() time.Duration {
	if w.GeoTimeout > 0 {
		return w.GeoTimeout
	}
	return 2 * time.Second
}
