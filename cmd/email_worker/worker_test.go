package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/saas-landing-api/pkg/mailer"
	"github.com/oksasatya/saas-landing-api/pkg/mailer/templates"
)

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	out []sent
	err error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.out = append(f.out, sent{to, subject, text, html})
	return nil
}

func newWorker(s mailer.Sender) *worker {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &worker{Sender: s, Logger: l, SendTimeout: time.Second}
}

func encode(t *testing.T, job mailer.EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestHandleTemplateJob(t *testing.T) {
	s := &fakeSender{}
	job := mailer.EmailJob{
		To:       "owner@x.com",
		Template: templates.ContactNotification,
		Data:     templates.NewContactNotificationData("Landing", "owner@x.com", "Bob", "bob@x.com", "hello"),
	}
	if got := newWorker(s).Handle(context.Background(), encode(t, job)); got != outcomeAck {
		t.Fatalf("expected ack, got %v", got)
	}
	if len(s.out) != 1 || s.out[0].to != "owner@x.com" || !strings.Contains(s.out[0].text, "hello") {
		t.Fatalf("unexpected sends %+v", s.out)
	}
}

type fixedGeo struct {
	geo   templates.Geo
	calls []string
}

func (g *fixedGeo) Lookup(_ context.Context, ip string) (templates.Geo, error) {
	g.calls = append(g.calls, ip)
	return g.geo, nil
}

func TestHandleResolvesSenderLocation(t *testing.T) {
	s := &fakeSender{}
	geo := &fixedGeo{geo: templates.Geo{City: "Bandung", Country: "Indonesia"}}
	w := newWorker(s)
	w.Geo = geo

	job := mailer.EmailJob{
		Template: templates.ContactNotification,
		Data: templates.NewContactNotificationData("Landing", "owner@x.com", "Bob", "bob@x.com", "hello",
			templates.WithIP("203.0.113.7")),
	}
	if got := w.Handle(context.Background(), encode(t, job)); got != outcomeAck {
		t.Fatalf("expected ack, got %v", got)
	}
	if len(geo.calls) != 1 || geo.calls[0] != "203.0.113.7" {
		t.Fatalf("unexpected lookups %v", geo.calls)
	}
	if len(s.out) != 1 || !strings.Contains(s.out[0].text, "Location: Bandung, Indonesia") {
		t.Fatalf("expected location in email, got %+v", s.out)
	}

	// a job that already carries a location is not looked up again
	job.Data = templates.NewContactNotificationData("Landing", "owner@x.com", "Bob", "bob@x.com", "hello",
		templates.WithIP("203.0.113.7"), templates.WithLocation("Jakarta"))
	w.Handle(context.Background(), encode(t, job))
	if len(geo.calls) != 1 {
		t.Fatalf("expected no second lookup, got %v", geo.calls)
	}
}

func TestHandleOutcomes(t *testing.T) {
	tests := []struct {
		name   string
		body   []byte
		sender *fakeSender
		want   outcome
	}{
		{"bad json", []byte("{"), &fakeSender{}, outcomeReject},
		{"unknown template", encode(t, mailer.EmailJob{To: "a@x.com", Template: "missing"}), &fakeSender{}, outcomeReject},
		{"no content", encode(t, mailer.EmailJob{To: "a@x.com"}), &fakeSender{}, outcomeReject},
		{"raw job", encode(t, mailer.EmailJob{To: "a@x.com", Subject: "s", Text: "t"}), &fakeSender{}, outcomeAck},
		{"send fails", encode(t, mailer.EmailJob{To: "a@x.com", Subject: "s", Text: "t"}), &fakeSender{err: errors.New("503")}, outcomeRetry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newWorker(tt.sender).Handle(context.Background(), tt.body); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
