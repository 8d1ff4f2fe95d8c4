package templates

import (
	"context"
	"strings"
	"time"
)

type Option func(*EmailData)

func WithIP(ip string) Option        { return func(d *EmailData) { d.IP = ip } }
func WithUserAgent(ua string) Option { return func(d *EmailData) { d.UserAgent = ua } }
func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04 MST")
	}
}

func WithLocation(loc string) Option {
	return func(d *EmailData) {
		if s := strings.TrimSpace(loc); s != "" {
			d.Location = s
		}
	}
}

// WithGeoFromIP resolves ip to a location; lookup failures are ignored.
func WithGeoFromIP(ctx context.Context, r GeoResolver, ip string) Option {
	return func(d *EmailData) {
		if r == nil || strings.TrimSpace(ip) == "" {
			return
		}
		if g, err := r.Lookup(ctx, ip); err == nil {
			WithLocation(FormatGeo(g))(d)
		}
	}
}

// Locate fills data["Location"] from data["IP"] when no location is set yet.
func Locate(ctx context.Context, r GeoResolver, data map[string]any) {
	if data == nil {
		return
	}
	if loc, _ := data["Location"].(string); strings.TrimSpace(loc) != "" {
		return
	}
	ip, _ := data["IP"].(string)
	var d EmailData
	WithGeoFromIP(ctx, r, ip)(&d)
	if d.Location != "" {
		data["Location"] = d.Location
	}
}

func newData(typ, appName, name, email, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Type:           typ,
		AppName:        appName,
		Name:           name,
		Email:          email,
		RecipientEmail: recipient,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewWelcomeData greets a user who just signed up.
func NewWelcomeData(appName, name, email string, opts ...Option) map[string]any {
	return ToMap(newData(Welcome, appName, name, email, email, opts...))
}

// NewContactNotificationData tells the site owner about a contact form message.
func NewContactNotificationData(appName, owner, name, email, message string, opts ...Option) map[string]any {
	d := newData(ContactNotification, appName, name, email, owner, opts...)
	d.Message = message
	return ToMap(d)
}
