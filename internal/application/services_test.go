package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/saas-landing-api/internal/domain/entity"
	repo "github.com/oksasatya/saas-landing-api/internal/domain/repository"
	"github.com/oksasatya/saas-landing-api/internal/infrastructure/memory"
	"github.com/oksasatya/saas-landing-api/pkg/helpers"
	"github.com/oksasatya/saas-landing-api/pkg/mailer"
	tpl "github.com/oksasatya/saas-landing-api/pkg/mailer/templates"
)

type recordingPublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body.(mailer.EmailJob))
	return nil
}

type brokenStore struct {
	repo.DocumentStore
	err error
}

func (s brokenStore) ListCollections(context.Context) ([]string, error) { return nil, s.err }

func (s brokenStore) GetDocuments(context.Context, string, repo.Filter, int) ([]repo.Document, error) {
	return nil, s.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func newAuth(t *testing.T, store repo.DocumentStore, rdb *redis.Client, pub JobPublisher) *AuthService {
	t.Helper()
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	return NewAuthService(store, jwt, rdb, pub, quietLogger(), "Landing")
}

func TestSignupThenLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore("test")
	pub := &recordingPublisher{}
	svc := newAuth(t, store, nil, pub)

	id, err := svc.Signup(ctx, SignupInput{Name: "A", Email: "a@x.com", Password: "secret"}, RequestMeta{IP: "127.0.0.1"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty id")
	}

	docs, _ := store.GetDocuments(ctx, entity.UserCollection, repo.Filter{"email": "a@x.com"}, 0)
	if len(docs) != 1 {
		t.Fatalf("expected 1 user, got %d", len(docs))
	}
	if docs[0]["password_hash"] == "secret" {
		t.Fatal("raw password stored")
	}
	if docs[0]["is_active"] != true {
		t.Fatalf("expected is_active=true, got %v", docs[0]["is_active"])
	}

	u, pair, err := svc.Login(ctx, "a@x.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.Name != "A" || u.Email != "a@x.com" || u.ID != id {
		t.Fatalf("unexpected user %+v", u)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected token pair")
	}

	if len(pub.jobs) != 1 || pub.jobs[0].Template != tpl.Welcome || pub.jobs[0].To != "a@x.com" {
		t.Fatalf("expected one welcome job, got %+v", pub.jobs)
	}
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore("test")
	svc := newAuth(t, store, nil, nil)
	if _, err := svc.Signup(ctx, SignupInput{Name: "A", Email: "a@x.com", Password: "secret"}, RequestMeta{}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", "a@x.com", "wrong"},
		{"unknown email", "nobody@x.com", "secret"},
		{"case differs", "A@x.com", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Login(ctx, tt.email, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestLoginStoreError(t *testing.T) {
	svc := newAuth(t, brokenStore{err: errors.New("boom")}, nil, nil)
	_, _, err := svc.Login(context.Background(), "a@x.com", "secret")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestLoginLegacyDigest(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore("test")
	// sha256("secret")
	legacy := "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b"
	if _, err := store.CreateDocument(ctx, entity.UserCollection, repo.Document{
		"name": "Old", "email": "old@x.com", "password_hash": legacy, "is_active": true,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := newAuth(t, store, nil, nil)
	if _, err := svc.Authenticate(ctx, "old@x.com", "secret"); err != nil {
		t.Fatalf("legacy login: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "old@x.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignupDuplicateAndInvalid(t *testing.T) {
	ctx := context.Background()
	svc := newAuth(t, memory.NewDocumentStore("test"), nil, nil)
	in := SignupInput{Name: "A", Email: "a@x.com", Password: "secret"}
	if _, err := svc.Signup(ctx, in, RequestMeta{}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := svc.Signup(ctx, in, RequestMeta{}); !errors.Is(err, repo.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if _, err := svc.Signup(ctx, SignupInput{Name: "B", Email: "not-an-email", Password: "x"}, RequestMeta{}); !errors.Is(err, entity.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestSignupSurvivesPublishFailure(t *testing.T) {
	svc := newAuth(t, memory.NewDocumentStore("test"), nil, &recordingPublisher{err: errors.New("broker down")})
	if _, err := svc.Signup(context.Background(), SignupInput{Name: "A", Email: "a@x.com", Password: "secret"}, RequestMeta{}); err != nil {
		t.Fatalf("publish failure must not fail signup: %v", err)
	}
}

func TestRedisSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	svc := newAuth(t, memory.NewDocumentStore("test"), rdb, nil)
	id, err := svc.Signup(ctx, SignupInput{Name: "A", Email: "a@x.com", Password: "secret"}, RequestMeta{})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	_, pair, err := svc.Login(ctx, "a@x.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got := mr.HGet(SessionKey(id), "email"); got != "a@x.com" {
		t.Fatalf("session email=%q", got)
	}
	firstSID := mr.HGet(SessionKey(id), "sid")

	rotated, sub, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if sub.SessionID == firstSID || mr.HGet(SessionKey(id), "sid") != sub.SessionID {
		t.Fatal("expected session id rotation")
	}
	if _, _, err := svc.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("old refresh token must be rejected, got %v", err)
	}

	if err := svc.Logout(ctx, id); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if mr.Exists(SessionKey(id)) {
		t.Fatal("expected session removed")
	}
	if _, _, err := svc.Refresh(ctx, rotated.RefreshToken); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("refresh after logout, got %v", err)
	}
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := newAuth(t, memory.NewDocumentStore("test"), nil, nil)
	if _, _, err := svc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func seedPost(t *testing.T, store repo.DocumentStore, title string, published bool) {
	t.Helper()
	b, err := entity.NewBlogpost(entity.BlogpostParams{
		Title: title, Slug: strings.ToLower(title), Content: "body", Author: "me", Published: &published,
	})
	if err != nil {
		t.Fatalf("new blogpost: %v", err)
	}
	if _, err := store.CreateDocument(context.Background(), entity.BlogpostCollection, b.ToDocument()); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestListPublished(t *testing.T) {
	store := memory.NewDocumentStore("test")
	seedPost(t, store, "One", true)
	seedPost(t, store, "Hidden", false)
	seedPost(t, store, "Two", true)

	posts, err := NewBlogService(store).ListPublished(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 2 || posts[0].Title != "One" || posts[1].Title != "Two" {
		t.Fatalf("unexpected posts %+v", posts)
	}
}

func TestListPublishedCapsAt20(t *testing.T) {
	store := memory.NewDocumentStore("test")
	for i := 0; i < 25; i++ {
		seedPost(t, store, "Post", true)
	}
	posts, err := NewBlogService(store).ListPublished(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != BlogListLimit {
		t.Fatalf("expected %d posts, got %d", BlogListLimit, len(posts))
	}
}

func TestListPublishedEmptyAndBroken(t *testing.T) {
	posts, err := NewBlogService(memory.NewDocumentStore("test")).ListPublished(context.Background())
	if err != nil || posts == nil || len(posts) != 0 {
		t.Fatalf("expected empty non-nil list, got %v, %v", posts, err)
	}
	if _, err := NewBlogService(brokenStore{err: errors.New("down")}).ListPublished(context.Background()); err == nil {
		t.Fatal("expected error from broken store")
	}
}

func TestContactSubmit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore("test")
	pub := &recordingPublisher{}
	svc := NewContactService(store, pub, quietLogger(), "Landing", "owner@x.com")

	id, err := svc.Submit(ctx, ContactInput{Name: "Bob", Email: "bob@x.com", Message: "hello"}, RequestMeta{IP: "203.0.113.7"})
	if err != nil || id == "" {
		t.Fatalf("submit: id=%q err=%v", id, err)
	}
	if len(pub.jobs) != 1 || pub.jobs[0].To != "owner@x.com" || pub.jobs[0].Template != tpl.ContactNotification {
		t.Fatalf("unexpected jobs %+v", pub.jobs)
	}
	// location is left for the worker to resolve from the IP
	if data := pub.jobs[0].Data; data["IP"] != "203.0.113.7" || data["Location"] != nil {
		t.Fatalf("unexpected job data %v", data)
	}

	if _, err := svc.Submit(ctx, ContactInput{Name: "Bob", Email: "bob@x.com", Message: "hi"}, RequestMeta{}); !errors.Is(err, entity.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for short message, got %v", err)
	}
	docs, _ := store.GetDocuments(ctx, entity.ContactMessageCollection, nil, 0)
	if len(docs) != 1 {
		t.Fatalf("expected only the valid message stored, got %d", len(docs))
	}
}

func TestContactWithoutNotifyEmail(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewContactService(memory.NewDocumentStore("test"), pub, nil, "Landing", "")
	if _, err := svc.Submit(context.Background(), ContactInput{Name: "Bob", Email: "bob@x.com", Message: "hello"}, RequestMeta{}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(pub.jobs) != 0 {
		t.Fatalf("expected no notification, got %+v", pub.jobs)
	}
}

func TestHealthCheck(t *testing.T) {
	ctx := context.Background()

	r := NewHealthService(nil, false, false).Check(ctx)
	if r.Backend != "✅ Running" || r.Database != "❌ Not Available" || r.ConnectionStatus != "Not Connected" {
		t.Fatalf("no store: %+v", r)
	}
	if r.DatabaseURL != "❌ Not Set" || r.DatabaseName != "❌ Not Set" || r.Collections == nil {
		t.Fatalf("no store env: %+v", r)
	}

	store := memory.NewDocumentStore("test")
	for i := 0; i < 12; i++ {
		_, _ = store.CreateDocument(ctx, string(rune('a'+i)), repo.Document{"n": i})
	}
	r = NewHealthService(store, true, true).Check(ctx)
	if r.Database != "✅ Connected & Working" || r.ConnectionStatus != "Connected" || len(r.Collections) != 10 {
		t.Fatalf("working store: %+v", r)
	}
	if r.DatabaseURL != "✅ Set" || r.DatabaseName != "✅ Set" {
		t.Fatalf("env flags: %+v", r)
	}

	long := strings.Repeat("x", 80)
	r = NewHealthService(brokenStore{err: errors.New(long)}, true, false).Check(ctx)
	if r.Database != "⚠️  Connected but Error: "+strings.Repeat("x", 50) {
		t.Fatalf("broken store: %q", r.Database)
	}
	if r.ConnectionStatus != "Connected" {
		t.Fatalf("broken store status: %q", r.ConnectionStatus)
	}
}

func TestServicesWithoutDatabase(t *testing.T) {
	ctx := context.Background()
	auth := newAuth(t, nil, nil, nil)
	if _, err := auth.Signup(ctx, SignupInput{Name: "A", Email: "a@x.com", Password: "secret"}, RequestMeta{}); !errors.Is(err, ErrNoDatabase) {
		t.Fatalf("signup: %v", err)
	}
	if _, _, err := auth.Login(ctx, "a@x.com", "secret"); !errors.Is(err, ErrNoDatabase) {
		t.Fatalf("login: %v", err)
	}
	if _, err := NewBlogService(nil).ListPublished(ctx); !errors.Is(err, ErrNoDatabase) {
		t.Fatalf("blogs: %v", err)
	}
	contact := NewContactService(nil, nil, nil, "Landing", "")
	if _, err := contact.Submit(ctx, ContactInput{Name: "B", Email: "b@x.com", Message: "hello"}, RequestMeta{}); !errors.Is(err, ErrNoDatabase) {
		t.Fatalf("contact: %v", err)
	}
}
