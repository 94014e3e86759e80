package chi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/northgate-partners/webcore/internal/db"
	"github.com/northgate-partners/webcore/internal/domain"
	analyticsuc "github.com/northgate-partners/webcore/internal/usecase/analytics"
	contactuc "github.com/northgate-partners/webcore/internal/usecase/contact"
	healthuc "github.com/northgate-partners/webcore/internal/usecase/health"
	searchuc "github.com/northgate-partners/webcore/internal/usecase/search"
	sitemapuc "github.com/northgate-partners/webcore/internal/usecase/sitemap"
)

const testAdminKey = "admin-secret"

type fakeInsightRepo struct {
	rows []domain.Insight
	err  error
}

func (f *fakeInsightRepo) Search(_ context.Context, _ string, _ domain.DateRange) ([]domain.Insight, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeInsightRepo) ListPublished(_ context.Context) ([]domain.Insight, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

type fakeCredentialRepo struct {
	rows     []domain.Credential
	err      error
	lastFilt domain.CredentialFilters
}

func (f *fakeCredentialRepo) Search(_ context.Context, _ string, filt domain.CredentialFilters) ([]domain.Credential, error) {
	f.lastFilt = filt
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeCredentialRepo) ListActive(_ context.Context) ([]domain.Credential, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

type fakeCache struct {
	data   []byte
	busted bool
	err    error
}

func (f *fakeCache) Get(_ context.Context) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.data == nil {
		return nil, db.ErrKeyNotFound
	}
	return f.data, nil
}

func (f *fakeCache) Put(_ context.Context, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.data = data
	return nil
}

func (f *fakeCache) Bust(_ context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.busted = true
	f.data = nil
	return nil
}

type fakeStream struct {
	events   []domain.Event
	contacts []domain.ContactSubmission
	err      error
}

func (f *fakeStream) AppendAnalytics(_ context.Context, ev domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeStream) AppendContactNotification(_ context.Context, sub domain.ContactSubmission) error {
	if f.err != nil {
		return f.err
	}
	f.contacts = append(f.contacts, sub)
	return nil
}

type fakeContactStore struct {
	inserted []domain.ContactSubmission
	err      error
}

func (f *fakeContactStore) Insert(_ context.Context, sub domain.ContactSubmission) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, sub)
	return nil
}

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(_ context.Context) error { return f.err }

type testEnv struct {
	insights    *fakeInsightRepo
	credentials *fakeCredentialRepo
	cache       *fakeCache
	stream      *fakeStream
	contacts    *fakeContactStore
	pgPing      *fakePinger
	redisPing   *fakePinger
	router      http.Handler
}

func newTestEnv() *testEnv {
	env := &testEnv{
		insights:    &fakeInsightRepo{},
		credentials: &fakeCredentialRepo{},
		cache:       &fakeCache{},
		stream:      &fakeStream{},
		contacts:    &fakeContactStore{},
		pgPing:      &fakePinger{},
		redisPing:   &fakePinger{},
	}

	searchSvc := searchuc.New(env.insights, env.credentials, domain.DefaultScoreWeights())
	sitemapSvc := sitemapuc.New("https://example.com", env.insights, env.credentials, env.cache)
	analyticsSvc := analyticsuc.New(env.stream)
	contactSvc := contactuc.New(env.contacts, env.stream, "AE")
	healthSvc := healthuc.New(env.pgPing, env.redisPing)

	srv := NewServer(searchSvc, sitemapSvc, analyticsSvc, contactSvc, healthSvc, zap.NewNop())
	env.router = srv.Router([]string{testAdminKey})
	return env
}

func (env *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

func insightRow(id, title, excerpt string) domain.Insight {
	return domain.Insight{
		ID:          id,
		Title:       title,
		Excerpt:     excerpt,
		Content:     "body of " + title,
		Author:      "Sarah Mitchell",
		IsPublished: true,
		PublishedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func credentialRow(id, title, category string) domain.Credential {
	return domain.Credential{
		ID:        id,
		Title:     title,
		Category:  category,
		Type:      domain.CredentialTypeIndustry,
		IsActive:  true,
		SortOrder: 1,
		CreatedAt: time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC),
	}
}
