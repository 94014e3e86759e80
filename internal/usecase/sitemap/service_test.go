package sitemap

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/northgate-partners/webcore/internal/db"
	"github.com/northgate-partners/webcore/internal/domain"
)

type mockInsights struct {
	rows  []domain.Insight
	err   error
	calls int
}

func (m *mockInsights) ListPublished(_ context.Context) ([]domain.Insight, error) {
	m.calls++
	return m.rows, m.err
}

type mockCredentials struct {
	rows []domain.Credential
	err  error
}

func (m *mockCredentials) ListActive(_ context.Context) ([]domain.Credential, error) {
	return m.rows, m.err
}

type mockCache struct {
	data    []byte
	getErr  error
	putErr  error
	puts    int
	busts   int
	lastPut []byte
}

func (m *mockCache) Get(_ context.Context) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.data == nil {
		return nil, db.ErrKeyNotFound
	}
	return m.data, nil
}

func (m *mockCache) Put(_ context.Context, data []byte) error {
	m.puts++
	m.lastPut = data
	return m.putErr
}

func (m *mockCache) Bust(_ context.Context) error {
	m.busts++
	return nil
}

func testService(cache Cache) (*Service, *mockInsights) {
	ins := &mockInsights{rows: []domain.Insight{{
		ID:          "market-outlook-2026",
		Title:       "Market Outlook 2026",
		PublishedAt: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
	}}}
	creds := &mockCredentials{rows: []domain.Credential{{ID: "gcc-bank-merger"}}}
	return New("https://www.example.com", ins, creds, cache), ins
}

func TestSitemap_MergesStaticAndDynamic(t *testing.T) {
	svc, _ := testService(nil)

	data, err := svc.Sitemap(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(data)

	for _, want := range []string{
		"<loc>https://www.example.com/</loc>",
		"<loc>https://www.example.com/services/strategy</loc>",
		"<loc>https://www.example.com/insights/market-outlook-2026</loc>",
		"<lastmod>2026-02-10</lastmod>",
		"<loc>https://www.example.com/credentials/gcc-bank-merger</loc>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %s", want)
		}
	}
	if !strings.HasPrefix(body, "<?xml") {
		t.Error("missing XML header")
	}
}

func TestSitemap_Exclusions(t *testing.T) {
	svc, _ := testService(nil)
	svc.WithExclusions([]string{"/careers", "/insights/market-outlook-2026"})

	data, err := svc.Sitemap(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(data)

	if strings.Contains(body, "/careers<") {
		t.Error("excluded static path present")
	}
	if strings.Contains(body, "market-outlook-2026") {
		t.Error("excluded dynamic path present")
	}
	if !strings.Contains(body, "/contact</loc>") {
		t.Error("non-excluded path missing")
	}
}

func TestSitemap_CacheHitSkipsStore(t *testing.T) {
	cache := &mockCache{data: []byte("<cached/>")}
	svc, ins := testService(cache)

	data, err := svc.Sitemap(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "<cached/>" {
		t.Errorf("expected cached body, got %s", data)
	}
	if ins.calls != 0 {
		t.Error("cache hit must not touch the store")
	}
}

func TestSitemap_CacheMissRendersAndStores(t *testing.T) {
	cache := &mockCache{}
	svc, ins := testService(cache)

	data, err := svc.Sitemap(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ins.calls != 1 {
		t.Errorf("expected one store read, got %d", ins.calls)
	}
	if cache.puts != 1 || !strings.Contains(string(cache.lastPut), "urlset") {
		t.Errorf("rendered sitemap not cached: puts=%d", cache.puts)
	}
	if len(data) == 0 {
		t.Error("empty sitemap")
	}
}

func TestSitemap_CacheWriteFailureDegrades(t *testing.T) {
	cache := &mockCache{putErr: errors.New("redis down")}
	svc, _ := testService(cache)

	data, err := svc.Sitemap(context.Background())
	if err != nil {
		t.Fatalf("cache write failure must not fail the request: %v", err)
	}
	if !strings.Contains(string(data), "urlset") {
		t.Error("sitemap body missing")
	}
}

func TestSitemap_StoreFailure(t *testing.T) {
	ins := &mockInsights{err: errors.New("connection refused")}
	svc := New("https://www.example.com", ins, &mockCredentials{}, nil)

	if _, err := svc.Sitemap(context.Background()); err == nil {
		t.Fatal("expected error when the store is unavailable")
	}
}

func TestBust(t *testing.T) {
	cache := &mockCache{}
	svc, _ := testService(cache)

	if err := svc.Bust(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.busts != 1 {
		t.Errorf("expected one bust, got %d", cache.busts)
	}
}

func TestRobots(t *testing.T) {
	svc, _ := testService(nil)
	svc.WithExclusions([]string{"/careers"})

	body := string(svc.Robots())
	for _, want := range []string{
		"User-agent: *",
		"Disallow: /admin",
		"Disallow: /api/",
		"Disallow: /careers",
		"Sitemap: https://www.example.com/sitemap.xml",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("robots.txt missing %q", want)
		}
	}
}

func TestFlatten_DepthFirstParentsFirst(t *testing.T) {
	nav := []NavNode{
		{Path: "/a", Children: []NavNode{{Path: "/a/1"}, {Path: "/a/2"}}},
		{Path: "/b"},
	}
	got := flatten(nav, nil)
	want := []string{"/a", "/a/1", "/a/2", "/b"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
