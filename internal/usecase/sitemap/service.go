package sitemap

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/northgate-partners/webcore/internal/db"
	"github.com/northgate-partners/webcore/internal/domain"
	"github.com/northgate-partners/webcore/internal/logger"
)

// InsightLister provides the published insights for dynamic URLs.
type InsightLister interface {
	ListPublished(ctx context.Context) ([]domain.Insight, error)
}

// CredentialLister provides the active credentials for dynamic URLs.
type CredentialLister interface {
	ListActive(ctx context.Context) ([]domain.Credential, error)
}

// Cache stores the rendered sitemap between requests.
type Cache interface {
	Get(ctx context.Context) ([]byte, error)
	Put(ctx context.Context, data []byte) error
	Bust(ctx context.Context) error
}

const dateLayout = "2006-01-02"

type urlEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

// Service renders sitemap.xml and robots.txt: the static navigation tree
// flattened, merged with dynamic store rows, minus the exclusion list.
type Service struct {
	baseURL     string
	nav         []NavNode
	excluded    map[string]struct{}
	insights    InsightLister
	credentials CredentialLister
	cache       Cache
}

// New creates a sitemap service. cache can be nil (render every request).
func New(baseURL string, insights InsightLister, credentials CredentialLister, cache Cache) *Service {
	return &Service{
		baseURL:     strings.TrimRight(baseURL, "/"),
		nav:         DefaultNav(),
		excluded:    map[string]struct{}{},
		insights:    insights,
		credentials: credentials,
		cache:       cache,
	}
}

// WithNav overrides the static navigation tree.
func (s *Service) WithNav(nav []NavNode) *Service {
	s.nav = nav
	return s
}

// WithExclusions sets paths dropped from the sitemap.
func (s *Service) WithExclusions(paths []string) *Service {
	s.excluded = make(map[string]struct{}, len(paths))
	for _, p := range paths {
		s.excluded[p] = struct{}{}
	}
	return s
}

// Sitemap returns the sitemap XML, from cache when available.
func (s *Service) Sitemap(ctx context.Context) ([]byte, error) {
	if s.cache != nil {
		data, err := s.cache.Get(ctx)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, db.ErrKeyNotFound) {
			logger.FromContext(ctx).Warn("sitemap cache read failed", zap.Error(err))
		}
	}
	return s.Refresh(ctx)
}

// Refresh re-renders the sitemap and stores it in the cache. A cache
// write failure degrades to log-and-serve.
func (s *Service) Refresh(ctx context.Context) ([]byte, error) {
	data, err := s.render(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Put(ctx, data); err != nil {
			logger.FromContext(ctx).Warn("sitemap cache write failed", zap.Error(err))
		}
	}
	return data, nil
}

// Bust drops the cached sitemap.
func (s *Service) Bust(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Bust(ctx)
}

// Robots renders robots.txt. Admin and API surfaces are crawl-blocked.
func (s *Service) Robots() []byte {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /admin\n")
	b.WriteString("Disallow: /api/\n")
	for p := range s.excluded {
		fmt.Fprintf(&b, "Disallow: %s\n", p)
	}
	fmt.Fprintf(&b, "\nSitemap: %s/sitemap.xml\n", s.baseURL)
	return []byte(b.String())
}

func (s *Service) render(ctx context.Context) ([]byte, error) {
	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	for _, path := range flatten(s.nav, s.excluded) {
		set.URLs = append(set.URLs, urlEntry{Loc: s.baseURL + path})
	}

	ins, err := s.insights.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}
	for _, in := range ins {
		loc := fmt.Sprintf("%s/insights/%s", s.baseURL, in.ID)
		if _, skip := s.excluded["/insights/"+in.ID]; skip {
			continue
		}
		set.URLs = append(set.URLs, urlEntry{Loc: loc, LastMod: in.PublishedAt.Format(dateLayout)})
	}

	creds, err := s.credentials.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	for _, c := range creds {
		if _, skip := s.excluded["/credentials/"+c.ID]; skip {
			continue
		}
		set.URLs = append(set.URLs, urlEntry{Loc: fmt.Sprintf("%s/credentials/%s", s.baseURL, c.ID)})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
