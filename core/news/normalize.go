// ABOUTME: Maps filtered provider results to presentation-ready news items
// ABOUTME: Picks the fullest content, strips markup and classifies the source platform

package news

import (
	"net/url"
	"strings"

	"github.com/google/uuid"

	"mentions-api/core/domain"
	"mentions-api/pkg/utils/html"
)

func newID() string {
	return uuid.NewString()
}

// Normalize converts payload results into news items for subject, in order
func (s *Service) Normalize(payload *domain.NewsPayload, subject string) []domain.NewsItem {
	if payload == nil {
		return []domain.NewsItem{}
	}

	items := make([]domain.NewsItem, 0, len(payload.Results))
	for _, r := range payload.Results {
		content := r.RawContent
		if strings.TrimSpace(content) == "" {
			content = r.Content
		}

		items = append(items, domain.NewsItem{
			ID:          s.newID(),
			Subject:     subject,
			Title:       r.Title,
			Content:     html.StripHTML(content),
			OriginalURL: r.URL,
			Source:      ClassifySource(r.URL),
			PublishedAt: r.PublishedDate,
			ImageURL:    r.ImageURL,
		})
	}
	return items
}

// sourceHosts maps registrable domains to platforms
var sourceHosts = []struct {
	domain string
	source domain.Source
}{
	{"twitter.com", domain.SourceTwitter},
	{"x.com", domain.SourceTwitter},
	{"weibo.com", domain.SourceWeibo},
	{"weibo.cn", domain.SourceWeibo},
	{"reddit.com", domain.SourceReddit},
	{"instagram.com", domain.SourceInstagram},
}

// ClassifySource names the platform hosting rawURL. Unknown hosts are News.
func ClassifySource(rawURL string) domain.Source {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return domain.SourceNews
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return domain.SourceNews
	}

	for _, h := range sourceHosts {
		if host == h.domain || strings.HasSuffix(host, "."+h.domain) {
			return h.source
		}
	}
	if strings.Contains(host, "weixin") || strings.Contains(host, "wechat") {
		return domain.SourceWeChat
	}
	return domain.SourceNews
}
