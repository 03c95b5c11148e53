// ABOUTME: News domain models for provider search results and their normalized form
// ABOUTME: NewsPayload keeps unknown provider fields so cached responses round-trip verbatim

package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RawResult is a single item returned by the search provider.
// Missing fields decode to their zero value; nothing here is required.
type RawResult struct {
	// Title is the page or post title
	Title string `json:"title"`

	// URL is the address of the mention
	URL string `json:"url"`

	// Content is the provider's extracted snippet
	Content string `json:"content"`

	// RawContent is the full page text when include_raw_content was requested
	RawContent string `json:"raw_content,omitempty"`

	// PublishedDate is the provider's publish timestamp, in whatever format it chose
	PublishedDate string `json:"published_date,omitempty"`

	// ImageURL is an optional preview image
	ImageURL string `json:"image_url,omitempty"`

	// Score is the provider's own relevance score
	Score float64 `json:"score,omitempty"`
}

// NewsPayload is a decoded provider response.
// Results is the only field the pipeline interprets; every other top-level
// field is carried in Fields and written back unchanged.
type NewsPayload struct {
	Results []RawResult
	Fields  map[string]json.RawMessage
}

// UnmarshalJSON splits the results collection from the remaining fields.
func (p *NewsPayload) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	p.Results = nil
	if raw, ok := fields["results"]; ok {
		delete(fields, "results")
		p.Results = decodeResults(raw)
	}
	p.Fields = fields
	return nil
}

// decodeResults decodes each element on its own so one malformed item
// cannot empty the whole collection. A value that is not an array is
// treated as empty; elements that are not objects are skipped.
func decodeResults(raw json.RawMessage) []RawResult {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil
	}

	results := make([]RawResult, 0, len(elements))
	for _, element := range elements {
		var item RawResult
		if err := json.Unmarshal(element, &item); err != nil {
			continue
		}
		results = append(results, item)
	}
	return results
}

// UnmarshalJSON decodes a result leniently: a field of the wrong type is
// left empty instead of failing the item. Only a non-object is an error.
func (r *RawResult) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("result is not an object")
	}

	*r = RawResult{
		Title:         lenientString(fields["title"]),
		URL:           lenientString(fields["url"]),
		Content:       lenientString(fields["content"]),
		RawContent:    lenientString(fields["raw_content"]),
		PublishedDate: lenientString(fields["published_date"]),
		ImageURL:      lenientString(fields["image_url"]),
		Score:         lenientFloat(fields["score"]),
	}
	return nil
}

func lenientString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// lenientFloat accepts a number or a numeric string
func lenientFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

// MarshalJSON writes the preserved fields plus the current results.
func (p NewsPayload) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(p.Fields)+1)
	for k, v := range p.Fields {
		out[k] = v
	}
	results := p.Results
	if results == nil {
		results = []RawResult{}
	}
	out["results"] = results
	return json.Marshal(out)
}

// WithResults returns a copy of the payload carrying a different result set.
func (p *NewsPayload) WithResults(results []RawResult) *NewsPayload {
	return &NewsPayload{
		Results: results,
		Fields:  p.Fields,
	}
}

// Answer returns the provider's generated answer, if any.
func (p *NewsPayload) Answer() string {
	var answer string
	if raw, ok := p.Fields["answer"]; ok {
		_ = json.Unmarshal(raw, &answer)
	}
	return answer
}

// Images returns image URLs from the payload. The provider returns either
// plain strings or objects with a url field depending on request options.
func (p *NewsPayload) Images() []string {
	raw, ok := p.Fields["images"]
	if !ok {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			if s != "" {
				images = append(images, s)
			}
			continue
		}
		var obj struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(entry, &obj); err == nil && obj.URL != "" {
			images = append(images, obj.URL)
		}
	}
	return images
}

// Source classifies where a news item came from
type Source string

const (
	SourceTwitter   Source = "Twitter"
	SourceWeibo     Source = "Weibo"
	SourceReddit    Source = "Reddit"
	SourceInstagram Source = "Instagram"
	SourceWeChat    Source = "WeChat"
	SourceNews      Source = "News"
)

// NewsItem is the normalized, presentation-ready form of a filtered result
type NewsItem struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	Title       string `json:"title,omitempty"`
	Content     string `json:"content"`
	OriginalURL string `json:"originalUrl"`
	Source      Source `json:"source"`
	PublishedAt string `json:"publishedAt"`
	ImageURL    string `json:"imageUrl,omitempty"`
}
