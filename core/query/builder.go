// ABOUTME: Query builder turns a subject name into provider search queries
// ABOUTME: Names are quoted verbatim; the provider interprets its own query grammar

package query

import (
	"fmt"
	"strings"

	"mentions-api/core/errors"
)

// Platforms are the sites a news query targets, in query order
var Platforms = []string{
	"twitter.com",
	"x.com",
	"weibo.com",
	"reddit.com",
	"instagram.com",
	"wechat",
}

// platformList is Platforms joined into a single disjunction
var platformList = strings.Join(Platforms, " OR ")

// Build returns the news query for a subject:
//
//	"<name>" latest news updates site:<platforms> OR "<name>" news
//
// The name is not escaped. Quotes inside it reach the provider unchanged.
func Build(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", &errors.ValidationError{Field: "name", Message: "cannot be empty"}
	}
	return fmt.Sprintf(`"%s" latest news updates site:%s OR "%s" news`, name, platformList, name), nil
}

// BuildProfile returns the query used to look up who a subject is
func BuildProfile(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", &errors.ValidationError{Field: "name", Message: "cannot be empty"}
	}
	return name + " biography profile career social media handles", nil
}
