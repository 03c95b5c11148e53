// ABOUTME: Response body wrapper for provider payloads
// ABOUTME: Serializes the payload verbatim and documents it as an open object

package handlers

import (
	"encoding/json"
	"reflect"

	"github.com/danielgtaylor/huma/v2"

	"mentions-api/core/domain"
)

// PayloadBody carries a provider payload through huma. Fields the pipeline
// does not interpret are written back unchanged.
type PayloadBody struct {
	Payload *domain.NewsPayload
}

// MarshalJSON writes the wrapped payload
func (b PayloadBody) MarshalJSON() ([]byte, error) {
	if b.Payload == nil {
		return []byte(`{"results":[]}`), nil
	}
	return json.Marshal(b.Payload)
}

// Schema implements huma.SchemaProvider
func (PayloadBody) Schema(r huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:                 huma.TypeObject,
		Description:          "Search provider response with filtered results. Other provider fields are passed through.",
		AdditionalProperties: true,
		Properties: map[string]*huma.Schema{
			"results": {
				Type:  huma.TypeArray,
				Items: r.Schema(reflect.TypeOf(domain.RawResult{}), true, "RawResult"),
			},
		},
		Required: []string{"results"},
	}
}
