// ABOUTME: Access code probe for the web client
// ABOUTME: Succeeds whenever the request got past the access gate

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// VerifyHandler answers access code checks
type VerifyHandler struct{}

// NewVerifyHandler creates a new verify handler
func NewVerifyHandler() *VerifyHandler {
	return &VerifyHandler{}
}

// RegisterRoutes registers the probe for GET and POST
func (h *VerifyHandler) RegisterRoutes(api huma.API) {
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		huma.Register(api, huma.Operation{
			OperationID: "verify" + method,
			Method:      method,
			Path:        "/api/verify",
			Summary:     "Verify the access code",
			Description: "Returns ok when the x-access-code header was accepted",
			Tags:        []string{"Access"},
		}, h.Verify)
	}
}

// VerifyOutput defines the output for the Verify operation
type VerifyOutput struct {
	Body struct {
		Status string `json:"status" example:"ok"`
	}
}

// Verify handles GET and POST /api/verify
func (h *VerifyHandler) Verify(ctx context.Context, input *struct{}) (*VerifyOutput, error) {
	out := &VerifyOutput{}
	out.Body.Status = "ok"
	return out, nil
}
