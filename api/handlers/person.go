// ABOUTME: Person handlers for the Huma API
// ABOUTME: Profile search used when the user adds a subject to follow

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"mentions-api/core/domain"
	coreerrors "mentions-api/core/errors"
)

// PersonService interface defines the methods needed from the person service
type PersonService interface {
	Search(ctx context.Context, name string) (*domain.NewsPayload, error)
	Lookup(ctx context.Context, name string) (*domain.Profile, error)
}

// PersonHandler handles profile lookups
type PersonHandler struct {
	personService PersonService
}

// NewPersonHandler creates a new person handler
func NewPersonHandler(personService PersonService) *PersonHandler {
	return &PersonHandler{personService: personService}
}

// RegisterRoutes registers person routes
func (h *PersonHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "searchPerson",
		Method:      http.MethodPost,
		Path:        "/api/search-person",
		Summary:     "Search for a person's profile",
		Description: "Returns the search provider's profile response, including its answer and images",
		Tags:        []string{"People"},
	}, h.SearchPerson)

	huma.Register(api, huma.Operation{
		OperationID: "personProfile",
		Method:      http.MethodPost,
		Path:        "/api/profile",
		Summary:     "Build a profile for a person",
		Description: "Runs the profile search and condenses it to a description, avatar and title",
		Tags:        []string{"People"},
	}, h.Profile)
}

// SearchPersonInput defines the input for person operations
type SearchPersonInput struct {
	Body SubjectRequest
}

// SearchPersonOutput defines the output for the SearchPerson operation
type SearchPersonOutput struct {
	Body PayloadBody
}

// SearchPerson handles the POST /api/search-person endpoint
func (h *PersonHandler) SearchPerson(ctx context.Context, input *SearchPersonInput) (*SearchPersonOutput, error) {
	payload, err := h.personService.Search(ctx, input.Body.Name)
	if err != nil {
		return nil, personError(err)
	}
	return &SearchPersonOutput{Body: PayloadBody{Payload: payload}}, nil
}

// ProfileOutput defines the output for the Profile operation
type ProfileOutput struct {
	Body *domain.Profile
}

// Profile handles the POST /api/profile endpoint
func (h *PersonHandler) Profile(ctx context.Context, input *SearchPersonInput) (*ProfileOutput, error) {
	profile, err := h.personService.Lookup(ctx, input.Body.Name)
	if err != nil {
		return nil, personError(err)
	}
	return &ProfileOutput{Body: profile}, nil
}

func personError(err error) error {
	if coreerrors.IsValidation(err) || coreerrors.IsConfiguration(err) {
		return toAPIError(err, "")
	}
	return &APIError{Status: http.StatusInternalServerError, Message: "Failed to search person", Details: causeMessage(err)}
}
