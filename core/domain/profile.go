// ABOUTME: Profile domain model describing a tracked subject
// ABOUTME: Built from a basic provider search when a subject is first added

package domain

// DefaultProfileDescription is used when the provider returns nothing usable
const DefaultProfileDescription = "No description found."

// Profile describes a public figure the user wants to follow
type Profile struct {
	// Name is the subject's display name, also their cache key
	Name string `json:"name"`

	// Description is a short biography
	Description string `json:"description"`

	// AvatarURL is an image of the subject, if one was found
	AvatarURL string `json:"avatarUrl,omitempty"`

	// JobTitle is the title of the best matching result
	JobTitle string `json:"jobTitle,omitempty"`

	// Keywords seed future searches; the name is always included
	Keywords []string `json:"keywords"`
}
