package types

import "github.com/hevilin/talentsite/internal/profile"

// GenerateProfileRequest is the generator form. Every field may be empty
// and an unknown locale falls back to English.
type GenerateProfileRequest struct {
	profile.Inputs
	Locale string `json:"locale,omitempty"`
}

func (r *GenerateProfileRequest) Validate() error { return validate.Struct(r) }
