package services

import "github.com/microcosm-cc/bluemonday"

// Sanitizer strips markup from free-text fields (workbook responses, admin
// feedback) before they are stored; the admin portal renders them verbatim.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

func (s *Sanitizer) Clean(in string) string {
	return s.policy.Sanitize(in)
}
