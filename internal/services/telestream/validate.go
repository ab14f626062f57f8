package telestream

import (
	"net/url"
	"strings"
)

// requireIDs fails with a ValidationError on the first blank value. Arguments
// alternate field name and value.
func requireIDs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return &ValidationError{Field: pairs[i]}
		}
	}
	return nil
}

// resourcePath builds e.g. "videos/{id}/encodings.json" with id path-escaped.
func resourcePath(resource, id string, rest ...string) string {
	parts := append([]string{resource, url.PathEscape(strings.TrimSpace(id))}, rest...)
	return strings.Join(parts, "/") + ".json"
}
