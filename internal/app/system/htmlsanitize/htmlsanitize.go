// Package htmlsanitize cleans note content before it reaches a browser.
// Notes are edited as plain text, but pasted content can carry HTML
// fragments; everything rendered outside the editor goes through bluemonday.
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce sync.Once
	strict     *bluemonday.Policy
)

// strictPolicy strips every element and attribute, leaving text only.
func strictPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

// StripTags removes all HTML from content, returning plain text. Previews,
// list entries, and the page title render note text outside an escaping
// context downstream, so tags are removed rather than escaped.
func StripTags(content string) string {
	if content == "" {
		return ""
	}
	return strictPolicy().Sanitize(content)
}
