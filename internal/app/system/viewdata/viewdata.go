// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/gorilla/csrf"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	// Page context
	Title       string
	CurrentPath string

	// Security
	CSRFToken string // CSRF token, exposed to scripts via a meta tag
}

// New builds a BaseVM from the request.
func New(r *http.Request) BaseVM {
	return BaseVM{
		CurrentPath: r.URL.Path,
		CSRFToken:   csrf.Token(r),
	}
}
