package client

import (
	"net/http"

	"github.com/Azure/go-autorest/autorest"
)

// ResponseWasNotFound returns true if the response code from the Azure API
// was a 404.
func ResponseWasNotFound(resp autorest.Response) bool {
	if resp.Response != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}

	return false
}

// ResponseWasConflict returns true if the response code from the Azure API
// was a 409. Role assignment creation responds with a conflict when the
// assignment already exists.
func ResponseWasConflict(resp autorest.Response) bool {
	if resp.Response != nil && resp.StatusCode == http.StatusConflict {
		return true
	}

	return false
}
