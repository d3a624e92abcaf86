package httpx

import "net/http"

// Client abstracts the HTTP transport so outbound calls can be faked in
// tests.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}
