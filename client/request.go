package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Request describes an API call relative to the client base URL.
// The client never modifies a request, it is replayed verbatim on retry.
type Request struct {
	Method string
	Path   string
	Body   interface{}
	Header map[string]string
}

// NewRequest creates a request, header is copied
func NewRequest(method, path string, body interface{}, header map[string]string) *Request {
	ret := &Request{Method: method, Path: path, Body: body}
	if len(header) > 0 {
		ret.Header = make(map[string]string, len(header))
		for k, v := range header {
			ret.Header[k] = v
		}
	}
	return ret
}

func (r *Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

func (r *Request) header(name string) string {
	name = http.CanonicalHeaderKey(name)
	for k, v := range r.Header {
		if http.CanonicalHeaderKey(k) == name {
			return v
		}
	}
	return ""
}

func (r *Request) encode() ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	data, err := json.Marshal(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %v %v request body: %w", r.method(), r.Path, err)
	}
	return data, nil
}
