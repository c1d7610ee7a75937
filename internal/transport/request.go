package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Request captures everything needed to issue, and if necessary re-issue,
// one HTTP call: method, path, headers and a replayable body.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte

	// retried is the per-request replay flag; once set, a second 401 is
	// surfaced instead of triggering another refresh cycle.
	retried bool
}

// NewRequest builds a Request with an optional JSON body
func NewRequest(method, path string, body any) (*Request, error) {
	req := &Request{
		Method: method,
		Path:   path,
		Header: http.Header{},
	}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		req.Body = raw
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Response is a fully-read reply from the remote API
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// envelope is the API's standard reply shape. Endpoints that answer with a
// bare payload are tolerated by DecodeData.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *envelopeError  `json:"error,omitempty"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// DecodeData unmarshals the response payload into out, unwrapping the
// {success, data} envelope when present
func (r *Response) DecodeData(out any) error {
	if out == nil || len(r.Body) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(r.Body, &env); err == nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(r.Body, out)
}

// apiError builds the error for a non-2xx response
func (r *Response) apiError() *APIError {
	apiErr := &APIError{StatusCode: r.StatusCode}
	var env envelope
	if err := json.Unmarshal(r.Body, &env); err == nil && env.Error != nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
		apiErr.Details = env.Error.Details
	}
	return apiErr
}
