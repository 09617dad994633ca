package tmdb

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a SearchError.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota + 1
	KindUnauthorized
	KindNotFound
	KindClient
	KindServer
	KindRedirect
	KindDecode
)

const (
	msgNetwork      = "Network error while connecting to the TMDB API. Please check your internet connection."
	msgUnauthorized = "Invalid TMDB API key. Please set the TMDB_API_KEY environment variable."
	msgNotFound     = "TMDB API endpoint not found. The API URL may be outdated."
	msgClient       = "TMDB API client error (Status: %d). Please check your request parameters."
	msgServer       = "TMDB API server error. Please try again later."
	msgRedirect     = "Unexpected redirect from the TMDB API."
	msgDecode       = "Invalid response from the TMDB API."
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	case KindRedirect:
		return "redirect"
	case KindDecode:
		return "decode"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// SearchError is returned by Client.SearchMovies. Message is meant to be shown
// to the user unchanged; Err keeps the underlying cause.
type SearchError struct {
	Kind       ErrorKind
	StatusCode int // 0 for transport failures
	Message    string
	Err        error
}

func (e *SearchError) Error() string {
	return e.Message
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// NetworkError reports a transport failure, including cancellation, with no
// HTTP status.
func NetworkError(err error) *SearchError {
	return &SearchError{Kind: KindNetwork, Message: msgNetwork, Err: err}
}

// statusError maps a non-2xx HTTP status to a SearchError.
func statusError(code int, cause error) *SearchError {
	e := &SearchError{StatusCode: code, Err: cause}
	switch {
	case code >= 300 && code < 400:
		e.Kind, e.Message = KindRedirect, msgRedirect
	case code == http.StatusUnauthorized:
		e.Kind, e.Message = KindUnauthorized, msgUnauthorized
	case code == http.StatusNotFound:
		e.Kind, e.Message = KindNotFound, msgNotFound
	case code >= 400 && code < 500:
		e.Kind, e.Message = KindClient, fmt.Sprintf(msgClient, code)
	default:
		e.Kind, e.Message = KindServer, msgServer
	}
	return e
}
