package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDescribe_ClassifiesAPIErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"transport", &APIError{Kind: ErrorKindTransport, Err: errors.New("dial tcp: timeout")}, "Could not reach the instance: dial tcp: timeout"},
		{"server code", &APIError{Kind: ErrorKindServer, Status: 400, Message: "couldnt_find_post"}, "The instance rejected the request (400): couldnt find post"},
		{"server bare", &APIError{Kind: ErrorKindServer, Status: 502}, "The instance rejected the request (502)."},
		{"malformed", &APIError{Kind: ErrorKindMalformed, Err: errors.New("unexpected EOF")}, "Unexpected response from the instance: unexpected EOF"},
		{"wrapped", fmt.Errorf("fetching posts: %w", &APIError{Kind: ErrorKindTransport, Err: errors.New("refused")}), "Could not reach the instance: refused"},
		{"credentials", fmt.Errorf("login: %w", ErrWrongCredentials), "Wrong credentials!"},
		{"sentinel", ErrEmptyTitle, "Post title cannot be empty"},
		{"plain", errors.New("no account selected"), "No account selected"},
		{"multibyte first rune", errors.New("échec de connexion"), "Échec de connexion"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Describe(tc.err); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestAPIError_IsUnauthorized(t *testing.T) {
	if !errors.Is(&APIError{Kind: ErrorKindServer, Status: 400, Message: "not_logged_in"}, ErrUnauthorized) {
		t.Fatalf("not_logged_in should match ErrUnauthorized")
	}
	if !errors.Is(&APIError{Kind: ErrorKindServer, Status: 401}, ErrUnauthorized) {
		t.Fatalf("401 should match ErrUnauthorized")
	}
	if errors.Is(&APIError{Kind: ErrorKindTransport, Err: errors.New("x")}, ErrUnauthorized) {
		t.Fatalf("transport failures are not auth failures")
	}
	if !strings.Contains((&APIError{Kind: ErrorKindServer, Status: 404, Message: "nope"}).Error(), "404") {
		t.Fatalf("error text should carry the status")
	}
}
