package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestErrorRendering(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message",
			err:  &Error{Status: 400, Message: "title is required"},
			want: "title is required",
		},
		{
			name: "status fallback",
			err:  &Error{Status: 502},
			want: "server error: Bad Gateway",
		},
		{
			name: "field errors are sorted",
			err: &Error{Status: 400, Fields: map[string][]string{
				"title": {"too short"},
				"price": {"must be at least 1"},
			}},
			want: "validation errors: price: must be at least 1; title: too short",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	if got := StatusOf(&Error{Status: 404}); got != 404 {
		t.Errorf("StatusOf(api error) = %d, want 404", got)
	}
	if got := StatusOf(errors.New("connection refused")); got != 0 {
		t.Errorf("StatusOf(plain error) = %d, want 0", got)
	}
	if got := StatusOf(nil); got != 0 {
		t.Errorf("StatusOf(nil) = %d, want 0", got)
	}
}

func TestDecodeErrorShapes(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		wantFields int
	}{
		{
			name:    "message payload",
			status:  400,
			body:    `{"message":"email already registered"}`,
			wantMsg: "email already registered",
		},
		{
			name:       "problem details with field errors",
			status:     400,
			body:       `{"title":"One or more validation errors occurred.","errors":{"Title":["The Title field is required."]}}`,
			wantMsg:    "One or more validation errors occurred.",
			wantFields: 1,
		},
		{
			name:    "plain text body",
			status:  401,
			body:    "Unauthorized access",
			wantMsg: "Unauthorized access",
		},
		{
			name:    "empty body",
			status:  500,
			wantMsg: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if _, err := w.Write([]byte(tt.body)); err != nil {
					t.Errorf("write: %v", err)
				}
			}))
			defer srv.Close()

			err := New(srv.URL, "").get(context.Background(), "/whatever", nil)

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *Error", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
			if len(apiErr.Fields) != tt.wantFields {
				t.Errorf("fields = %d, want %d", len(apiErr.Fields), tt.wantFields)
			}
		})
	}
}

func TestBearerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok123")
	if err := c.get(context.Background(), "/x", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want Bearer tok123", gotAuth)
	}

	c.SetToken("")
	if err := c.get(context.Background(), "/x", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty without token", gotAuth)
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "")
	if err := c.get(context.Background(), "/api/Properties/GetAll", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotPath != "/api/Properties/GetAll" {
		t.Errorf("path = %q", gotPath)
	}
}
