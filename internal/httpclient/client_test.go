package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPost(t *testing.T) {
	var gotBody, gotType, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
		gotMethod = r.Method
		w.Write([]byte("CODEREPONSE=00000"))
	}))
	defer srv.Close()

	reply, err := New(nil).Post(context.Background(), srv.URL, []byte("VERSION=00104&TYPE=00051"))
	require.NoError(t, err)
	require.Equal(t, "CODEREPONSE=00000", string(reply))
	require.Equal(t, "VERSION=00104&TYPE=00051", gotBody)
	require.Equal(t, "application/x-www-form-urlencoded", gotType)
	require.Equal(t, http.MethodPost, gotMethod)
}

func TestPost_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(nil).Post(context.Background(), srv.URL, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=502")
	require.Contains(t, err.Error(), "down for maintenance")
}

func TestPost_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(nil).Post(ctx, srv.URL, nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
