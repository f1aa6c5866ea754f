package ipfs

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const testCID = "bafkreihdwdcefgh4dqkjv67uzcmw7ojee6xedzdetojuzjevtenxquvyku"

// fakeNode simula la HTTP API de kubo: /api/v0/version (go-ipfs-api lo consulta
// antes del primer add) y /api/v0/add. El handler solo registra; los asserts van afuera.
type fakeNode struct {
	mu      sync.Mutex
	paths   []string
	query   url.Values
	body    string
	addCode int
	addResp string
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, r.URL.Path)

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/v0/version":
		_, _ = io.WriteString(w, `{"Version":"0.30.0","Commit":""}`)
	case "/api/v0/add":
		n.query = r.URL.Query()
		if mr, err := r.MultipartReader(); err == nil {
			if part, err := mr.NextPart(); err == nil {
				b, _ := io.ReadAll(part)
				n.body = string(b)
			}
		}
		if n.addCode != 0 {
			w.WriteHeader(n.addCode)
		}
		_, _ = io.WriteString(w, n.addResp)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestStore_AddPinsWithCidV1(t *testing.T) {
	node := &fakeNode{addResp: `{"Name":"","Hash":"` + testCID + `","Size":"11"}`}
	srv := httptest.NewServer(node)
	defer srv.Close()

	s := New(strings.TrimPrefix(srv.URL, "http://"), srv.Client(), nil)
	hash, err := s.Add(context.Background(), strings.NewReader("cow picture"))
	require.NoError(t, err)
	require.Equal(t, testCID, hash)

	node.mu.Lock()
	defer node.mu.Unlock()
	require.Equal(t, []string{"/api/v0/version", "/api/v0/add"}, node.paths)
	require.Equal(t, "true", node.query.Get("pin"))
	require.Equal(t, "1", node.query.Get("cid-version"))
	require.Equal(t, "cow picture", node.body)
}

func TestStore_AddFailure(t *testing.T) {
	node := &fakeNode{
		addCode: http.StatusInternalServerError,
		addResp: `{"Message":"repo is locked","Code":0,"Type":"error"}`,
	}
	srv := httptest.NewServer(node)
	defer srv.Close()

	s := New(srv.URL, srv.Client(), nil)
	_, err := s.Add(context.Background(), strings.NewReader("x"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "repo is locked")
}

func TestStore_AddCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New("", nil, nil).Add(ctx, strings.NewReader("x"))
	require.ErrorIs(t, err, context.Canceled)
}
