package ipfs

import (
	"context"
	"io"
	"net/http"
	"strings"

	"cow-registry/internal/platform/logger"
	"cow-registry/internal/ports/contentstore"

	shell "github.com/ipfs/go-ipfs-api"
	"golang.org/x/xerrors"
)

const DefaultAPI = "localhost:5001"

// Store sube blobs al nodo IPFS por su HTTP API (/api/v0/add), pinneados y con CID v1.
// No reintenta ni trocea: un Add es una sola request.
type Store struct {
	api string
	sh  *shell.Shell
	log logger.Logger
}

func New(apiURL string, client *http.Client, log logger.Logger) *Store {
	apiURL = strings.TrimSpace(apiURL)
	if apiURL == "" {
		apiURL = DefaultAPI
	}
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		api: apiURL,
		sh:  shell.NewShellWithClient(apiURL, client),
		log: log.With(map[string]any{"ipfs": apiURL}),
	}
}

type addResult struct {
	hash string
	err  error
}

func (s *Store) Add(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// shell.Add no recibe ctx; se corta la espera, no la request.
	done := make(chan addResult, 1)
	go func() {
		hash, err := s.sh.Add(r, shell.Pin(true), shell.CidVersion(1))
		done <- addResult{hash: hash, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", xerrors.Errorf("ipfs add: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return "", xerrors.Errorf("ipfs add: %w", res.err)
		}
		s.log.Debug("stored", map[string]any{"cid": res.hash})
		return res.hash, nil
	}
}

var _ contentstore.Store = (*Store)(nil)
