package memory

import (
	"context"
	"errors"
	"io"
	"sync"

	"cow-registry/internal/ports/contentstore"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
)

var ErrNotFound = errors.New("content not found")

// Store guarda blobs en memoria con el mismo CID que daría `ipfs add --cid-version=1 --raw-leaves`
// para un archivo de un solo bloque.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewStore() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

func (s *Store) Add(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	id, err := ContentID(data)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[id.String()] = data
	return id.String(), nil
}

func (s *Store) Get(ctx context.Context, hash string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[hash]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

// ContentID es CIDv1 raw + sha2-256.
func ContentID(data []byte) (cid.Cid, error) {
	pref := cid.Prefix{
		Version:  1,
		Codec:    uint64(multicodec.Raw),
		MhType:   multihash.SHA2_256,
		MhLength: -1,
	}
	return pref.Sum(data)
}

var _ contentstore.Store = (*Store)(nil)
