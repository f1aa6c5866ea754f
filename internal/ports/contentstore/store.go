package contentstore

import (
	"context"
	"io"
	"strings"
)

// Store persiste blobs y devuelve su content identifier (CID).
type Store interface {
	Add(ctx context.Context, r io.Reader) (string, error)
}

// GatewayURL arma la URL pública de un CID: <gateway>/ipfs/<cid>.
func GatewayURL(gateway, hash string) string {
	return strings.TrimRight(strings.TrimSpace(gateway), "/") + "/ipfs/" + strings.TrimSpace(hash)
}
