package chain

import (
	"context"
	"errors"
)

var ErrNoAccounts = errors.New("no accounts available from provider")

// AccountProvider resuelve la cuenta activa del wallet/provider (eth_accounts[0] en Ethereum).
type AccountProvider interface {
	ActiveAccount(ctx context.Context) (string, error)
}
