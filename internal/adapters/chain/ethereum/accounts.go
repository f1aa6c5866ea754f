package ethereum

import (
	"context"
	"fmt"

	"cow-registry/internal/ports/chain"

	"github.com/ethereum/go-ethereum/common"
)

// Accounts consulta eth_accounts; la cuenta activa es la primera.
type Accounts struct {
	p *Provider
}

func NewAccounts(p *Provider) *Accounts {
	return &Accounts{p: p}
}

func (a *Accounts) List(ctx context.Context) ([]common.Address, error) {
	var out []common.Address
	if err := a.p.RPC.CallContext(ctx, &out, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("eth_accounts: %w", err)
	}
	return out, nil
}

func (a *Accounts) ActiveAccount(ctx context.Context) (string, error) {
	list, err := a.List(ctx)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", chain.ErrNoAccounts
	}
	return list[0].Hex(), nil
}

var _ chain.AccountProvider = (*Accounts)(nil)
