package ethereum

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

const DefaultURL = "http://localhost:8545"

type ProviderConfig struct {
	// InjectedURL es el provider que expone el host (wallet, nodo local del usuario).
	InjectedURL string
	// DefaultURL se usa solo si no hay provider inyectado.
	DefaultURL string
}

// Provider es la conexión JSON-RPC elegida.
type Provider struct {
	URL      string
	Injected bool

	RPC *rpc.Client
	Eth *ethclient.Client
}

// ResolveProvider elige el provider inyectado si existe; si no, el default fijo.
// Para HTTP, Dial no contacta al nodo: no hay chequeo de alcance ni reintentos.
func ResolveProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	url := strings.TrimSpace(cfg.InjectedURL)
	injected := url != ""
	if !injected {
		url = strings.TrimSpace(cfg.DefaultURL)
	}
	if url == "" {
		url = DefaultURL
	}

	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial provider %s: %w", url, err)
	}
	return NewProvider(c, url, injected), nil
}

func NewProvider(c *rpc.Client, url string, injected bool) *Provider {
	return &Provider{
		URL:      url,
		Injected: injected,
		RPC:      c,
		Eth:      ethclient.NewClient(c),
	}
}

func (p *Provider) Close() {
	if p == nil || p.RPC == nil {
		return
	}
	p.RPC.Close()
}
