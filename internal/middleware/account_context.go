package middleware

import (
	"context"
	"net/http"
	"strings"

	"cow-registry/internal/ports/chain"

	"github.com/ethereum/go-ethereum/common"
)

type ctxKey string

const accountKey ctxKey = "account"

const DebugAccountHeader = "X-Debug-Account"

// AccountContext:
// - Si allowDebug y viene X-Debug-Account con una dirección válida => la fija como cuenta activa del request.
// - Si no, el request sigue igual; la cuenta sale del provider (eth_accounts).
func AccountContext(allowDebug bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowDebug {
				next.ServeHTTP(w, r)
				return
			}

			v := strings.TrimSpace(r.Header.Get(DebugAccountHeader))
			if v == "" || !common.IsHexAddress(v) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithAccount(r.Context(), common.HexToAddress(v).Hex())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithAccount(ctx context.Context, account string) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

func GetAccount(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(accountKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Accounts envuelve un AccountProvider: la cuenta fijada en el contexto gana.
type Accounts struct {
	Fallback chain.AccountProvider
}

func (a Accounts) ActiveAccount(ctx context.Context) (string, error) {
	if v, ok := GetAccount(ctx); ok {
		return v, nil
	}
	if a.Fallback == nil {
		return "", chain.ErrNoAccounts
	}
	return a.Fallback.ActiveAccount(ctx)
}
