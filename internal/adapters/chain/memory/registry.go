package memory

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"cow-registry/internal/domain/cows"
	"cow-registry/internal/ports/chain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// DevAccount es la primera cuenta de `truffle develop` / ganache con el mnemonic por defecto.
const DevAccount = "0x627306090abaB3A6e1400e9345bC60c78a8BEf57"

var ErrRevert = errors.New("VM Exception while processing transaction: revert")

type cowRow struct {
	cow   cows.Cow
	owner common.Address
}

// Registry simula CowOwnership en memoria con las mismas reglas del contrato:
// números consecutivos desde 1, madre 0 o existente, URI una sola vez y solo por el dueño,
// transferOwnership solo por el admin.
type Registry struct {
	mu sync.RWMutex

	admin common.Address
	rows  []cowRow // índice = posición interna
	uris  map[uint64]string
	nonce uint64

	now func() time.Time
}

func NewRegistry(admin string) *Registry {
	if strings.TrimSpace(admin) == "" {
		admin = DevAccount
	}
	return &Registry{
		admin: common.HexToAddress(admin),
		uris:  make(map[uint64]string),
		now:   time.Now,
	}
}

func (r *Registry) CowsByOwner(ctx context.Context, owner string) ([]uint64, error) {
	addr, err := parseAddress(owner)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]uint64, 0)
	for _, row := range r.rows {
		if row.owner == addr {
			out = append(out, row.cow.Number)
		}
	}
	return out, nil
}

func (r *Registry) CountByOwner(ctx context.Context, owner string) (uint64, error) {
	ids, err := r.CowsByOwner(ctx, owner)
	if err != nil {
		return 0, err
	}
	return uint64(len(ids)), nil
}

func (r *Registry) IndexByCowNum(ctx context.Context, number uint64) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if number == 0 || number > uint64(len(r.rows)) {
		return 0, ErrRevert
	}
	return number - 1, nil
}

func (r *Registry) Cow(ctx context.Context, index uint64) (cows.Cow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= uint64(len(r.rows)) {
		return cows.Cow{}, ErrRevert
	}
	c := r.rows[index].cow
	c.Index = index
	return c, nil
}

func (r *Registry) CowURI(ctx context.Context, number uint64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.uris[number], nil
}

func (r *Registry) CowOwner(ctx context.Context, index uint64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= uint64(len(r.rows)) {
		return common.Address{}.Hex(), nil
	}
	return r.rows[index].owner.Hex(), nil
}

func (r *Registry) OwnerByCow(ctx context.Context, number uint64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if number == 0 || number > uint64(len(r.rows)) {
		return common.Address{}.Hex(), nil
	}
	return r.rows[number-1].owner.Hex(), nil
}

func (r *Registry) Admin(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.admin.Hex(), nil
}

func (r *Registry) RecordBirth(ctx context.Context, from string, in cows.BirthInput) (cows.Tx, error) {
	sender, err := parseAddress(from)
	if err != nil {
		return cows.Tx{}, err
	}
	mom, err := parseNumber(in.Mom)
	if err != nil {
		return cows.Tx{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if mom != 0 && mom > uint64(len(r.rows)) {
		return cows.Tx{}, ErrRevert
	}

	num := uint64(len(r.rows)) + 1
	r.rows = append(r.rows, cowRow{
		cow: cows.Cow{
			Number:    num,
			Mom:       mom,
			BirthDate: r.birthTime(),
			Type:      in.Type,
			Sex:       in.Sex,
		},
		owner: sender,
	})
	return cows.Tx{Hash: r.txHash(sender, "cowBirth"), CowNumber: num}, nil
}

func (r *Registry) LinkMedia(ctx context.Context, from string, in cows.MediaLink) (cows.Tx, error) {
	sender, err := parseAddress(from)
	if err != nil {
		return cows.Tx{}, err
	}
	num, err := parseNumber(in.CowID)
	if err != nil {
		return cows.Tx{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if num == 0 || num > uint64(len(r.rows)) {
		return cows.Tx{}, ErrRevert
	}
	if r.rows[num-1].owner != sender {
		return cows.Tx{}, ErrRevert
	}
	if _, set := r.uris[num]; set {
		return cows.Tx{}, ErrRevert
	}
	r.uris[num] = in.ContentHash
	return cows.Tx{Hash: r.txHash(sender, "setCowURI")}, nil
}

func (r *Registry) TransferAdmin(ctx context.Context, from, newAdmin string) (cows.Tx, error) {
	sender, err := parseAddress(from)
	if err != nil {
		return cows.Tx{}, err
	}
	next, err := parseAddress(newAdmin)
	if err != nil {
		return cows.Tx{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if sender != r.admin || next == (common.Address{}) {
		return cows.Tx{}, ErrRevert
	}
	r.admin = next
	return cows.Tx{Hash: r.txHash(sender, "transferOwnership")}, nil
}

// birthTime es el "block.timestamp": segundos, nunca hacia atrás.
func (r *Registry) birthTime() time.Time {
	t := r.now().UTC().Truncate(time.Second)
	if n := len(r.rows); n > 0 {
		if last := r.rows[n-1].cow.BirthDate; t.Before(last) {
			t = last
		}
	}
	return t
}

func (r *Registry) txHash(sender common.Address, method string) string {
	r.nonce++
	return crypto.Keccak256Hash(sender.Bytes(), []byte(method), new(big.Int).SetUint64(r.nonce).Bytes()).Hex()
}

// Accounts es la lista fija de cuentas del nodo de desarrollo.
type Accounts struct {
	list []string
}

func NewAccounts(list ...string) *Accounts {
	out := make([]string, 0, len(list))
	for _, a := range list {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return &Accounts{list: out}
}

func (a *Accounts) ActiveAccount(ctx context.Context) (string, error) {
	if len(a.list) == 0 {
		return "", chain.ErrNoAccounts
	}
	return a.list[0], nil
}

func parseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

func parseNumber(s string) (uint64, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || n.Sign() < 0 || !n.IsUint64() {
		return 0, fmt.Errorf("invalid number value %q", s)
	}
	return n.Uint64(), nil
}

var (
	_ cows.Registry         = (*Registry)(nil)
	_ chain.AccountProvider = (*Accounts)(nil)
)
