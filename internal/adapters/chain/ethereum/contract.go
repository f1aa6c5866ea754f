package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"sync"
	"time"

	"cow-registry/internal/domain/cows"
	"cow-registry/internal/platform/logger"

	goeth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/sync/singleflight"
)

const DefaultReceiptPoll = time.Second

var ErrReverted = errors.New("transaction reverted")

// requiredMethods son las funciones que el cliente llama. Un artifact sin alguna no se bindea.
var requiredMethods = []string{
	"cows", "cowToOwner", "owner", "transferOwnership", "cowBirth",
	"getCowsByOwner", "getCountByOwner", "getOwnerByCow", "getIdByCowNum",
	"getCowURI", "setCowURI",
}

const eventCowBirth = "CowBirth"

type BindOptions struct {
	ReceiptPoll time.Duration
	Logger      logger.Logger
}

// Contract es el proxy de CowOwnership. La instancia desplegada se resuelve en el primer uso.
type Contract struct {
	p    *Provider
	art  *Artifact
	poll time.Duration
	log  logger.Logger

	resolving singleflight.Group

	mu      sync.Mutex
	address common.Address
	bound   *bind.BoundContract
}

func Bind(p *Provider, art *Artifact, opts BindOptions) (*Contract, error) {
	if p == nil || p.RPC == nil {
		return nil, errors.New("bind: nil provider")
	}
	if art == nil {
		return nil, errors.New("bind: nil artifact")
	}
	for _, m := range requiredMethods {
		if _, ok := art.ABI.Methods[m]; !ok {
			return nil, fmt.Errorf("bind %s: abi has no method %s", art.ContractName, m)
		}
	}
	if _, ok := art.ABI.Events[eventCowBirth]; !ok {
		return nil, fmt.Errorf("bind %s: abi has no event %s", art.ContractName, eventCowBirth)
	}

	poll := opts.ReceiptPoll
	if poll <= 0 {
		poll = DefaultReceiptPoll
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Contract{p: p, art: art, poll: poll, log: log}, nil
}

// Address devuelve la dirección resuelta (cero si todavía no se resolvió).
func (c *Contract) Address() common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.address
}

// deployed resuelve net_version -> address del artifact -> código en esa address.
// El éxito se cachea; un fallo se reintenta en la próxima llamada. La resolución
// corre una sola vez a la vez (singleflight) y fuera de c.mu; cada caller espera
// con su propio ctx.
func (c *Contract) deployed(ctx context.Context) (*bind.BoundContract, common.Address, error) {
	c.mu.Lock()
	bc, addr := c.bound, c.address
	c.mu.Unlock()
	if bc != nil {
		return bc, addr, nil
	}

	ch := c.resolving.DoChan("deployed", func() (any, error) {
		return nil, c.resolve(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, common.Address{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, common.Address{}, res.Err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bound, c.address, nil
}

func (c *Contract) resolve(ctx context.Context) error {
	c.mu.Lock()
	done := c.bound != nil
	c.mu.Unlock()
	if done {
		return nil
	}

	var netID string
	if err := c.p.RPC.CallContext(ctx, &netID, "net_version"); err != nil {
		return fmt.Errorf("net_version: %w", err)
	}

	addr, err := c.art.Address(netID)
	if err != nil {
		return err
	}

	code, err := c.p.Eth.CodeAt(ctx, addr, nil)
	if err != nil {
		return fmt.Errorf("eth_getCode %s: %w", addr.Hex(), err)
	}
	if len(code) == 0 {
		return fmt.Errorf("%s %w (no code at %s)", c.art.ContractName, ErrNotDeployed, addr.Hex())
	}

	c.mu.Lock()
	c.address = addr
	c.bound = bind.NewBoundContract(addr, c.art.ABI, c.p.Eth, c.p.Eth, c.p.Eth)
	c.mu.Unlock()

	c.log.Info("contract bound", map[string]any{"contract": c.art.ContractName, "address": addr.Hex(), "network": netID})
	return nil
}

func (c *Contract) call(ctx context.Context, method string, args ...any) ([]any, error) {
	bc, _, err := c.deployed(ctx)
	if err != nil {
		return nil, err
	}
	var out []any
	if err := bc.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return out, nil
}

// ---------- Reads ----------

func (c *Contract) CowsByOwner(ctx context.Context, owner string) ([]uint64, error) {
	addr, err := parseAddress(owner)
	if err != nil {
		return nil, err
	}
	out, err := c.call(ctx, "getCowsByOwner", addr)
	if err != nil {
		return nil, err
	}
	ids := *abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int)

	nums := make([]uint64, 0, len(ids))
	for _, id := range ids {
		n, err := toUint64(id)
		if err != nil {
			return nil, fmt.Errorf("getCowsByOwner: %w", err)
		}
		nums = append(nums, n)
	}
	return nums, nil
}

func (c *Contract) IndexByCowNum(ctx context.Context, number uint64) (uint64, error) {
	out, err := c.call(ctx, "getIdByCowNum", new(big.Int).SetUint64(number))
	if err != nil {
		return 0, err
	}
	return toUint64(*abi.ConvertType(out[0], new(*big.Int)).(**big.Int))
}

// Cow lee la tupla (cowNum, cowMom, birthDate, types, sex).
func (c *Contract) Cow(ctx context.Context, index uint64) (cows.Cow, error) {
	out, err := c.call(ctx, "cows", new(big.Int).SetUint64(index))
	if err != nil {
		return cows.Cow{}, err
	}
	if len(out) != 5 {
		return cows.Cow{}, fmt.Errorf("cows: unexpected %d outputs", len(out))
	}

	num, err := toUint64(*abi.ConvertType(out[0], new(*big.Int)).(**big.Int))
	if err != nil {
		return cows.Cow{}, err
	}
	mom, err := toUint64(*abi.ConvertType(out[1], new(*big.Int)).(**big.Int))
	if err != nil {
		return cows.Cow{}, err
	}
	birth, err := toUint64(*abi.ConvertType(out[2], new(*big.Int)).(**big.Int))
	if err != nil {
		return cows.Cow{}, err
	}
	if birth > math.MaxInt64 {
		return cows.Cow{}, fmt.Errorf("cows: birth date %d out of range", birth)
	}

	return cows.Cow{
		Index:     index,
		Number:    num,
		Mom:       mom,
		BirthDate: time.Unix(int64(birth), 0).UTC(),
		Type:      *abi.ConvertType(out[3], new(string)).(*string),
		Sex:       *abi.ConvertType(out[4], new(string)).(*string),
	}, nil
}

func (c *Contract) CowURI(ctx context.Context, number uint64) (string, error) {
	out, err := c.call(ctx, "getCowURI", new(big.Int).SetUint64(number))
	if err != nil {
		return "", err
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

func (c *Contract) CountByOwner(ctx context.Context, owner string) (uint64, error) {
	addr, err := parseAddress(owner)
	if err != nil {
		return 0, err
	}
	out, err := c.call(ctx, "getCountByOwner", addr)
	if err != nil {
		return 0, err
	}
	return toUint64(*abi.ConvertType(out[0], new(*big.Int)).(**big.Int))
}

func (c *Contract) CowOwner(ctx context.Context, index uint64) (string, error) {
	return c.addressCall(ctx, "cowToOwner", new(big.Int).SetUint64(index))
}

func (c *Contract) OwnerByCow(ctx context.Context, number uint64) (string, error) {
	return c.addressCall(ctx, "getOwnerByCow", new(big.Int).SetUint64(number))
}

func (c *Contract) Admin(ctx context.Context) (string, error) {
	return c.addressCall(ctx, "owner")
}

func (c *Contract) addressCall(ctx context.Context, method string, args ...any) (string, error) {
	out, err := c.call(ctx, method, args...)
	if err != nil {
		return "", err
	}
	return abi.ConvertType(out[0], new(common.Address)).(*common.Address).Hex(), nil
}

// ---------- Writes ----------

// RecordBirth envía cowBirth y devuelve el número asignado (evento CowBirth).
func (c *Contract) RecordBirth(ctx context.Context, from string, in cows.BirthInput) (cows.Tx, error) {
	mom, err := parseNumber(in.Mom)
	if err != nil {
		return cows.Tx{}, err
	}

	receipt, err := c.transact(ctx, from, "cowBirth", mom, in.Type, in.Sex)
	if err != nil {
		return cows.Tx{}, err
	}

	tx := cows.Tx{Hash: receipt.TxHash.Hex()}
	if n, ok := c.bornNumber(receipt); ok {
		tx.CowNumber = n
	}
	return tx, nil
}

func (c *Contract) LinkMedia(ctx context.Context, from string, in cows.MediaLink) (cows.Tx, error) {
	num, err := parseNumber(in.CowID)
	if err != nil {
		return cows.Tx{}, err
	}
	receipt, err := c.transact(ctx, from, "setCowURI", num, in.ContentHash)
	if err != nil {
		return cows.Tx{}, err
	}
	return cows.Tx{Hash: receipt.TxHash.Hex()}, nil
}

func (c *Contract) TransferAdmin(ctx context.Context, from, newAdmin string) (cows.Tx, error) {
	to, err := parseAddress(newAdmin)
	if err != nil {
		return cows.Tx{}, err
	}
	receipt, err := c.transact(ctx, from, "transferOwnership", to)
	if err != nil {
		return cows.Tx{}, err
	}
	return cows.Tx{Hash: receipt.TxHash.Hex()}, nil
}

type sendTxArgs struct {
	From common.Address  `json:"from"`
	To   *common.Address `json:"to"`
	Data hexutil.Bytes   `json:"data"`
}

// transact firma del lado del nodo (eth_sendTransaction) y espera el receipt.
func (c *Contract) transact(ctx context.Context, from, method string, args ...any) (*types.Receipt, error) {
	sender, err := parseAddress(from)
	if err != nil {
		return nil, err
	}
	_, to, err := c.deployed(ctx)
	if err != nil {
		return nil, err
	}

	data, err := c.art.ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: pack: %w", method, err)
	}

	var hash common.Hash
	if err := c.p.RPC.CallContext(ctx, &hash, "eth_sendTransaction", sendTxArgs{From: sender, To: &to, Data: data}); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	c.log.Debug("transaction sent", map[string]any{"method": method, "tx": hash.Hex(), "from": sender.Hex()})

	receipt, err := c.waitMined(ctx, hash)
	if err != nil {
		return receipt, fmt.Errorf("%s: %w", method, err)
	}
	return receipt, nil
}

func (c *Contract) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		receipt, err := c.p.Eth.TransactionReceipt(ctx, hash)
		if err == nil {
			if receipt.Status == types.ReceiptStatusFailed {
				return receipt, fmt.Errorf("%w: tx %s", ErrReverted, hash.Hex())
			}
			return receipt, nil
		}
		if !errors.Is(err, goeth.NotFound) {
			return nil, fmt.Errorf("receipt %s: %w", hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

type cowBirthEvent struct {
	CowNumber *big.Int
	MomNumber *big.Int
	CowType   string
	CowSex    string
}

func (c *Contract) bornNumber(receipt *types.Receipt) (uint64, bool) {
	c.mu.Lock()
	bc, addr := c.bound, c.address
	c.mu.Unlock()

	ev := c.art.ABI.Events[eventCowBirth]
	for _, l := range receipt.Logs {
		if l == nil || l.Address != addr || len(l.Topics) == 0 || l.Topics[0] != ev.ID {
			continue
		}
		var out cowBirthEvent
		if err := bc.UnpackLog(&out, eventCowBirth, *l); err != nil {
			c.log.Warn("decode CowBirth failed", map[string]any{"tx": receipt.TxHash.Hex(), "err": err})
			continue
		}
		if n, err := toUint64(out.CowNumber); err == nil {
			return n, true
		}
	}
	return 0, false
}

// ---------- helpers ----------

func parseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// parseNumber convierte el valor crudo del formulario a uint256. No hay más validación:
// rangos y existencia los decide el contrato.
func parseNumber(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("invalid number value %q", s)
	}
	return n, nil
}

func toUint64(n *big.Int) (uint64, error) {
	if n == nil || !n.IsUint64() {
		return 0, fmt.Errorf("value %v overflows uint64", n)
	}
	return n.Uint64(), nil
}

var _ cows.Registry = (*Contract)(nil)
