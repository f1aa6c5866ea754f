package ethereum

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cow-registry/internal/platform/httpclient"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/tidwall/gjson"
)

var ErrNotDeployed = errors.New("contract has not been deployed to detected network")

// Artifact es el JSON que genera truffle (contractName, abi, networks).
type Artifact struct {
	ContractName string
	ABI          abi.ABI
	Networks     map[string]common.Address
}

func ParseArtifact(data []byte) (*Artifact, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("artifact: invalid json")
	}
	doc := gjson.ParseBytes(data)

	rawABI := doc.Get("abi")
	if !rawABI.IsArray() {
		return nil, errors.New("artifact: missing abi")
	}
	parsed, err := abi.JSON(strings.NewReader(rawABI.Raw))
	if err != nil {
		return nil, fmt.Errorf("artifact: parse abi: %w", err)
	}

	art := &Artifact{
		ContractName: doc.Get("contractName").String(),
		ABI:          parsed,
		Networks:     map[string]common.Address{},
	}

	// networks.<id>.address; entradas sin address válida se ignoran
	doc.Get("networks").ForEach(func(id, n gjson.Result) bool {
		addr := n.Get("address").String()
		if common.IsHexAddress(addr) {
			art.Networks[id.String()] = common.HexToAddress(addr)
		}
		return true
	})
	return art, nil
}

// Address devuelve la dirección desplegada en networkID (net_version).
func (a *Artifact) Address(networkID string) (common.Address, error) {
	addr, ok := a.Networks[strings.TrimSpace(networkID)]
	if !ok {
		return common.Address{}, fmt.Errorf("%s %w (network %s)", a.ContractName, ErrNotDeployed, networkID)
	}
	return addr, nil
}

// LoadArtifact lee <source>/<name>.json. source puede ser un directorio o una base URL http(s).
func LoadArtifact(ctx context.Context, source, name string, hc *httpclient.Client) (*Artifact, error) {
	file := name + ".json"

	var (
		data []byte
		err  error
	)
	if httpclient.IsURL(source) {
		if hc == nil {
			hc = httpclient.New(0)
		}
		data, err = hc.GetJSON(ctx, strings.TrimRight(source, "/")+"/"+file)
	} else {
		data, err = os.ReadFile(filepath.Join(source, file))
	}
	if err != nil {
		return nil, fmt.Errorf("load artifact %s: %w", file, err)
	}

	art, err := ParseArtifact(data)
	if err != nil {
		return nil, fmt.Errorf("load artifact %s: %w", file, err)
	}
	if art.ContractName == "" {
		art.ContractName = name
	}
	return art, nil
}
