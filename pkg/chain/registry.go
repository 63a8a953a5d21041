package chain

import (
	"fmt"
	"os"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"github.com/ahwlsqja/typed-data-verifier/pkg/eip712"
)

const multicall3 = "0xcA11bde05977b3631167028862bE2a173976CA11"

// Registry is an immutable set of chains keyed by id.
type Registry struct {
	chains map[int64]*Chain
}

// NewRegistry builds a registry. A later chain with the same id replaces an
// earlier one.
func NewRegistry(chains ...*Chain) *Registry {
	r := &Registry{chains: make(map[int64]*Chain, len(chains))}
	for _, c := range chains {
		r.chains[c.ID] = c
	}
	return r
}

// DefaultRegistry knows Ethereum mainnet and Sepolia.
func DefaultRegistry() *Registry {
	return NewRegistry(
		&Chain{
			ID:   1,
			Name: "Ethereum",
			Contracts: map[string]Contract{
				"multicall3": {Address: common.HexToAddress(multicall3), BlockCreated: 14353601},
			},
		},
		&Chain{
			ID:   11155111,
			Name: "Sepolia",
			Contracts: map[string]Contract{
				"multicall3": {Address: common.HexToAddress(multicall3), BlockCreated: 751532},
			},
		},
	)
}

// Get returns the chain with the given id.
func (r *Registry) Get(id int64) (*Chain, error) {
	c, ok := r.chains[id]
	if !ok {
		return nil, &ChainNotFoundError{ChainID: id}
	}
	return c, nil
}

// Chains returns every chain ordered by id.
func (r *Registry) Chains() []*Chain {
	out := make([]*Chain, 0, len(r.chains))
	for _, c := range r.chains {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type registryFile struct {
	Chains []chainFile `yaml:"chains"`
}

type chainFile struct {
	ID        int64                   `yaml:"id"`
	Name      string                  `yaml:"name"`
	Contracts map[string]contractFile `yaml:"contracts"`
}

type contractFile struct {
	Address      string `yaml:"address"`
	BlockCreated uint64 `yaml:"blockCreated"`
}

// LoadRegistry reads a YAML registry file. An empty path yields the
// default registry.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return DefaultRegistry(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chain registry: %w", err)
	}
	return ParseRegistry(data)
}

// ParseRegistry decodes a YAML registry document.
func ParseRegistry(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse chain registry: %w", err)
	}

	chains := make([]*Chain, 0, len(file.Chains))
	for _, cf := range file.Chains {
		if cf.ID <= 0 {
			return nil, fmt.Errorf("chain %q: id must be positive", cf.Name)
		}
		c := &Chain{ID: cf.ID, Name: cf.Name, Contracts: make(map[string]Contract, len(cf.Contracts))}
		for name, ct := range cf.Contracts {
			addr, err := eip712.GetAddress(ct.Address)
			if err != nil {
				return nil, fmt.Errorf("chain %d contract %q: %w", cf.ID, name, err)
			}
			c.Contracts[name] = Contract{Address: addr, BlockCreated: ct.BlockCreated}
		}
		chains = append(chains, c)
	}
	return NewRegistry(chains...), nil
}
