// Package chain holds the chains the service accepts signatures for and the
// well-known contracts deployed on them.
package chain

import (
	"github.com/ethereum/go-ethereum/common"
)

// Contract is a named deployment on a chain.
type Contract struct {
	Address      common.Address
	BlockCreated uint64
}

// Chain describes an EVM network.
type Chain struct {
	ID        int64
	Name      string
	Contracts map[string]Contract
}

// AssertCurrentChain fails unless chain is set and its id equals currentChainID.
func AssertCurrentChain(chain *Chain, currentChainID int64) error {
	if chain == nil {
		return &ChainNotFoundError{}
	}
	if chain.ID != currentChainID {
		return &ChainMismatchError{
			ChainID:        chain.ID,
			ChainName:      chain.Name,
			CurrentChainID: currentChainID,
		}
	}
	return nil
}

// GetChainContractAddress resolves a contract by name. When blockNumber is
// non-nil and the contract was deployed after it, the lookup fails.
func GetChainContractAddress(chain *Chain, name string, blockNumber *uint64) (common.Address, error) {
	if chain == nil {
		return common.Address{}, &ChainNotFoundError{}
	}
	contract, ok := chain.Contracts[name]
	if !ok {
		return common.Address{}, &ChainDoesNotSupportContractError{
			ChainID:   chain.ID,
			ChainName: chain.Name,
			Contract:  name,
		}
	}
	if blockNumber != nil && *blockNumber > 0 && contract.BlockCreated > *blockNumber {
		return common.Address{}, &ChainDoesNotSupportContractError{
			ChainID:      chain.ID,
			ChainName:    chain.Name,
			Contract:     name,
			BlockNumber:  *blockNumber,
			BlockCreated: contract.BlockCreated,
		}
	}
	return contract.Address, nil
}
