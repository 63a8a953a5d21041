package chain

import "fmt"

// ChainNotFoundError is returned when no chain is configured, or the
// requested id is not in the registry.
type ChainNotFoundError struct {
	ChainID int64
}

func (e *ChainNotFoundError) Error() string {
	if e.ChainID == 0 {
		return "no chain was provided"
	}
	return fmt.Sprintf("chain %d is not configured", e.ChainID)
}

// ChainMismatchError is returned when the chain a payload targets differs
// from the chain the caller is operating on.
type ChainMismatchError struct {
	ChainID        int64
	ChainName      string
	CurrentChainID int64
}

func (e *ChainMismatchError) Error() string {
	return fmt.Sprintf("current chain id %d does not match the target chain %d (%s)",
		e.CurrentChainID, e.ChainID, e.ChainName)
}

// ChainDoesNotSupportContractError is returned for unknown contracts and for
// block numbers that predate the contract deployment.
type ChainDoesNotSupportContractError struct {
	ChainID      int64
	ChainName    string
	Contract     string
	BlockNumber  uint64
	BlockCreated uint64
}

func (e *ChainDoesNotSupportContractError) Error() string {
	if e.BlockCreated > 0 {
		return fmt.Sprintf("chain %q does not support contract %q at block %d (deployed at block %d)",
			e.ChainName, e.Contract, e.BlockNumber, e.BlockCreated)
	}
	return fmt.Sprintf("chain %q does not support contract %q", e.ChainName, e.Contract)
}
