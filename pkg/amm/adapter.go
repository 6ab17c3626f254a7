package amm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// TransferAdapter moves fungible balances between a participant and the
// pool's custody. Each call either fully succeeds or returns an error with
// no balance moved; the pool treats any error as fatal to the enclosing
// operation and rolls it back.
type TransferAdapter interface {
	// PullFrom debits amount of asset from participant into pool custody.
	PullFrom(participant, asset common.Address, amount *uint256.Int) error
	// PushTo credits amount of asset from pool custody to participant.
	PushTo(participant, asset common.Address, amount *uint256.Int) error
}
