package app

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/agentarena/arena-terminal/business/chain/domain"
)

// ContractClient abstracts the RPC-backed contract layer.
type ContractClient interface {
	Signer() (common.Address, bool)
	Allowance(ctx context.Context, owner common.Address) (domain.Allowance, error)
	BalanceOf(ctx context.Context, addr common.Address) (*big.Int, error)
	TokenSymbol(ctx context.Context) (string, error)
	Approve(ctx context.Context, amount *big.Int) (domain.TxResult, error)
	CreateBounty(ctx context.Context, p domain.CreateBountyParams) (domain.TxResult, error)
	PickWinner(ctx context.Context, bountyID uint64, winner common.Address) (domain.TxResult, error)
}
