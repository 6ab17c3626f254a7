package service

import (
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/shahanth4444/dex-amm/internal/token"
)

// TokenService fronts the in-memory token ledger (the mock-token
// collaborator) for the faucet and balance endpoints.
type TokenService struct {
	BaseService
	ledger *token.Ledger
}

func NewTokenService(logger *slog.Logger, ledger *token.Ledger) *TokenService {
	return &TokenService{
		BaseService: BaseService{logger: logger},
		ledger:      ledger,
	}
}

func (s *TokenService) Mint(holder, asset common.Address, amount *uint256.Int) error {
	s.logger.Debug("minting",
		"holder", holder.Hex(), "asset", asset.Hex(), "amount", amount.Dec())
	return s.ledger.Mint(holder, asset, amount)
}

func (s *TokenService) BalanceOf(holder, asset common.Address) *uint256.Int {
	return s.ledger.BalanceOf(holder, asset)
}
