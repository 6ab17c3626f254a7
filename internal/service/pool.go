package service

import (
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/shahanth4444/dex-amm/internal/store"
	"github.com/shahanth4444/dex-amm/pkg/amm"
)

// PoolService fronts the pool engine for the HTTP handlers, adding request
// logging. Engine sentinel errors pass through untouched so handlers can
// map them.
type PoolService struct {
	BaseService
	pool    *amm.Pool
	journal *store.Journal
}

// NewPoolService constructs a PoolService. journal may be nil when event
// readback is not wired.
func NewPoolService(logger *slog.Logger, pool *amm.Pool, journal *store.Journal) *PoolService {
	return &PoolService{
		BaseService: BaseService{logger: logger},
		pool:        pool,
		journal:     journal,
	}
}

func (s *PoolService) AddLiquidity(provider common.Address, amountA, amountB *uint256.Int) (*uint256.Int, error) {
	s.logger.Debug("adding liquidity",
		"provider", provider.Hex(), "amount_a", amountA.Dec(), "amount_b", amountB.Dec())
	minted, err := s.pool.AddLiquidity(provider, amountA, amountB)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("liquidity added", "provider", provider.Hex(), "shares", minted.Dec())
	return minted, nil
}

func (s *PoolService) RemoveLiquidity(provider common.Address, shares *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	s.logger.Debug("removing liquidity", "provider", provider.Hex(), "shares", shares.Dec())
	amountA, amountB, err := s.pool.RemoveLiquidity(provider, shares)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Debug("liquidity removed",
		"provider", provider.Hex(), "amount_a", amountA.Dec(), "amount_b", amountB.Dec())
	return amountA, amountB, nil
}

func (s *PoolService) Swap(trader, tokenIn common.Address, amountIn *uint256.Int) (*uint256.Int, error) {
	s.logger.Debug("swapping",
		"trader", trader.Hex(), "token_in", tokenIn.Hex(), "amount_in", amountIn.Dec())
	amountOut, err := s.pool.Swap(trader, tokenIn, amountIn)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("swap executed", "trader", trader.Hex(), "amount_out", amountOut.Dec())
	return amountOut, nil
}

func (s *PoolService) Price() (*uint256.Int, error) {
	return s.pool.Price()
}

func (s *PoolService) Reserves() (reserveA, reserveB, totalShares *uint256.Int) {
	return s.pool.Reserves()
}

func (s *PoolService) SharesOf(participant common.Address) *uint256.Int {
	return s.pool.SharesOf(participant)
}

// Quote is the pure fee-adjusted constant-product quote over explicit
// reserves; it never touches pool state.
func (s *PoolService) Quote(amountIn, reserveIn, reserveOut *uint256.Int) (*uint256.Int, error) {
	return amm.GetAmountOut(amountIn, reserveIn, reserveOut)
}

// Events returns up to limit journal entries, newest first.
func (s *PoolService) Events(limit int) ([]store.Entry, error) {
	if s.journal == nil {
		return nil, nil
	}
	return s.journal.Recent(limit)
}

// TokenA returns the pool's first asset identifier.
func (s *PoolService) TokenA() common.Address { return s.pool.TokenA() }

// TokenB returns the pool's second asset identifier.
func (s *PoolService) TokenB() common.Address { return s.pool.TokenB() }
