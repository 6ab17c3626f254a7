package handler

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/shahanth4444/dex-amm/internal/service"
)

type PoolHandler struct {
	BaseHandler
	service *service.PoolService
}

func NewPoolHandler(logger *slog.Logger, svc *service.PoolService) *PoolHandler {
	return &PoolHandler{
		BaseHandler: BaseHandler{
			logger: logger,
		},
		service: svc,
	}
}

type AddLiquidityRequest struct {
	Provider string `json:"provider"`
	AmountA  string `json:"amount_a"`
	AmountB  string `json:"amount_b"`
}

type RemoveLiquidityRequest struct {
	Provider string `json:"provider"`
	Shares   string `json:"shares"`
}

type SwapRequest struct {
	Trader   string `json:"trader"`
	TokenIn  string `json:"token_in"`
	AmountIn string `json:"amount_in"`
}

type QuoteRequest struct {
	AmountIn   string `query:"amount_in" json:"amount_in"`
	ReserveIn  string `query:"reserve_in" json:"reserve_in"`
	ReserveOut string `query:"reserve_out" json:"reserve_out"`
}

func (h *PoolHandler) AddLiquidity() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req AddLiquidityRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind request body", "err", err)
			return ErrInvalidRequestBody
		}

		provider, err := parseAddress("provider", req.Provider)
		if err != nil {
			return err
		}
		amountA, err := parseAmount(req.AmountA)
		if err != nil {
			return err
		}
		amountB, err := parseAmount(req.AmountB)
		if err != nil {
			return err
		}

		minted, err := h.service.AddLiquidity(provider, amountA, amountB)
		if err != nil {
			return h.handleServiceError(err)
		}

		return c.JSON(fiber.Map{"shares_minted": minted.Dec()})
	}
}

func (h *PoolHandler) RemoveLiquidity() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req RemoveLiquidityRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind request body", "err", err)
			return ErrInvalidRequestBody
		}

		provider, err := parseAddress("provider", req.Provider)
		if err != nil {
			return err
		}
		shares, err := parseAmount(req.Shares)
		if err != nil {
			return err
		}

		amountA, amountB, err := h.service.RemoveLiquidity(provider, shares)
		if err != nil {
			return h.handleServiceError(err)
		}

		return c.JSON(fiber.Map{
			"amount_a": amountA.Dec(),
			"amount_b": amountB.Dec(),
		})
	}
}

func (h *PoolHandler) Swap() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req SwapRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind request body", "err", err)
			return ErrInvalidRequestBody
		}

		trader, err := parseAddress("trader", req.Trader)
		if err != nil {
			return err
		}
		tokenIn, err := parseAddress("token_in", req.TokenIn)
		if err != nil {
			return err
		}
		amountIn, err := parseAmount(req.AmountIn)
		if err != nil {
			return err
		}

		amountOut, err := h.service.Swap(trader, tokenIn, amountIn)
		if err != nil {
			return h.handleServiceError(err)
		}

		return c.JSON(fiber.Map{"amount_out": amountOut.Dec()})
	}
}

func (h *PoolHandler) Price() fiber.Handler {
	return func(c fiber.Ctx) error {
		price, err := h.service.Price()
		if err != nil {
			return h.handleServiceError(err)
		}
		return c.SendString(price.Dec())
	}
}

func (h *PoolHandler) Reserves() fiber.Handler {
	return func(c fiber.Ctx) error {
		reserveA, reserveB, totalShares := h.service.Reserves()
		return c.JSON(fiber.Map{
			"token_a":      h.service.TokenA().Hex(),
			"token_b":      h.service.TokenB().Hex(),
			"reserve_a":    reserveA.Dec(),
			"reserve_b":    reserveB.Dec(),
			"total_shares": totalShares.Dec(),
		})
	}
}

func (h *PoolHandler) Quote() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req QuoteRequest
		if err := c.Bind().Query(&req); err != nil {
			h.logger.Debug("failed to bind query parameters", "err", err)
			return ErrInvalidQueryParameters
		}

		amountIn, err := parseAmount(req.AmountIn)
		if err != nil {
			return err
		}
		reserveIn, err := parseAmount(req.ReserveIn)
		if err != nil {
			return err
		}
		reserveOut, err := parseAmount(req.ReserveOut)
		if err != nil {
			return err
		}

		amountOut, err := h.service.Quote(amountIn, reserveIn, reserveOut)
		if err != nil {
			return h.handleServiceError(err)
		}

		return c.SendString(amountOut.Dec())
	}
}

func (h *PoolHandler) Shares() fiber.Handler {
	return func(c fiber.Ctx) error {
		participant, err := parseAddress("participant", c.Query("participant"))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"shares": h.service.SharesOf(participant).Dec()})
	}
}

func (h *PoolHandler) Events() fiber.Handler {
	return func(c fiber.Ctx) error {
		limit := 50
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				return ErrInvalidQueryParameters
			}
			limit = parsed
		}
		entries, err := h.service.Events(limit)
		if err != nil {
			h.logger.Error("failed to read event journal", "err", err)
			return ErrOperationFailedInternal
		}
		return c.JSON(entries)
	}
}

func (h *PoolHandler) handleServiceError(err error) error {
	if mapped, ok := mapEngineError(err); ok {
		return mapped
	}
	h.logger.Error("pool operation failed", "err", err)
	return ErrOperationFailedInternal
}
