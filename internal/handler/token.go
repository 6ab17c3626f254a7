package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/shahanth4444/dex-amm/internal/service"
	"github.com/shahanth4444/dex-amm/internal/token"
)

// ErrMintFailed maps a rejected faucet mint to 400.
var ErrMintFailed = fiber.NewError(fiber.StatusBadRequest, "mint failed")

// TokenHandler exposes the mock-token ledger: a faucet for test balances
// and a balance query.
type TokenHandler struct {
	BaseHandler
	service *service.TokenService
}

func NewTokenHandler(logger *slog.Logger, svc *service.TokenService) *TokenHandler {
	return &TokenHandler{
		BaseHandler: BaseHandler{
			logger: logger,
		},
		service: svc,
	}
}

type FaucetRequest struct {
	Participant string `json:"participant"`
	Token       string `json:"token"`
	Amount      string `json:"amount"`
}

func (h *TokenHandler) Faucet() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req FaucetRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind request body", "err", err)
			return ErrInvalidRequestBody
		}

		participant, err := parseAddress("participant", req.Participant)
		if err != nil {
			return err
		}
		asset, err := parseAddress("token", req.Token)
		if err != nil {
			return err
		}
		amount, err := parseAmount(req.Amount)
		if err != nil {
			return err
		}

		if err := h.service.Mint(participant, asset, amount); err != nil {
			if errors.Is(err, token.ErrInvalidAmount) || errors.Is(err, token.ErrBalanceOverflow) {
				return ErrMintFailed
			}
			h.logger.Error("mint failed", "err", err)
			return ErrOperationFailedInternal
		}

		return c.JSON(fiber.Map{
			"balance": h.service.BalanceOf(participant, asset).Dec(),
		})
	}
}

func (h *TokenHandler) Balance() fiber.Handler {
	return func(c fiber.Ctx) error {
		participant, err := parseAddress("participant", c.Query("participant"))
		if err != nil {
			return err
		}
		asset, err := parseAddress("token", c.Query("token"))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"balance": h.service.BalanceOf(participant, asset).Dec(),
		})
	}
}
