package handler

import (
	"context"
	"errors"
	"math/big"

	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v3"

	"github.com/LocklessFinance/lkl-protocol/internal/service"
	"github.com/LocklessFinance/lkl-protocol/pkg/yieldspace"
)

type QuoteHandler struct {
	BaseHandler
	service *service.QuoteService
}

func NewQuoteHandler(logger *slog.Logger, svc *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		BaseHandler: BaseHandler{
			logger: logger,
		},
		service: svc,
	}
}

type QuoteRequest struct {
	Pool   string `query:"pool" json:"pool"`
	Amount string `query:"amount" json:"amount"`
	// BaseIn is true when the trader supplies the base asset. Out is true
	// when Amount denotes the supplied input and the response the output;
	// false when Amount denotes the desired output and the response the
	// required input.
	BaseIn bool `query:"base_in" json:"base_in"`
	Out    bool `query:"out" json:"out"`
}

type PoolRequest struct {
	Pool string `query:"pool" json:"pool"`
}

type PoolDetailsResponse struct {
	BaseReserves  string `json:"base_reserves"`
	BondReserves  string `json:"bond_reserves"`
	TotalSupply   string `json:"total_supply"`
	Expiration    int64  `json:"expiration"`
	UnitSeconds   int64  `json:"unit_seconds"`
	TokenDecimals uint8  `json:"token_decimals"`
}

// HandleQuote serves GET /quote: the counter-amount for a trade against the
// pool's curve, as a decimal string in the token's native decimals.
func (h *QuoteHandler) HandleQuote() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req QuoteRequest
		if err := c.Bind().Query(&req); err != nil {
			h.logger.Debug("failed to bind query parameters", "err", err)
			return ErrInvalidQueryParameters
		}
		if err := validateAddress("pool", req.Pool); err != nil {
			return err
		}
		amount, err := parseAmount(req.Amount)
		if err != nil {
			return err
		}

		pool := common.HexToAddress(req.Pool)
		quote, err := h.service.CalculateSwap(context.Background(), pool, amount, req.BaseIn, req.Out)
		if err != nil {
			return h.handleServiceError(err)
		}

		h.logger.Debug("quote served",
			"pool", req.Pool, "amount", amount.String(), "base_in", req.BaseIn, "out", req.Out, "quote", quote.String())
		return c.SendString(quote.String())
	}
}

// HandlePoolDetails serves GET /pool: the raw snapshot the quote runs over.
func (h *QuoteHandler) HandlePoolDetails() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req PoolRequest
		if err := c.Bind().Query(&req); err != nil {
			h.logger.Debug("failed to bind query parameters", "err", err)
			return ErrInvalidQueryParameters
		}
		if err := validateAddress("pool", req.Pool); err != nil {
			return err
		}

		pool := common.HexToAddress(req.Pool)
		snap, err := h.service.GetPoolDetails(context.Background(), pool)
		if err != nil {
			return h.handleServiceError(err)
		}

		return c.JSON(PoolDetailsResponse{
			BaseReserves:  snap.BaseReserves.String(),
			BondReserves:  snap.BondReserves.String(),
			TotalSupply:   snap.TotalSupply.String(),
			Expiration:    snap.Expiration,
			UnitSeconds:   snap.UnitSeconds,
			TokenDecimals: snap.TokenDecimals,
		})
	}
}

func validateAddress(field, addr string) error {
	if addr == "" {
		return NewAddressRequired(field)
	}
	if !common.IsHexAddress(addr) {
		return NewInvalidAddress(field)
	}
	return nil
}

func parseAmount(amountStr string) (*big.Int, error) {
	if amountStr == "" {
		return nil, ErrAmountRequired
	}
	amount, ok := new(big.Int).SetString(amountStr, 10)
	if !ok {
		return nil, ErrInvalidAmountFormat
	}
	if amount.Sign() < 0 {
		return nil, ErrAmountNegative
	}
	return amount, nil
}

func (h *QuoteHandler) handleServiceError(err error) error {
	switch {
	case errors.Is(err, yieldspace.ErrInsufficientLiquidity):
		return ErrLiquidityExceededBadRequest
	case errors.Is(err, service.ErrNegativeAmount):
		return ErrAmountNegative
	case errors.Is(err, yieldspace.ErrDivisionByZero),
		errors.Is(err, yieldspace.ErrDegenerateCurve),
		errors.Is(err, yieldspace.ErrUnderflow),
		errors.Is(err, service.ErrBadPoolConfig):
		return ErrPoolMisconfigured
	default:
		h.logger.Error("service quote failed", "err", err)
		return ErrQuoteFailedInternal
	}
}
