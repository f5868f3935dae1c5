package polymarket

// clob.go — Polymarket CLOB API adapter: market data y mutación de órdenes.
//
// Implementa ports.Exchange. Las lecturas de mercado (book, tick size) son
// públicas; órdenes y balance van por endpoints L2 autenticados.

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

const (
	bookPath     = "/book"
	tickSizePath = "/tick-size"
	ordersPath   = "/orders"
	orderPath    = "/order"
	negRiskPath  = "/neg-risk"
)

// clobNegRiskResponse es la respuesta de GET /neg-risk.
type clobNegRiskResponse struct {
	NegRisk bool `json:"neg_risk"`
}

// GetOrderBook devuelve el book crudo de un token.
func (ac *AuthClient) GetOrderBook(ctx context.Context, tokenID string) (domain.OrderBook, error) {
	u := fmt.Sprintf("%s%s?token_id=%s", ac.clobBase, bookPath, url.QueryEscape(tokenID))

	var resp bookResponse
	if err := ac.get(ctx, ac.booksLimiter, u, &resp); err != nil {
		return domain.OrderBook{}, fmt.Errorf("clob.GetOrderBook %s: %w", tokenID, err)
	}

	return mapOrderBook(tokenID, resp), nil
}

// GetTickSize devuelve el incremento mínimo de precio del token.
func (ac *AuthClient) GetTickSize(ctx context.Context, tokenID string) (float64, error) {
	u := fmt.Sprintf("%s%s?token_id=%s", ac.clobBase, tickSizePath, url.QueryEscape(tokenID))

	var resp tickSizeResponse
	if err := ac.get(ctx, ac.clobLimiter, u, &resp); err != nil {
		return 0, fmt.Errorf("clob.GetTickSize %s: %w", tokenID, err)
	}

	tick, err := resp.MinimumTickSize.Float64()
	if err != nil || tick <= 0 {
		return 0, fmt.Errorf("clob.GetTickSize %s: invalid tick %q", tokenID, resp.MinimumTickSize)
	}
	return tick, nil
}

// GetOpenOrders devuelve las órdenes propias abiertas de un mercado.
func (ac *AuthClient) GetOpenOrders(ctx context.Context, marketID string) ([]domain.OpenOrder, error) {
	path := fmt.Sprintf("%s?market=%s", ordersPath, url.QueryEscape(marketID))

	var resp clobOrdersResponse
	if err := ac.doL2(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("clob.GetOpenOrders %s: %w", marketID, err)
	}

	return mapOpenOrders(resp.Data), nil
}

// CancelOrder cancela una orden por su id.
func (ac *AuthClient) CancelOrder(ctx context.Context, orderID string) error {
	if err := ac.doL2(ctx, http.MethodDelete, orderPath+"/"+orderID, nil, nil); err != nil {
		return fmt.Errorf("clob.CancelOrder %s: %w", orderID, err)
	}
	return nil
}

// CreateOrder firma y postea una orden limit GTC. size en contratos.
func (ac *AuthClient) CreateOrder(ctx context.Context, tokenID string, side domain.Side, price, size float64) (string, error) {
	negRisk, err := ac.isNegRisk(ctx, tokenID)
	if err != nil {
		return "", fmt.Errorf("clob.CreateOrder: %w", err)
	}

	signed, err := ac.buildSignedOrder(tokenID, side, price, size, negRisk)
	if err != nil {
		return "", fmt.Errorf("clob.CreateOrder: sign: %w", err)
	}

	body := clobOrderRequest{
		Order: clobOrderBody{
			Salt:          json.Number(signed.Order.Salt.String()),
			Maker:         signed.Order.Maker.Hex(),
			Signer:        signed.Order.Signer.Hex(),
			Taker:         signed.Order.Taker.Hex(),
			TokenID:       tokenID,
			MakerAmount:   signed.Order.MakerAmount.String(),
			TakerAmount:   signed.Order.TakerAmount.String(),
			Expiration:    signed.Order.Expiration.String(),
			Nonce:         signed.Order.Nonce.String(),
			FeeRateBps:    signed.Order.FeeRateBps.String(),
			Side:          string(side),
			SignatureType: int(signed.Order.SignatureType.Int64()),
			Signature:     "0x" + hex.EncodeToString(signed.Signature),
		},
		Owner:     ac.creds.APIKey,
		OrderType: "GTC",
	}

	var resp clobOrderResponse
	if err := ac.doL2(ctx, http.MethodPost, orderPath, body, &resp); err != nil {
		return "", fmt.Errorf("clob.CreateOrder: post: %w", err)
	}

	if !resp.Success || resp.ErrorMsg != "" {
		return "", fmt.Errorf("clob.CreateOrder: clob error: %s", resp.ErrorMsg)
	}

	slog.Debug("order created",
		"order_id", resp.OrderID,
		"token", tokenID,
		"side", side,
		"price", price,
		"size", size,
	)
	return resp.OrderID, nil
}

// isNegRisk consulta (con cache) si el token usa el adapter NegRisk.
func (ac *AuthClient) isNegRisk(ctx context.Context, tokenID string) (bool, error) {
	ac.negRiskMu.RLock()
	v, ok := ac.negRisk[tokenID]
	ac.negRiskMu.RUnlock()
	if ok {
		return v, nil
	}

	u := fmt.Sprintf("%s%s?token_id=%s", ac.clobBase, negRiskPath, url.QueryEscape(tokenID))
	var resp clobNegRiskResponse
	if err := ac.get(ctx, ac.clobLimiter, u, &resp); err != nil {
		return false, fmt.Errorf("neg-risk check %s: %w", tokenID, err)
	}

	ac.negRiskMu.Lock()
	ac.negRisk[tokenID] = resp.NegRisk
	ac.negRiskMu.Unlock()
	return resp.NegRisk, nil
}
