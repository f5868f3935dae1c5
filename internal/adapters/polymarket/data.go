package polymarket

// data.go — posiciones desde el data-api y balance USDC desde el CLOB.

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"net/url"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

const positionsPath = "/positions"

// GetPosition devuelve la posición del mercado; cero si no hay.
// Una posición ausente no es un error: significa inventario cero.
func (ac *AuthClient) GetPosition(ctx context.Context, marketID string) (domain.Position, error) {
	u := fmt.Sprintf("%s%s?user=%s&market=%s",
		ac.dataBase, positionsPath,
		url.QueryEscape(ac.FunderAddress()),
		url.QueryEscape(marketID),
	)

	var resp []dataPosition
	if err := ac.get(ctx, ac.dataLimiter, u, &resp); err != nil {
		return domain.Position{}, fmt.Errorf("data.GetPosition %s: %w", marketID, err)
	}

	if len(resp) == 0 {
		return domain.Position{}, nil
	}
	return mapPosition(resp[0]), nil
}

// GetHoldings devuelve todas las posiciones abiertas de la cuenta.
func (ac *AuthClient) GetHoldings(ctx context.Context) ([]domain.Holding, error) {
	u := fmt.Sprintf("%s%s?user=%s",
		ac.dataBase, positionsPath,
		url.QueryEscape(ac.FunderAddress()),
	)

	var resp []dataPosition
	if err := ac.get(ctx, ac.dataLimiter, u, &resp); err != nil {
		return nil, fmt.Errorf("data.GetHoldings: %w", err)
	}

	return mapHoldings(resp), nil
}

// GetFreeCash devuelve el USDC disponible en la cuenta (colateral del CLOB).
func (ac *AuthClient) GetFreeCash(ctx context.Context) (float64, error) {
	path := "/balance-allowance?asset_type=COLLATERAL"

	var resp clobBalanceResponse
	if err := ac.doL2(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return 0, fmt.Errorf("clob.GetFreeCash: %w", err)
	}

	return parseUSDC(resp.Balance), nil
}

// parseUSDC convierte un string en micro-USDC (p.ej. "1000000") a USDC float.
func parseUSDC(s string) float64 {
	if s == "" {
		return 0
	}
	n := new(big.Int)
	if _, ok := n.SetString(s, 10); !ok {
		return 0
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f / 1_000_000
}
