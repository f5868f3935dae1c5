package polymarket

import "encoding/json"

// DTOs raw de la API de Polymarket. Solo se usan dentro de este paquete.
// La conversión a domain entities se hace en mapping.go.

// --- CLOB API ---

// bookResponse es la respuesta de GET /book.
type bookResponse struct {
	AssetID string         `json:"asset_id"`
	Bids    []bookEntryRaw `json:"bids"`
	Asks    []bookEntryRaw `json:"asks"`
}

// bookEntryRaw es un nivel de precio raw de la API (strings para mayor precisión).
type bookEntryRaw struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// tickSizeResponse es la respuesta de GET /tick-size.
type tickSizeResponse struct {
	MinimumTickSize json.Number `json:"minimum_tick_size"`
}

// clobOpenOrder es una orden abierta según GET /orders (L2).
type clobOpenOrder struct {
	ID           string `json:"id"`
	AssetID      string `json:"asset_id"`
	Market       string `json:"market"`
	Side         string `json:"side"`
	OriginalSize string `json:"original_size"`
	SizeMatched  string `json:"size_matched"`
	Price        string `json:"price"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	Outcome      string `json:"outcome"`
}

// clobOrdersResponse es la respuesta paginada de GET /orders.
type clobOrdersResponse struct {
	Data       []clobOpenOrder `json:"data"`
	NextCursor string          `json:"next_cursor"`
}

// clobOrderRequest es el body de POST /order.
type clobOrderRequest struct {
	Order     clobOrderBody `json:"order"`
	Owner     string        `json:"owner"`
	OrderType string        `json:"orderType"`
}

type clobOrderBody struct {
	Salt          json.Number `json:"salt"`
	Maker         string      `json:"maker"`
	Signer        string      `json:"signer"`
	Taker         string      `json:"taker"`
	TokenID       string      `json:"tokenId"`
	MakerAmount   string      `json:"makerAmount"`
	TakerAmount   string      `json:"takerAmount"`
	Expiration    string      `json:"expiration"`
	Nonce         string      `json:"nonce"`
	FeeRateBps    string      `json:"feeRateBps"`
	Side          string      `json:"side"`
	SignatureType int         `json:"signatureType"`
	Signature     string      `json:"signature"`
}

type clobOrderResponse struct {
	ErrorMsg string `json:"errorMsg"`
	OrderID  string `json:"orderID"`
	Status   string `json:"status"`
	Success  bool   `json:"success"`
}

// clobBalanceResponse es la respuesta de GET /balance-allowance.
// El balance viene en micro-USDC.
type clobBalanceResponse struct {
	Balance string `json:"balance"`
}

// --- data-api ---

// dataPosition es una posición según GET /positions del data-api.
type dataPosition struct {
	Market       string      `json:"market"`
	AssetID      string      `json:"asset"`
	Size         json.Number `json:"size"`
	AvgPrice     json.Number `json:"avgPrice"`
	CurrentValue json.Number `json:"currentValue"`
	Title        string      `json:"title"`
}

// --- Gamma API ---

// gammaMarketsResponse es la respuesta de GET /markets de Gamma.
type gammaMarketsResponse []gammaMarket

// gammaMarket contiene la metadata de reporte de un mercado.
// Gamma devuelve algunos campos numéricos como strings JSON, usamos json.Number.
type gammaMarket struct {
	ConditionID string      `json:"conditionId"`
	Question    string      `json:"question"`
	Slug        string      `json:"slug"`
	Volume24h   json.Number `json:"volume24hr"`
	Volume1wk   json.Number `json:"volume1wk"`
	Liquidity   json.Number `json:"liquidityNum"`
	Active      bool        `json:"active"`
	Closed      bool        `json:"closed"`
}
