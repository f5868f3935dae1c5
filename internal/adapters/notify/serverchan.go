package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

const serverChanBase = "https://sctapi.ftqq.com"

// ServerChan empuja notificaciones a WeChat vía la API de Server酱.
// Si la key está vacía todas las operaciones son no-op: el bot funciona
// igual sin canal de push configurado.
type ServerChan struct {
	key  string
	base string
	hc   *http.Client
}

// NewServerChan crea el notificador push. key puede ser "".
func NewServerChan(key string) *ServerChan {
	return &ServerChan{
		key:  key,
		base: serverChanBase,
		hc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// NotifyRound es no-op: las rondas no se empujan, solo fills y alertas.
func (s *ServerChan) NotifyRound(_ context.Context, _ domain.RoundResult) error {
	return nil
}

// NotifyFill empuja el fill detectado con el resumen de cartera.
func (s *ServerChan) NotifyFill(ctx context.Context, fill domain.FillEvent, portfolio string) error {
	verb := "SELL"
	if fill.IsBuy() {
		verb = "BUY"
	}

	title := fmt.Sprintf("%s %.2f — %s", verb, fill.Delta, truncate(fill.MarketName, 24))
	body := fmt.Sprintf("**%s**\n\nΔ %.2f shares → pos %.2f ($%.2f)\n\n%s",
		fill.MarketName, fill.Delta, fill.NewSize, fill.NewValue, portfolio)

	return s.send(ctx, title, body)
}

// NotifyAlert empuja un evento operacional.
func (s *ServerChan) NotifyAlert(ctx context.Context, title, body string) error {
	return s.send(ctx, title, body)
}

// send hace el POST a la API. ServerChan devuelve code==0 en éxito.
func (s *ServerChan) send(ctx context.Context, title, body string) error {
	if s.key == "" {
		return nil
	}

	form := url.Values{}
	form.Set("title", title)
	form.Set("desp", body)

	endpoint := fmt.Sprintf("%s/%s.send", s.base, s.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("serverchan.send: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.hc.Do(req)
	if err != nil {
		return fmt.Errorf("serverchan.send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("serverchan.send: status %d", resp.StatusCode)
	}

	var out struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("serverchan.send: decode response: %w", err)
	}
	if out.Code != 0 {
		return fmt.Errorf("serverchan.send: api code %d: %s", out.Code, out.Message)
	}
	return nil
}
