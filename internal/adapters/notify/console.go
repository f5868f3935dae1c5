package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/polyquoter/internal/domain"
)

// Console implementa ports.Notifier escribiendo a un io.Writer.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// NotifyRound imprime el resultado de la ronda en el modo configurado.
func (c *Console) NotifyRound(_ context.Context, round domain.RoundResult) error {
	if len(round.Stats) == 0 {
		fmt.Fprintf(c.out, "[%s] no markets enabled\n", round.At.Format("15:04:05"))
		return nil
	}

	if c.table {
		c.printFull(round)
	} else {
		c.printCompact(round)
	}
	return nil
}

// printCompact imprime una línea por mercado.
func (c *Console) printCompact(round domain.RoundResult) {
	now := round.At.Format("15:04:05")

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %d mkts | %d err | %.1fs",
		now, len(round.Stats), round.Errors, round.Elapsed.Seconds())

	for _, s := range round.Stats {
		name := compactName(s.Name, 20)
		if s.Err != nil {
			fmt.Fprintf(&sb, "\n  !! %-20s %v", name, s.Err)
			continue
		}
		fmt.Fprintf(&sb, "\n  %-20s bid/ask %.3f/%.3f | quote %.3f→%.3f sp%.1f%% | pos %.0f%% | o:%d/%d",
			name, s.BestBid, s.BestAsk,
			s.BuyPrice, s.SellPrice, s.Spread()*100,
			s.PositionRatio()*100, s.BuyOrders, s.SellOrders)
	}

	fmt.Fprintln(c.out, sb.String())
}

// printFull imprime la tabla completa con analítica.
func (c *Console) printFull(round domain.RoundResult) {
	fmt.Fprintf(c.out, "\n[%s] round — %d markets, %d errors, %.1fs\n",
		round.At.Format("15:04:05"), len(round.Stats), round.Errors, round.Elapsed.Seconds())

	table := tablewriter.NewWriter(c.out)
	table.Header("Market", "Side", "Bid", "Ask", "Buy@", "Sell@", "Spread", "Pos$", "Pos%", "Ords", "Vol24h", "Turn", "Yield/d")

	for _, s := range round.Stats {
		name := truncate(s.Name, 28)
		if s.Err != nil {
			table.Append(name, string(s.Side), "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "ERR")
			continue
		}

		table.Append(
			name,
			string(s.Side),
			fmt.Sprintf("%.3f", s.BestBid),
			fmt.Sprintf("%.3f", s.BestAsk),
			fmt.Sprintf("%.3f", s.BuyPrice),
			fmt.Sprintf("%.3f", s.SellPrice),
			fmt.Sprintf("%.1f%%", s.Spread()*100),
			fmt.Sprintf("$%.1f", s.PositionValue),
			fmt.Sprintf("%.0f%%", s.PositionRatio()*100),
			fmt.Sprintf("%d/%d", s.BuyOrders, s.SellOrders),
			fmt.Sprintf("$%.0f", s.Volume24h),
			fmt.Sprintf("%.2f", s.TurnoverRatio),
			fmt.Sprintf("%.2f%%", s.YieldRate*100),
		)
	}

	table.Render()

	fmt.Fprintln(c.out, "  Buy@/Sell@ = precios objetivo | Turn = rotación diaria estimada")
	fmt.Fprintln(c.out, "  Yield/d = spread × turnover, bruto diario estimado")
}

// NotifyFill imprime el fill con el resumen de cartera.
func (c *Console) NotifyFill(_ context.Context, fill domain.FillEvent, portfolio string) error {
	verb := "SELL"
	if fill.IsBuy() {
		verb = "BUY"
	}

	fmt.Fprintf(c.out, "\n>>> FILL [%s] %s %s %.2f shares (pos %.2f, $%.2f)\n",
		fill.At.Format("15:04:05"), verb, fill.MarketName, fill.Delta, fill.NewSize, fill.NewValue)
	if portfolio != "" {
		fmt.Fprintln(c.out, portfolio)
	}
	return nil
}

// NotifyAlert imprime un evento operacional.
func (c *Console) NotifyAlert(_ context.Context, title, body string) error {
	fmt.Fprintf(c.out, "\n!!! [%s] %s\n", time.Now().Format("15:04:05"), title)
	if body != "" {
		fmt.Fprintln(c.out, body)
	}
	return nil
}

// --- helpers ---

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func compactName(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := s[:maxLen]
	if idx := strings.LastIndex(cut, " "); idx > maxLen/2 {
		cut = cut[:idx]
	}
	return cut + "…"
}
