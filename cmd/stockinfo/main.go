// Command stockinfo is the terminal rendering sink: one fetch per run,
// printed as a quote block plus the recent closes of the requested window.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"stockview/internal/app"
	"stockview/internal/config"
	"stockview/internal/stock"
)

func main() {
	var (
		symbol     string
		period     string
		interval   string
		providerID string
		configPath string
		timeoutSec int
	)
	flag.StringVar(&symbol, "symbol", getenv("SYMBOL", "IBM"), "ticker symbol")
	flag.StringVar(&period, "period", "3mo", "historical window: 1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, max")
	flag.StringVar(&interval, "interval", "daily", "bar interval: daily, weekly, monthly")
	flag.StringVar(&providerID, "provider", "", "override configured provider (yahoo or alphavantage)")
	flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config file (optional)")
	flag.IntVar(&timeoutSec, "timeout", 0, "request timeout seconds (0 = configured default)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("config: %v", err)
	}
	if providerID != "" {
		cfg.Provider = strings.ToLower(providerID)
	}
	if timeoutSec > 0 {
		cfg.Server.RequestTimeoutSec = timeoutSec
	}

	f, err := app.BuildFetcher(cfg)
	if err != nil {
		fatal("%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.RequestTimeoutSec+5)*time.Second)
	defer cancel()

	res := f.Fetch(ctx, symbol, period, interval)
	if res.Status == stock.StatusErr {
		fatal("%s", userMessage(res.Err))
	}
	render(res)
}

func render(res stock.FetchResult) {
	q := res.Quote
	change := q.ChangeAbsolute()
	sign := ""
	if change.Sign() >= 0 {
		sign = "+"
	}

	fmt.Printf("%s (%s)\n", q.CompanyName, q.Symbol)
	fmt.Printf("  Price:          $%s  %s%s (%s%s%%)\n",
		q.CurrentPrice.StringFixed(2), sign, change.StringFixed(2), sign, q.ChangePercent().StringFixed(2))
	fmt.Printf("  Previous close: $%s\n", q.PreviousClose.StringFixed(2))
	if !q.Open.IsZero() {
		fmt.Printf("  Open:           $%s\n", q.Open.StringFixed(2))
	}
	if !q.DayHigh.IsZero() || !q.DayLow.IsZero() {
		fmt.Printf("  Day range:      $%s - $%s\n", q.DayLow.StringFixed(2), q.DayHigh.StringFixed(2))
	}
	fmt.Printf("  Volume:         %d\n", q.Volume)
	fmt.Printf("  As of:          %s\n", q.AsOf.Format("2006-01-02"))

	if p := q.Profile; p != nil {
		if p.Sector != "" {
			fmt.Printf("  Sector:         %s\n", p.Sector)
		}
		if p.Industry != "" {
			fmt.Printf("  Industry:       %s\n", p.Industry)
		}
		if p.MarketCap > 0 {
			fmt.Printf("  Market cap:     %s\n", humanCap(p.MarketCap))
		}
		if p.PERatio != "" {
			fmt.Printf("  P/E ratio:      %s\n", p.PERatio)
		}
		if p.WeekHigh52 != "" && p.WeekLow52 != "" {
			fmt.Printf("  52-week range:  $%s - $%s\n", p.WeekLow52, p.WeekHigh52)
		}
	}

	s := res.Series
	fmt.Printf("\n%s closes, %s bars (%d points):\n", s.Period, s.Interval, len(s.Points))
	if s.IsSynthetic {
		fmt.Println("  *** SIMULATED DATA: real history was unavailable ***")
	}
	if res.Warning != "" {
		fmt.Printf("  warning: %s\n", res.Warning)
	}
	points := s.Points
	if len(points) > 10 {
		points = points[len(points)-10:]
	}
	for _, p := range points {
		fmt.Printf("  %s  open %8.2f  high %8.2f  low %8.2f  close %8.2f  vol %d\n",
			p.Timestamp.Format("2006-01-02"), p.Open, p.High, p.Low, p.Close, p.Volume)
	}
}

// userMessage turns the classified error into the actionable line the
// terminal user sees.
func userMessage(err *stock.Error) string {
	switch err.Kind {
	case stock.KindInvalidPeriod:
		return err.Message
	case stock.KindNotFound:
		return fmt.Sprintf("%s; check the spelling and try a symbol like AAPL, MSFT or IBM", err.Message)
	case stock.KindRateLimited:
		return "rate limit reached: the free tier allows 5 calls per minute; wait a minute and try again"
	case stock.KindAuth:
		return "missing or invalid API key: set ALPHAVANTAGE_API_KEY or switch to -provider yahoo"
	case stock.KindNetwork:
		return fmt.Sprintf("network problem: %s; check your connection and try again", err.Message)
	default:
		return err.Error()
	}
}

func humanCap(v int64) string {
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("$%.2fB", float64(v)/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("$%.2fM", float64(v)/1_000_000)
	default:
		return fmt.Sprintf("$%d", v)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
