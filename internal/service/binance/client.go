package binance

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"SigScan/internal/domain/models"
	drepo "SigScan/internal/domain/repository"
	xhttp "SigScan/pkg/http"
)

// Client fetches kline snapshots from the Binance futures REST API.
type Client struct {
	baseURL    string
	interval   string
	klineLimit int
	http       *xhttp.Client
	stream     drepo.PriceStream // optional, may be nil
}

// NewClient creates a Binance snapshot provider.
func NewClient(baseURL, interval string, klineLimit int, timeout time.Duration, stream drepo.PriceStream) drepo.SnapshotProvider {
	return &Client{
		baseURL:    baseURL,
		interval:   interval,
		klineLimit: klineLimit,
		http:       xhttp.NewClient(xhttp.WithTimeout(timeout)),
		stream:     stream,
	}
}

// Snapshot fetches the recent kline history for one symbol. The current
// price is the last close, replaced by a fresher streamed price when one is
// available.
func (c *Client) Snapshot(ctx context.Context, symbol string) (*models.Snapshot, error) {
	var raw [][]interface{}
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/fapi/v1/klines",
		QueryParams: map[string][]string{
			"symbol":   {symbol},
			"interval": {c.interval},
			"limit":    {strconv.Itoa(c.klineLimit)},
		},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("klines %s: %w", symbol, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("klines %s: empty response", symbol)
	}

	klines := make([]models.Kline, 0, len(raw))
	for _, k := range raw {
		bar, err := parseKline(k)
		if err != nil {
			return nil, fmt.Errorf("klines %s: %w", symbol, err)
		}
		klines = append(klines, bar)
	}

	current := klines[len(klines)-1].Close
	if c.stream != nil {
		if p, ok := c.stream.LastPrice(symbol); ok {
			current = p
		}
	}

	return &models.Snapshot{
		Symbol:       symbol,
		Klines:       klines,
		CurrentPrice: current,
		AsOf:         time.Now().UTC(),
	}, nil
}

// parseKline decodes one Binance kline row: open time and close time are
// numbers, OHLCV fields are strings.
func parseKline(k []interface{}) (models.Kline, error) {
	if len(k) < 7 {
		return models.Kline{}, fmt.Errorf("short kline row: %d fields", len(k))
	}

	openMs, ok := k[0].(float64)
	if !ok {
		return models.Kline{}, fmt.Errorf("bad open time %v", k[0])
	}
	closeMs, ok := k[6].(float64)
	if !ok {
		return models.Kline{}, fmt.Errorf("bad close time %v", k[6])
	}

	vals := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		s, ok := k[i].(string)
		if !ok {
			return models.Kline{}, fmt.Errorf("bad kline field %d: %v", i, k[i])
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.Kline{}, fmt.Errorf("parse kline field %d: %w", i, err)
		}
		vals[i-1] = f
	}

	return models.Kline{
		OpenTime:  time.UnixMilli(int64(openMs)).UTC(),
		Open:      vals[0],
		High:      vals[1],
		Low:       vals[2],
		Close:     vals[3],
		Volume:    vals[4],
		CloseTime: time.UnixMilli(int64(closeMs)).UTC(),
	}, nil
}
