// Package pgstore serves market data stored in a PostgreSQL database.
package pgstore

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

//go:embed schema.sql
var schema string

// ErrAssetNotFound reports a ticker missing from the assets table.
var ErrAssetNotFound = fmt.Errorf("not found in database: %w", tracker.ErrDataUnavailable)

type assetsRepository interface {
	GetAssetByTicker(ctx context.Context, ticker string) (asset, error)
	UpsertAsset(ctx context.Context, a asset) (int32, error)
}

type candlesRepository interface {
	GetCandles(ctx context.Context, arg getCandlesParams) ([]candle, error)
	UpsertCandle(ctx context.Context, assetID int32, c candle) error
}

type dividendsRepository interface {
	GetDividends(ctx context.Context, assetID int32) ([]dividend, error)
	UpsertDividend(ctx context.Context, assetID int32, d dividend) error
}

// Store is a tracker.Provider reading the assets, candles and dividends tables.
type Store struct {
	assets    assetsRepository
	candles   candlesRepository
	dividends dividendsRepository
	conn      *pgxpool.Pool
}

// Open connects to the database at dbURL and verifies connectivity.
func Open(ctx context.Context, dbURL string) (*Store, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// Register shopspring decimal
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	conn, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	// Ensure the connection is established.
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	q := &queries{db: conn}
	return &Store{assets: q, candles: q, dividends: q, conn: conn}, nil
}

// Close releases the connections to the database.
func (s *Store) Close() {
	if s.conn != nil {
		s.conn.Close()
	}
}

// Migrate creates the tables if they do not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.conn.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Store) asset(ctx context.Context, ticker string) (asset, error) {
	a, err := s.assets.GetAssetByTicker(ctx, ticker)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return asset{}, fmt.Errorf("ticker %s %w", ticker, ErrAssetNotFound)
		}
		return asset{}, err
	}
	return a, nil
}

// Prices returns the candles of ticker within window.
func (s *Store) Prices(ctx context.Context, ticker string, window date.Range) ([]tracker.Bar, error) {
	a, err := s.asset(ctx, ticker)
	if err != nil {
		return nil, err
	}
	candles, err := s.candles.GetCandles(ctx, getCandlesParams{
		AssetID: a.ID,
		From:    window.From.Time(),
		To:      window.To.Time(),
	})
	if err != nil {
		return nil, fmt.Errorf("candles of %s: %w", ticker, err)
	}
	bars := make([]tracker.Bar, 0, len(candles))
	for _, c := range candles {
		bars = append(bars, tracker.Bar{Date: date.Of(c.Day), Close: c.Close, AdjustedClose: c.AdjustedClose})
	}
	return bars, nil
}

// Dividends returns the whole dividend history of ticker.
func (s *Store) Dividends(ctx context.Context, ticker string) ([]tracker.Dividend, error) {
	a, err := s.asset(ctx, ticker)
	if err != nil {
		return nil, err
	}
	rows, err := s.dividends.GetDividends(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("dividends of %s: %w", ticker, err)
	}
	divs := make([]tracker.Dividend, 0, len(rows))
	for _, d := range rows {
		divs = append(divs, tracker.Dividend{Date: date.Of(d.ExDate), Amount: d.Amount})
	}
	return divs, nil
}

// Profile returns the classification attributes stored with ticker.
func (s *Store) Profile(ctx context.Context, ticker string) (tracker.Profile, error) {
	a, err := s.asset(ctx, ticker)
	if err != nil {
		return tracker.Profile{}, err
	}
	return tracker.Profile{Name: a.Name, Country: a.Country, Industry: a.Industry}, nil
}

// Import saves every security of m, replacing existing candles and dividends on the same days.
func (s *Store) Import(ctx context.Context, m *tracker.Market) error {
	logger := zerolog.Ctx(ctx)
	for _, ticker := range m.Tickers() {
		sec := m.Get(ticker)
		prof := sec.Profile()
		id, err := s.assets.UpsertAsset(ctx, asset{Ticker: ticker, Name: prof.Name, Country: prof.Country, Industry: prof.Industry})
		if err != nil {
			return fmt.Errorf("import %s: %w", ticker, err)
		}
		for on, bar := range sec.Prices().Values() {
			if err := s.candles.UpsertCandle(ctx, id, candle{Day: on.Time(), Close: bar.Close, AdjustedClose: bar.AdjustedClose}); err != nil {
				return fmt.Errorf("import %s candle on %s: %w", ticker, on, err)
			}
		}
		for on, amount := range sec.Dividends().Values() {
			if err := s.dividends.UpsertDividend(ctx, id, dividend{ExDate: on.Time(), Amount: amount}); err != nil {
				return fmt.Errorf("import %s dividend on %s: %w", ticker, on, err)
			}
		}
		logger.Debug().Str("ticker", ticker).Int("candles", sec.Prices().Len()).Int("dividends", sec.Dividends().Len()).Msg("imported")
	}
	return nil
}

var _ tracker.Provider = (*Store)(nil)

