package pgstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// mockRepository is an in-memory implementation of every repository.
type mockRepository struct {
	sqlError  error
	assets    map[string]asset
	candles   map[int32][]candle
	dividends map[int32][]dividend
	lastQuery getCandlesParams
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		assets:    make(map[string]asset),
		candles:   make(map[int32][]candle),
		dividends: make(map[int32][]dividend),
	}
}

func (m *mockRepository) GetAssetByTicker(_ context.Context, ticker string) (asset, error) {
	if m.sqlError != nil {
		return asset{}, m.sqlError
	}
	a, ok := m.assets[ticker]
	if !ok {
		return asset{}, pgx.ErrNoRows
	}
	return a, nil
}

func (m *mockRepository) UpsertAsset(_ context.Context, a asset) (int32, error) {
	if existing, ok := m.assets[a.Ticker]; ok {
		a.ID = existing.ID
	} else {
		a.ID = int32(len(m.assets) + 1)
	}
	m.assets[a.Ticker] = a
	return a.ID, nil
}

func (m *mockRepository) GetCandles(_ context.Context, arg getCandlesParams) ([]candle, error) {
	m.lastQuery = arg
	var res []candle
	for _, c := range m.candles[arg.AssetID] {
		if !c.Day.Before(arg.From) && !c.Day.After(arg.To) {
			res = append(res, c)
		}
	}
	return res, nil
}

func (m *mockRepository) UpsertCandle(_ context.Context, assetID int32, c candle) error {
	m.candles[assetID] = append(m.candles[assetID], c)
	return nil
}

func (m *mockRepository) GetDividends(_ context.Context, assetID int32) ([]dividend, error) {
	return m.dividends[assetID], nil
}

func (m *mockRepository) UpsertDividend(_ context.Context, assetID int32, d dividend) error {
	m.dividends[assetID] = append(m.dividends[assetID], d)
	return nil
}

func newMockStore() (*Store, *mockRepository) {
	m := newMockRepository()
	return &Store{assets: m, candles: m, dividends: m}, m
}

func TestStore_NotFound(t *testing.T) {
	tests := []struct {
		name    string
		sqlErr  error
		wantErr error
	}{
		{"should throw ErrAssetNotFound", nil, ErrAssetNotFound},
		{"should be data unavailable", nil, tracker.ErrDataUnavailable},
		{"should forward sql errors", errors.New("connection reset"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newMockStore()
			m.sqlError = tt.sqlErr
			_, err := s.Prices(context.Background(), "NOPE", date.Range{From: date.New(2024, 1, 1), To: date.New(2024, 1, 31)})
			if err == nil {
				t.Fatal("Prices() succeeded, want an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Prices() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.sqlErr != nil && !errors.Is(err, tt.sqlErr) {
				t.Errorf("Prices() error = %v, wantErr %v", err, tt.sqlErr)
			}
		})
	}
}

func TestStore_Import(t *testing.T) {
	market := tracker.NewMarket()
	sec := tracker.NewSecurity("AAPL", tracker.Profile{Name: "Apple Inc", Country: "USA", Industry: "Consumer Electronics"})
	for i, p := range []int64{100, 101, 102, 103} {
		sec.AddClose(date.New(2024, time.January, 1+i), decimal.NewFromInt(p))
	}
	sec.AddDividend(date.New(2024, time.January, 2), decimal.RequireFromString("0.24"))
	market.Add(sec)

	s, m := newMockStore()
	ctx := context.Background()
	if err := s.Import(ctx, market); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	window := date.Range{From: date.New(2024, time.January, 2), To: date.New(2024, time.January, 3)}
	bars, err := s.Prices(ctx, "AAPL", window)
	if err != nil {
		t.Fatalf("Prices() error = %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("Prices() returned %d bars, want 2", len(bars))
	}
	if got := bars[0].Date; got != window.From {
		t.Errorf("Prices()[0].Date = %v, want %v", got, window.From)
	}
	if !m.lastQuery.From.Equal(window.From.Time()) || !m.lastQuery.To.Equal(window.To.Time()) {
		t.Errorf("candles queried between %v and %v, want %v", m.lastQuery.From, m.lastQuery.To, window)
	}

	divs, err := s.Dividends(ctx, "AAPL")
	if err != nil {
		t.Fatalf("Dividends() error = %v", err)
	}
	if len(divs) != 1 || !divs[0].Amount.Equal(decimal.RequireFromString("0.24")) {
		t.Errorf("Dividends() = %v, want one 0.24 dividend", divs)
	}

	prof, err := s.Profile(ctx, "AAPL")
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if prof.Country != "USA" || prof.Industry != "Consumer Electronics" {
		t.Errorf("Profile() = %+v", prof)
	}
}
