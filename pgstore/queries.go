package pgstore

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type asset struct {
	ID       int32  `db:"id"`
	Ticker   string `db:"ticker"`
	Name     string `db:"name"`
	Country  string `db:"country"`
	Industry string `db:"industry"`
}

type candle struct {
	Day           time.Time           `db:"day"`
	Close         decimal.NullDecimal `db:"close"`
	AdjustedClose decimal.NullDecimal `db:"adjusted_close"`
}

type dividend struct {
	ExDate time.Time       `db:"ex_date"`
	Amount decimal.Decimal `db:"amount"`
}

type getCandlesParams struct {
	AssetID int32
	From    time.Time
	To      time.Time
}

// queries runs the SQL statements of the store.
type queries struct {
	db DBTX
}

const getAssetByTicker = `SELECT id, ticker, name, country, industry FROM assets WHERE ticker = $1`

func (q *queries) GetAssetByTicker(ctx context.Context, ticker string) (asset, error) {
	rows, err := q.db.Query(ctx, getAssetByTicker, ticker)
	if err != nil {
		return asset{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[asset])
}

const getCandles = `SELECT day, close, adjusted_close FROM candles
WHERE asset_id = $1 AND day BETWEEN $2 AND $3
ORDER BY day`

func (q *queries) GetCandles(ctx context.Context, arg getCandlesParams) ([]candle, error) {
	rows, err := q.db.Query(ctx, getCandles, arg.AssetID, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[candle])
}

const getDividends = `SELECT ex_date, amount FROM dividends WHERE asset_id = $1 ORDER BY ex_date`

func (q *queries) GetDividends(ctx context.Context, assetID int32) ([]dividend, error) {
	rows, err := q.db.Query(ctx, getDividends, assetID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[dividend])
}

const upsertAsset = `INSERT INTO assets (ticker, name, country, industry) VALUES ($1, $2, $3, $4)
ON CONFLICT (ticker) DO UPDATE SET name = EXCLUDED.name, country = EXCLUDED.country, industry = EXCLUDED.industry
RETURNING id`

func (q *queries) UpsertAsset(ctx context.Context, a asset) (int32, error) {
	var id int32
	err := q.db.QueryRow(ctx, upsertAsset, a.Ticker, a.Name, a.Country, a.Industry).Scan(&id)
	return id, err
}

const upsertCandle = `INSERT INTO candles (asset_id, day, close, adjusted_close) VALUES ($1, $2, $3, $4)
ON CONFLICT (asset_id, day) DO UPDATE SET close = EXCLUDED.close, adjusted_close = EXCLUDED.adjusted_close`

func (q *queries) UpsertCandle(ctx context.Context, assetID int32, c candle) error {
	_, err := q.db.Exec(ctx, upsertCandle, assetID, c.Day, c.Close, c.AdjustedClose)
	return err
}

const upsertDividend = `INSERT INTO dividends (asset_id, ex_date, amount) VALUES ($1, $2, $3)
ON CONFLICT (asset_id, ex_date) DO UPDATE SET amount = EXCLUDED.amount`

func (q *queries) UpsertDividend(ctx context.Context, assetID int32, d dividend) error {
	_, err := q.db.Exec(ctx, upsertDividend, assetID, d.ExDate, d.Amount)
	return err
}
