// Package store persists the pool's notification records to sqlite so
// external observers (indexers, UIs) can read them back.
package store

import (
	"database/sql"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/shahanth4444/dex-amm/pkg/amm"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	seq          INTEGER PRIMARY KEY AUTOINCREMENT,
	at           INTEGER NOT NULL,
	kind         TEXT    NOT NULL,
	participant  TEXT    NOT NULL,
	token_in     TEXT    NOT NULL DEFAULT '',
	token_out    TEXT    NOT NULL DEFAULT '',
	amount_a     TEXT    NOT NULL DEFAULT '',
	amount_b     TEXT    NOT NULL DEFAULT '',
	amount_in    TEXT    NOT NULL DEFAULT '',
	amount_out   TEXT    NOT NULL DEFAULT '',
	shares       TEXT    NOT NULL DEFAULT '',
	total_shares TEXT    NOT NULL DEFAULT ''
);`

// Journal is an append-only sqlite log of pool events. It implements
// amm.EventSink; insert failures are logged, never propagated into the
// pool operation that emitted the record.
type Journal struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open opens (or creates) the journal at path. Use ":memory:" for an
// ephemeral journal.
func Open(path string, logger *slog.Logger) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A second pooled connection to a ":memory:" database would see an
	// empty schema; the journal is append-mostly, one connection is enough.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db, logger: logger, now: time.Now}, nil
}

func (j *Journal) Close() error { return j.db.Close() }

// Entry is one journal row. Amount columns are base-10 strings; those not
// applicable to the event kind are empty.
type Entry struct {
	Seq         int64     `json:"seq"`
	At          time.Time `json:"at"`
	Kind        string    `json:"kind"`
	Participant string    `json:"participant"`
	TokenIn     string    `json:"token_in,omitempty"`
	TokenOut    string    `json:"token_out,omitempty"`
	AmountA     string    `json:"amount_a,omitempty"`
	AmountB     string    `json:"amount_b,omitempty"`
	AmountIn    string    `json:"amount_in,omitempty"`
	AmountOut   string    `json:"amount_out,omitempty"`
	Shares      string    `json:"shares,omitempty"`
	TotalShares string    `json:"total_shares,omitempty"`
}

// Record appends one event row.
func (j *Journal) Record(ev amm.Event) {
	var e Entry
	e.Kind = ev.Kind()
	switch v := ev.(type) {
	case amm.LiquidityAdded:
		e.Participant = v.Provider.Hex()
		e.AmountA = v.AmountA.Dec()
		e.AmountB = v.AmountB.Dec()
		e.Shares = v.SharesMinted.Dec()
		e.TotalShares = v.TotalShares.Dec()
	case amm.LiquidityRemoved:
		e.Participant = v.Provider.Hex()
		e.AmountA = v.AmountA.Dec()
		e.AmountB = v.AmountB.Dec()
		e.Shares = v.SharesBurned.Dec()
		e.TotalShares = v.TotalShares.Dec()
	case amm.SwapExecuted:
		e.Participant = v.Trader.Hex()
		e.TokenIn = v.TokenIn.Hex()
		e.TokenOut = v.TokenOut.Hex()
		e.AmountIn = v.AmountIn.Dec()
		e.AmountOut = v.AmountOut.Dec()
	default:
		j.logger.Warn("unknown event kind, not journaled", "kind", e.Kind)
		return
	}

	_, err := j.db.Exec(
		`INSERT INTO events (at, kind, participant, token_in, token_out,
			amount_a, amount_b, amount_in, amount_out, shares, total_shares)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.now().UnixMilli(), e.Kind, e.Participant, e.TokenIn, e.TokenOut,
		e.AmountA, e.AmountB, e.AmountIn, e.AmountOut, e.Shares, e.TotalShares,
	)
	if err != nil {
		j.logger.Error("failed to journal event", "kind", e.Kind, "err", err)
	}
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.Query(
		`SELECT seq, at, kind, participant, token_in, token_out,
			amount_a, amount_b, amount_in, amount_out, shares, total_shares
		 FROM events ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var at int64
		if err := rows.Scan(&e.Seq, &at, &e.Kind, &e.Participant, &e.TokenIn, &e.TokenOut,
			&e.AmountA, &e.AmountB, &e.AmountIn, &e.AmountOut, &e.Shares, &e.TotalShares); err != nil {
			return nil, err
		}
		e.At = time.UnixMilli(at)
		out = append(out, e)
	}
	return out, rows.Err()
}
