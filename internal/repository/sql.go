package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"auction-marketplace/internal/auctionerrors"
	model "auction-marketplace/internal/models"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported SQL store drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS auctions (
		id TEXT PRIMARY KEY,
		shop_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		is_featured INTEGER NOT NULL DEFAULT 0,
		featured_priority INTEGER NOT NULL DEFAULT 0,
		end_time BIGINT,
		body TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS auctions_live_idx ON auctions (status, end_time)`,
	`CREATE INDEX IF NOT EXISTS auctions_featured_idx ON auctions (is_featured, featured_priority)`,
	`CREATE TABLE IF NOT EXISTS shops (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS watchlist (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		auction_id TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS watchlist_user_idx ON watchlist (user_id, type, created_at)`,
}

// SQLRepo stores auction documents in sqlite or postgres. Each row keeps the
// full JSON document next to the columns the list queries filter on.
type SQLRepo struct {
	db     *sql.DB
	driver string
}

// OpenSQLRepo connects to the store behind dsn using one of the supported drivers
func OpenSQLRepo(ctx context.Context, driver, dsn string) (*SQLRepo, error) {
	var sqlDriver string
	switch driver {
	case DriverSQLite:
		sqlDriver = "sqlite"
	case DriverPostgres:
		sqlDriver = "pgx"
	default:
		return nil, fmt.Errorf("open store: unsupported driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if driver == DriverSQLite {
		// every sqlite connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open store: ping: %w", err)
	}

	return &SQLRepo{db: db, driver: driver}, nil
}

// Migrate creates the tables and indexes if they do not exist
func (r *SQLRepo) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Close releases the underlying connection pool
func (r *SQLRepo) Close() error {
	return r.db.Close()
}

// GetAuction returns the auction stored under auctionID
func (r *SQLRepo) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	var body string
	err := r.db.QueryRowContext(ctx, r.rebind(`SELECT body FROM auctions WHERE id = ?`), auctionID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, err)
	}

	auction, err := decodeAuction(body)
	if err != nil {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// UpdateAuction merges fields into the stored auction document
func (r *SQLRepo) UpdateAuction(ctx context.Context, auctionID string, fields map[string]any) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update auction %s: begin: %w", auctionID, err)
	}
	defer func() { _ = tx.Rollback() }()

	var body string
	err = tx.QueryRowContext(ctx, r.rebind(`SELECT body FROM auctions WHERE id = ?`), auctionID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return fmt.Errorf("update auction %s: %w", auctionID, err)
	}

	var current map[string]any
	if err := json.Unmarshal([]byte(body), &current); err != nil {
		return fmt.Errorf("update auction %s: %w: %v", auctionID, auctionerrors.ErrInvalidDocument, err)
	}
	updated, err := mergeDocument(auctionID, current, fields)
	if err != nil {
		return fmt.Errorf("update auction %s: %w", auctionID, err)
	}

	row, err := auctionRow(updated)
	if err != nil {
		return fmt.Errorf("update auction %s: %w", auctionID, err)
	}
	_, err = tx.ExecContext(ctx, r.rebind(`UPDATE auctions
		SET shop_id = ?, status = ?, is_featured = ?, featured_priority = ?, end_time = ?, body = ?
		WHERE id = ?`),
		row.shopID, row.status, row.isFeatured, row.featuredPriority, row.endTime, row.body, auctionID)
	if err != nil {
		return fmt.Errorf("update auction %s: %w", auctionID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update auction %s: commit: %w", auctionID, err)
	}
	return nil
}

// DeleteAuction removes an auction
func (r *SQLRepo) DeleteAuction(ctx context.Context, auctionID string) error {
	res, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM auctions WHERE id = ?`), auctionID)
	if err != nil {
		return fmt.Errorf("delete auction %s: %w", auctionID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete auction %s: %w", auctionID, err)
	}
	if n == 0 {
		return fmt.Errorf("delete auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return nil
}

// ListLiveAuctions returns active auctions that have not reached their end time, soonest first
func (r *SQLRepo) ListLiveAuctions(ctx context.Context, now time.Time, limit int) ([]model.Auction, error) {
	return r.queryAuctions(ctx, "list live auctions",
		`SELECT body FROM auctions WHERE status = ? AND end_time >= ? ORDER BY end_time ASC, id ASC LIMIT ?`,
		string(model.StatusActive), now.UnixNano(), limit)
}

// ListFeaturedAuctions returns featured auctions by descending priority
func (r *SQLRepo) ListFeaturedAuctions(ctx context.Context, limit int) ([]model.Auction, error) {
	return r.queryAuctions(ctx, "list featured auctions",
		`SELECT body FROM auctions WHERE is_featured = 1 ORDER BY featured_priority DESC, id ASC LIMIT ?`,
		limit)
}

func (r *SQLRepo) queryAuctions(ctx context.Context, op, query string, args ...any) ([]model.Auction, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	auctions := make([]model.Auction, 0)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		auction, err := decodeAuction(body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		auctions = append(auctions, auction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return auctions, nil
}

// UserOwnsShop reports whether userID owns shopID. Unknown shops are not owned.
func (r *SQLRepo) UserOwnsShop(ctx context.Context, shopID, userID string) (bool, error) {
	var ownerID string
	err := r.db.QueryRowContext(ctx, r.rebind(`SELECT owner_id FROM shops WHERE id = ?`), shopID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check shop %s ownership: %w", shopID, err)
	}
	return ownerID != "" && ownerID == userID, nil
}

// GetWatchlist returns the user's auction watch records, newest first
func (r *SQLRepo) GetWatchlist(ctx context.Context, userID string, limit int) ([]model.WatchRecord, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(`SELECT id, user_id, type, auction_id, created_at
		FROM watchlist WHERE user_id = ? AND type = ? ORDER BY created_at DESC LIMIT ?`),
		userID, model.WatchTypeAuction, limit)
	if err != nil {
		return nil, fmt.Errorf("get watchlist for user %s: %w", userID, err)
	}
	defer rows.Close()

	records := make([]model.WatchRecord, 0)
	for rows.Next() {
		var (
			w         model.WatchRecord
			createdAt int64
		)
		if err := rows.Scan(&w.ID, &w.UserID, &w.Type, &w.AuctionID, &createdAt); err != nil {
			return nil, fmt.Errorf("get watchlist for user %s: %w", userID, err)
		}
		w.CreatedAt = time.Unix(0, createdAt).UTC()
		records = append(records, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get watchlist for user %s: %w", userID, err)
	}
	return records, nil
}

// AddAuction stores or replaces an auction
func (r *SQLRepo) AddAuction(ctx context.Context, auction model.Auction) error {
	if err := auction.Validate(); err != nil {
		return fmt.Errorf("add auction: %w", err)
	}
	row, err := auctionRow(auction)
	if err != nil {
		return fmt.Errorf("add auction %s: %w", auction.ID, err)
	}
	_, err = r.db.ExecContext(ctx, r.rebind(`INSERT INTO auctions
		(id, shop_id, status, is_featured, featured_priority, end_time, body)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			shop_id = excluded.shop_id,
			status = excluded.status,
			is_featured = excluded.is_featured,
			featured_priority = excluded.featured_priority,
			end_time = excluded.end_time,
			body = excluded.body`),
		auction.ID, row.shopID, row.status, row.isFeatured, row.featuredPriority, row.endTime, row.body)
	if err != nil {
		return fmt.Errorf("add auction %s: %w", auction.ID, err)
	}
	return nil
}

// AddShop stores or replaces a shop
func (r *SQLRepo) AddShop(ctx context.Context, shop model.Shop) error {
	_, err := r.db.ExecContext(ctx, r.rebind(`INSERT INTO shops (id, owner_id, name) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET owner_id = excluded.owner_id, name = excluded.name`),
		shop.ID, shop.OwnerID, shop.Name)
	if err != nil {
		return fmt.Errorf("add shop %s: %w", shop.ID, err)
	}
	return nil
}

// AddWatch stores or replaces a watch record
func (r *SQLRepo) AddWatch(ctx context.Context, watch model.WatchRecord) error {
	_, err := r.db.ExecContext(ctx, r.rebind(`INSERT INTO watchlist (id, user_id, type, auction_id, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			user_id = excluded.user_id,
			type = excluded.type,
			auction_id = excluded.auction_id,
			created_at = excluded.created_at`),
		watch.ID, watch.UserID, watch.Type, watch.AuctionID, watch.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("add watch %s: %w", watch.ID, err)
	}
	return nil
}

type auctionColumns struct {
	shopID           string
	status           string
	isFeatured       int
	featuredPriority int
	endTime          sql.NullInt64
	body             string
}

func auctionRow(a model.Auction) (auctionColumns, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return auctionColumns{}, err
	}
	row := auctionColumns{
		shopID:           a.ShopID,
		status:           string(a.Status),
		featuredPriority: a.FeaturedPriority,
		body:             string(body),
	}
	if a.IsFeatured {
		row.isFeatured = 1
	}
	if a.EndTime != nil {
		row.endTime = sql.NullInt64{Int64: a.EndTime.UnixNano(), Valid: true}
	}
	return row, nil
}

func decodeAuction(body string) (model.Auction, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return model.Auction{}, fmt.Errorf("%w: %v", auctionerrors.ErrInvalidDocument, err)
	}
	return model.ParseAuction(doc)
}

// rebind rewrites ? placeholders as $n for postgres. Queries here carry no
// string literals containing '?'.
func (r *SQLRepo) rebind(query string) string {
	if r.driver != DriverPostgres {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			n++
			continue
		}
		sb.WriteByte(query[i])
	}
	return sb.String()
}
