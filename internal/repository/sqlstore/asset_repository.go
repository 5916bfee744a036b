package sqlstore

import (
	"context"
	"fmt"
	"time"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
)

const createAssetsTable = `
CREATE TABLE IF NOT EXISTS assets (
	id {{pk}},
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	object_key TEXT NOT NULL UNIQUE,
	content_type TEXT NOT NULL DEFAULT '',
	size BIGINT NOT NULL DEFAULT 0,
	sha256 TEXT NOT NULL DEFAULT '',
	created_at {{time}} NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assets_user_id ON assets(user_id);
`

type AssetRepository struct {
	db *DB
}

func NewAssetRepository(db *DB) repository.AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Init(ctx context.Context) error {
	if err := r.db.createSchema(ctx, createAssetsTable); err != nil {
		return fmt.Errorf("create assets table: %w", err)
	}
	return nil
}

func (r *AssetRepository) Create(ctx context.Context, asset *domain.Asset) (int64, error) {
	asset.CreatedAt = time.Now().UTC()
	id, err := r.db.insert(ctx, `
INSERT INTO assets (user_id, name, object_key, content_type, size, sha256, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		asset.UserID,
		asset.Name,
		asset.Key,
		asset.ContentType,
		asset.Size,
		asset.SHA256,
		asset.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("asset key %q: %w", asset.Key, repository.ErrConflict)
		}
		return 0, fmt.Errorf("insert asset: %w", err)
	}
	asset.ID = id
	return id, nil
}

func (r *AssetRepository) Delete(ctx context.Context, userID, id int64) error {
	if err := r.db.execAffectingOne(ctx, `DELETE FROM assets WHERE id=? AND user_id=?`, id, userID); err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

func (r *AssetRepository) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.exec(ctx, `DELETE FROM assets WHERE user_id=?`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete assets: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("asset delete rows affected: %w", err)
	}
	return n, nil
}

func (r *AssetRepository) Get(ctx context.Context, userID, id int64) (*domain.Asset, error) {
	row := r.db.queryRow(ctx, `
SELECT id, user_id, name, object_key, content_type, size, sha256, created_at
FROM assets
WHERE id=? AND user_id=?`, id, userID)
	return scanAsset(row)
}

func (r *AssetRepository) List(ctx context.Context, userID int64) ([]domain.Asset, error) {
	rows, err := r.db.query(ctx, `
SELECT id, user_id, name, object_key, content_type, size, sha256, created_at
FROM assets
WHERE user_id=?
ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query assets: %w", err)
	}
	defer rows.Close()

	assets := []domain.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *asset)
	}
	return assets, rows.Err()
}

func scanAsset(row scanner) (*domain.Asset, error) {
	var a domain.Asset
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Key, &a.ContentType, &a.Size, &a.SHA256, &a.CreatedAt); err != nil {
		return nil, notFoundOr(err, "asset")
	}
	return &a, nil
}
