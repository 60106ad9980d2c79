package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// MediaItem はエンティティに添付されたメディア1件の参照。
type MediaItem struct {
	// MediaType はメディア種別（"image" または "video"）。
	MediaType string
	// FileName は保存ファイル名。取得用URLのキーになる。
	FileName string
}

// attachMedia は所有エンティティの作成トランザクション内で
// メディアの関連付けを添付順に記録する。
func attachMedia(ctx context.Context, tx *sql.Tx, ownerID string, items []MediaItem) error {
	for i, m := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO media_items (owner_id, position, media_type, file_name)
			VALUES (?, ?, ?, ?)
		`, ownerID, i, m.MediaType, m.FileName)
		if err != nil {
			return fmt.Errorf("メディア関連付けの記録に失敗: %w", err)
		}
	}
	return nil
}

// ListMediaByOwners は複数の所有者のメディア関連付けを一括で取得する。
// 一覧表示で1件ずつ問い合わせるN+1を避けるため、IN句でまとめて引く。
// 各所有者のリストは添付順（position昇順）で返す。
func (s *Store) ListMediaByOwners(ctx context.Context, ownerIDs []string) (map[string][]MediaItem, error) {
	result := make(map[string][]MediaItem, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ownerIDs)), ",")
	args := make([]any, 0, len(ownerIDs))
	for _, id := range ownerIDs {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT owner_id, media_type, file_name
		FROM media_items
		WHERE owner_id IN (%s)
		ORDER BY owner_id, position
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("メディア関連付けの取得に失敗: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var ownerID string
		var m MediaItem
		if err := rows.Scan(&ownerID, &m.MediaType, &m.FileName); err != nil {
			return nil, fmt.Errorf("メディア関連付けの読み取りに失敗: %w", err)
		}
		result[ownerID] = append(result[ownerID], m)
	}
	return result, rows.Err()
}
