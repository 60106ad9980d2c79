package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Visit は墓参記録。作成後の更新・削除は行わない。
type Visit struct {
	// ID は墓参記録の一意識別子。
	ID string
	// CommunityID は記録が属するコミュニティのID。
	CommunityID string
	// VisitDate は墓参した日付。
	VisitDate string
	// VisitorName は墓参した人の名前。
	VisitorName string
	// Kind は記録の種別（"visit" または "diary"）。
	Kind string
	// Message は任意のメッセージ。
	Message sql.NullString
	// CreatedAt は作成日時。
	CreatedAt time.Time
}

// CreateVisitParams は墓参記録作成の入力。
type CreateVisitParams struct {
	ID          string
	CommunityID string
	VisitDate   string
	VisitorName string
	Kind        string
	Message     *string
	// Media は保存済みメディアの関連付け（添付順）。
	Media []MediaItem
}

// CreateVisit は墓参記録とメディアの関連付けを1つのトランザクションで保存する。
// 作成日時はサーバー側で採番する。
func (s *Store) CreateVisit(ctx context.Context, p CreateVisitParams) (Visit, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Visit{}, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO visits (id, community_id, visit_date, visitor_name, kind, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.CommunityID, p.VisitDate, p.VisitorName, p.Kind, nullString(p.Message), formatTime(now))
	if err != nil {
		return Visit{}, fmt.Errorf("墓参記録の保存に失敗: %w", err)
	}

	if err := attachMedia(ctx, tx, p.ID, p.Media); err != nil {
		return Visit{}, err
	}

	if err := tx.Commit(); err != nil {
		return Visit{}, fmt.Errorf("トランザクションのコミットに失敗: %w", err)
	}

	return Visit{
		ID:          p.ID,
		CommunityID: p.CommunityID,
		VisitDate:   p.VisitDate,
		VisitorName: p.VisitorName,
		Kind:        p.Kind,
		Message:     nullString(p.Message),
		CreatedAt:   now,
	}, nil
}

// ListVisits は指定コミュニティの墓参記録を一覧取得する。
// 墓参日の新しい順、同日の場合は作成の新しい順に並べる。
func (s *Store) ListVisits(ctx context.Context, communityID string) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, community_id, visit_date, visitor_name, kind, message, created_at
		FROM visits
		WHERE community_id = ?
		ORDER BY visit_date DESC, created_at DESC
	`, communityID)
	if err != nil {
		return nil, fmt.Errorf("墓参記録の一覧取得に失敗: %w", err)
	}
	defer func() { _ = rows.Close() }()

	visits := make([]Visit, 0)
	for rows.Next() {
		var v Visit
		var createdAt string
		if err := rows.Scan(&v.ID, &v.CommunityID, &v.VisitDate, &v.VisitorName, &v.Kind, &v.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("墓参記録の読み取りに失敗: %w", err)
		}
		if v.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}
