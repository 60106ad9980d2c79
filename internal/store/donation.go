package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Donation は寄付メモ。金銭の移動は伴わない。
type Donation struct {
	// ID は寄付メモの一意識別子。
	ID string
	// CommunityID は参照先の墓参記録から導出したコミュニティID。
	CommunityID string
	// VisitID は参照先の墓参記録のID。
	VisitID string
	// DonorName は寄付者の名前。
	DonorName sql.NullString
	// Amount は寄付額。負の値もそのまま保持する。
	Amount int64
	// Message は任意のメッセージ。
	Message sql.NullString
	// CreatedAt は作成日時。
	CreatedAt time.Time
}

// CreateDonationParams は寄付メモ作成の入力。
// CommunityIDは受け取らない。参照先の墓参記録から導出する。
type CreateDonationParams struct {
	ID        string
	VisitID   string
	DonorName *string
	Amount    int64
	Message   *string
}

// CreateDonation は寄付メモを保存する。
// 参照先の墓参記録の検索とcommunity_idの導出・書き込みを
// 同一トランザクション内で行う。墓参記録が存在しない場合は
// ErrNotFoundを返し、何も保存しない。
func (s *Store) CreateDonation(ctx context.Context, p CreateDonationParams) (Donation, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Donation{}, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var communityID string
	err = tx.QueryRowContext(ctx, `SELECT community_id FROM visits WHERE id = ?`, p.VisitID).Scan(&communityID)
	if errors.Is(err, sql.ErrNoRows) {
		return Donation{}, fmt.Errorf("墓参記録 %s: %w", p.VisitID, ErrNotFound)
	}
	if err != nil {
		return Donation{}, fmt.Errorf("墓参記録の検索に失敗: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO donations (id, community_id, visit_id, donor_name, amount, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, communityID, p.VisitID, nullString(p.DonorName), p.Amount, nullString(p.Message), formatTime(now))
	if err != nil {
		return Donation{}, fmt.Errorf("寄付メモの保存に失敗: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Donation{}, fmt.Errorf("トランザクションのコミットに失敗: %w", err)
	}

	return Donation{
		ID:          p.ID,
		CommunityID: communityID,
		VisitID:     p.VisitID,
		DonorName:   nullString(p.DonorName),
		Amount:      p.Amount,
		Message:     nullString(p.Message),
		CreatedAt:   now,
	}, nil
}

// ListDonations は指定コミュニティの寄付メモを作成の新しい順に一覧取得する。
func (s *Store) ListDonations(ctx context.Context, communityID string) ([]Donation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, community_id, visit_id, donor_name, amount, message, created_at
		FROM donations
		WHERE community_id = ?
		ORDER BY created_at DESC
	`, communityID)
	if err != nil {
		return nil, fmt.Errorf("寄付メモの一覧取得に失敗: %w", err)
	}
	defer func() { _ = rows.Close() }()

	donations := make([]Donation, 0)
	for rows.Next() {
		var d Donation
		var createdAt string
		if err := rows.Scan(&d.ID, &d.CommunityID, &d.VisitID, &d.DonorName, &d.Amount, &d.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("寄付メモの読み取りに失敗: %w", err)
		}
		if d.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}
