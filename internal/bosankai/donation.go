package bosankai

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nao1215/bosankai/internal/store"
)

// donationResponse は寄付メモのJSONレスポンス構造。
type donationResponse struct {
	// ID は寄付メモの一意識別子。
	ID string `json:"id"`
	// CommunityID は参照先の墓参記録から導出したコミュニティID。
	CommunityID string `json:"community_id"`
	// VisitID は参照先の墓参記録のID。
	VisitID string `json:"visit_id"`
	// DonorName は寄付者の名前。
	DonorName *string `json:"donor_name"`
	// Amount は寄付額。
	Amount int64 `json:"amount"`
	// Message は任意のメッセージ。
	Message *string `json:"message"`
	// CreatedAt は作成日時。
	CreatedAt string `json:"created_at"`
}

// toDonationResponse はDB行をJSONレスポンスに変換する。
func toDonationResponse(d store.Donation) donationResponse {
	return donationResponse{
		ID:          d.ID,
		CommunityID: d.CommunityID,
		VisitID:     d.VisitID,
		DonorName:   nullableString(d.DonorName),
		Amount:      d.Amount,
		Message:     nullableString(d.Message),
		CreatedAt:   d.CreatedAt.Format(timeFormat),
	}
}

// handleCreateDonation は寄付メモの作成を処理するハンドラを返す。
// community_idはクライアントから受け取らず、参照先の墓参記録から導出する。
// 参照先が存在しない場合は404を返し、何も保存しない。
func (s *Server) handleCreateDonation() gin.HandlerFunc {
	return func(c *gin.Context) {
		visitID := c.PostForm("visit_id")
		if visitID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "visit_idは必須です"})
			return
		}

		// 金額は整数であることだけを確認する。負の値は弾かない。
		amount, err := strconv.ParseInt(c.PostForm("amount"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amountは整数で指定してください"})
			return
		}

		donation, err := s.store.CreateDonation(c.Request.Context(), store.CreateDonationParams{
			ID:        uuid.New().String(),
			VisitID:   visitID,
			DonorName: optionalForm(c, "donor_name"),
			Amount:    amount,
			Message:   optionalForm(c, "message"),
		})
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "元の墓参記録が見つかりません"})
			return
		}
		if err != nil {
			log.Printf("寄付メモ作成エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "寄付メモの作成に失敗しました"})
			return
		}

		c.JSON(http.StatusCreated, toDonationResponse(donation))
	}
}

// handleListDonations は寄付メモの一覧取得を処理するハンドラを返す。
// 指定コミュニティのメモを作成の新しい順に返す。
func (s *Server) handleListDonations() gin.HandlerFunc {
	return func(c *gin.Context) {
		communityID := c.DefaultQuery("community_id", defaultCommunityID)

		donations, err := s.store.ListDonations(c.Request.Context(), communityID)
		if err != nil {
			log.Printf("寄付メモ一覧取得エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "寄付メモ一覧の取得に失敗しました"})
			return
		}

		responses := make([]donationResponse, 0, len(donations))
		for _, d := range donations {
			responses = append(responses, toDonationResponse(d))
		}

		c.JSON(http.StatusOK, responses)
	}
}
