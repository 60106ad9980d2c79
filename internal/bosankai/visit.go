package bosankai

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nao1215/bosankai/internal/store"
)

// visitResponse は墓参記録のJSONレスポンス構造。
type visitResponse struct {
	// ID は墓参記録の一意識別子。
	ID string `json:"id"`
	// CommunityID は記録が属するコミュニティのID。
	CommunityID string `json:"community_id"`
	// VisitDate は墓参した日付。
	VisitDate string `json:"visit_date"`
	// VisitorName は墓参した人の名前。
	VisitorName string `json:"visitor_name"`
	// Kind は記録の種別（"visit" または "diary"）。
	Kind string `json:"kind"`
	// Message は任意のメッセージ。
	Message *string `json:"message"`
	// Media は添付メディアの一覧（添付順）。無い場合は空配列。
	Media []mediaResponse `json:"media"`
	// CreatedAt は作成日時。
	CreatedAt string `json:"created_at"`
}

// toVisitResponse はDB行と添付メディアをJSONレスポンスに変換する。
func toVisitResponse(v store.Visit, media []store.MediaItem) visitResponse {
	return visitResponse{
		ID:          v.ID,
		CommunityID: v.CommunityID,
		VisitDate:   v.VisitDate,
		VisitorName: v.VisitorName,
		Kind:        v.Kind,
		Message:     nullableString(v.Message),
		Media:       toMediaResponses(media),
		CreatedAt:   v.CreatedAt.Format(timeFormat),
	}
}

// handleCreateVisit は墓参記録の作成を処理するハンドラを返す。
// マルチパートフォームからフィールドと添付ファイルを受け取り、
// ファイルの保存後に記録とメディアの関連付けを1トランザクションで書き込む。
func (s *Server) handleCreateVisit() gin.HandlerFunc {
	return func(c *gin.Context) {
		visitDate := c.PostForm("visit_date")
		if visitDate == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "visit_dateは必須です"})
			return
		}
		visitorName := c.PostForm("visitor_name")
		if visitorName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "visitor_nameは必須です"})
			return
		}

		// kindは未指定時のみ"visit"に補正し、それ以外は任意の文字列を受け付ける。
		kind := c.DefaultPostForm("kind", "visit")
		communityID := c.DefaultPostForm("community_id", defaultCommunityID)
		message := optionalForm(c, "message")

		media, err := s.saveUploadedMedia(c, "visit")
		if err != nil {
			log.Printf("メディア保存エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "メディアの保存に失敗しました"})
			return
		}

		visit, err := s.store.CreateVisit(c.Request.Context(), store.CreateVisitParams{
			ID:          uuid.New().String(),
			CommunityID: communityID,
			VisitDate:   visitDate,
			VisitorName: visitorName,
			Kind:        kind,
			Message:     message,
			Media:       media,
		})
		if err != nil {
			log.Printf("墓参記録作成エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "墓参記録の作成に失敗しました"})
			return
		}

		c.JSON(http.StatusCreated, toVisitResponse(visit, media))
	}
}

// handleListVisits は墓参記録の一覧取得を処理するハンドラを返す。
// 指定コミュニティの記録を墓参日の新しい順に返す。
func (s *Server) handleListVisits() gin.HandlerFunc {
	return func(c *gin.Context) {
		communityID := c.DefaultQuery("community_id", defaultCommunityID)

		visits, err := s.store.ListVisits(c.Request.Context(), communityID)
		if err != nil {
			log.Printf("墓参記録一覧取得エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "墓参記録一覧の取得に失敗しました"})
			return
		}

		ownerIDs := make([]string, 0, len(visits))
		for _, v := range visits {
			ownerIDs = append(ownerIDs, v.ID)
		}
		mediaByOwner, err := s.store.ListMediaByOwners(c.Request.Context(), ownerIDs)
		if err != nil {
			log.Printf("メディア関連付け取得エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "メディア一覧の取得に失敗しました"})
			return
		}

		responses := make([]visitResponse, 0, len(visits))
		for _, v := range visits {
			responses = append(responses, toVisitResponse(v, mediaByOwner[v.ID]))
		}

		c.JSON(http.StatusOK, responses)
	}
}
