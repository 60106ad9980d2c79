package bosankai

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nao1215/bosankai/internal/store"
)

// commentResponse は思い出の品へのコメントのJSONレスポンス構造。
type commentResponse struct {
	// ID はコメントの一意識別子。
	ID string `json:"id"`
	// CommunityID は参照先の思い出の品から導出したコミュニティID。
	CommunityID string `json:"community_id"`
	// MemoryID は参照先の思い出の品のID。
	MemoryID string `json:"memory_id"`
	// AuthorName はコメント投稿者の名前。
	AuthorName *string `json:"author_name"`
	// Message はコメント本文。
	Message string `json:"message"`
	// CreatedAt は作成日時。
	CreatedAt string `json:"created_at"`
}

// toCommentResponse はDB行をJSONレスポンスに変換する。
func toCommentResponse(mc store.MemoryComment) commentResponse {
	return commentResponse{
		ID:          mc.ID,
		CommunityID: mc.CommunityID,
		MemoryID:    mc.MemoryID,
		AuthorName:  nullableString(mc.AuthorName),
		Message:     mc.Message,
		CreatedAt:   mc.CreatedAt.Format(timeFormat),
	}
}

// handleCreateMemoryComment はコメントの作成を処理するハンドラを返す。
// community_idはクライアントから受け取らず、参照先の思い出の品から導出する。
// 参照先が存在しない場合は404を返し、何も保存しない。
func (s *Server) handleCreateMemoryComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		memoryID := c.PostForm("memory_id")
		if memoryID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "memory_idは必須です"})
			return
		}
		message := c.PostForm("message")
		if message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "messageは必須です"})
			return
		}

		comment, err := s.store.CreateMemoryComment(c.Request.Context(), store.CreateMemoryCommentParams{
			ID:         uuid.New().String(),
			MemoryID:   memoryID,
			AuthorName: optionalForm(c, "author_name"),
			Message:    message,
		})
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "対象の思い出の品が見つかりません"})
			return
		}
		if err != nil {
			log.Printf("コメント作成エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "コメントの作成に失敗しました"})
			return
		}

		c.JSON(http.StatusCreated, toCommentResponse(comment))
	}
}

// handleListMemoryComments はコメントの一覧取得を処理するハンドラを返す。
// スレッド表示のため、他の一覧と異なり作成の古い順に返す。
func (s *Server) handleListMemoryComments() gin.HandlerFunc {
	return func(c *gin.Context) {
		communityID := c.DefaultQuery("community_id", defaultCommunityID)

		comments, err := s.store.ListMemoryComments(c.Request.Context(), communityID)
		if err != nil {
			log.Printf("コメント一覧取得エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "コメント一覧の取得に失敗しました"})
			return
		}

		responses := make([]commentResponse, 0, len(comments))
		for _, mc := range comments {
			responses = append(responses, toCommentResponse(mc))
		}

		c.JSON(http.StatusOK, responses)
	}
}
