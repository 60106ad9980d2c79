package bosankai

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nao1215/bosankai/internal/store"
)

// memoryResponse は思い出の品のJSONレスポンス構造。
type memoryResponse struct {
	// ID は思い出の品の一意識別子。
	ID string `json:"id"`
	// CommunityID は品が属するコミュニティのID。
	CommunityID string `json:"community_id"`
	// Title は品のタイトル。
	Title string `json:"title"`
	// Description は品の説明。
	Description *string `json:"description"`
	// CreatedBy は登録者の名前。
	CreatedBy *string `json:"created_by"`
	// Media は添付メディアの一覧（添付順）。無い場合は空配列。
	Media []mediaResponse `json:"media"`
	// CreatedAt は作成日時。
	CreatedAt string `json:"created_at"`
}

// toMemoryResponse はDB行と添付メディアをJSONレスポンスに変換する。
func toMemoryResponse(m store.Memory, media []store.MediaItem) memoryResponse {
	return memoryResponse{
		ID:          m.ID,
		CommunityID: m.CommunityID,
		Title:       m.Title,
		Description: nullableString(m.Description),
		CreatedBy:   nullableString(m.CreatedBy),
		Media:       toMediaResponses(media),
		CreatedAt:   m.CreatedAt.Format(timeFormat),
	}
}

// handleCreateMemory は思い出の品の作成を処理するハンドラを返す。
// 墓参記録と同じく、ファイルの保存後に品とメディアの関連付けを
// 1トランザクションで書き込む。
func (s *Server) handleCreateMemory() gin.HandlerFunc {
	return func(c *gin.Context) {
		title := c.PostForm("title")
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "titleは必須です"})
			return
		}

		communityID := c.DefaultPostForm("community_id", defaultCommunityID)
		description := optionalForm(c, "description")
		createdBy := optionalForm(c, "created_by")

		media, err := s.saveUploadedMedia(c, "memory")
		if err != nil {
			log.Printf("メディア保存エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "メディアの保存に失敗しました"})
			return
		}

		memory, err := s.store.CreateMemory(c.Request.Context(), store.CreateMemoryParams{
			ID:          uuid.New().String(),
			CommunityID: communityID,
			Title:       title,
			Description: description,
			CreatedBy:   createdBy,
			Media:       media,
		})
		if err != nil {
			log.Printf("思い出の品作成エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "思い出の品の作成に失敗しました"})
			return
		}

		c.JSON(http.StatusCreated, toMemoryResponse(memory, media))
	}
}

// handleListMemories は思い出の品の一覧取得を処理するハンドラを返す。
// 指定コミュニティの品を作成の新しい順に返す。
func (s *Server) handleListMemories() gin.HandlerFunc {
	return func(c *gin.Context) {
		communityID := c.DefaultQuery("community_id", defaultCommunityID)

		memories, err := s.store.ListMemories(c.Request.Context(), communityID)
		if err != nil {
			log.Printf("思い出の品一覧取得エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "思い出の品一覧の取得に失敗しました"})
			return
		}

		ownerIDs := make([]string, 0, len(memories))
		for _, m := range memories {
			ownerIDs = append(ownerIDs, m.ID)
		}
		mediaByOwner, err := s.store.ListMediaByOwners(c.Request.Context(), ownerIDs)
		if err != nil {
			log.Printf("メディア関連付け取得エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "メディア一覧の取得に失敗しました"})
			return
		}

		responses := make([]memoryResponse, 0, len(memories))
		for _, m := range memories {
			responses = append(responses, toMemoryResponse(m, mediaByOwner[m.ID]))
		}

		c.JSON(http.StatusOK, responses)
	}
}
