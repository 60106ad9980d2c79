package bosankai

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/bosankai/internal/mediastore"
)

// handleUploadAvatar はコミュニティのアバター画像の登録を処理するハンドラを返す。
// 保存先はcommunity_idから決まる固定パスで、再アップロードは同じパスへの上書きになる。
// システム全体で唯一の更新操作。
func (s *Server) handleUploadAvatar() gin.HandlerFunc {
	return func(c *gin.Context) {
		communityID := c.PostForm("community_id")
		if communityID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "community_idは必須です"})
			return
		}

		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "photoファイルは必須です"})
			return
		}

		name, err := s.media.SaveAvatar(communityID, file)
		if errors.Is(err, mediastore.ErrInvalidCommunityID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "community_idに使えない文字が含まれています"})
			return
		}
		if err != nil {
			log.Printf("アバター保存エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "アバターの保存に失敗しました"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"community_id": communityID,
			"url":          "/uploads/" + name,
		})
	}
}
