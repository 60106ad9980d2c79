// 「みんなの墓参会」APIサーバーのエントリポイント。
// 墓参記録・寄付メモ・思い出の品・コメントをコミュニティ単位で管理し、
// 添付メディアの保存と静的配信を行う。
package main

import (
	"log"

	"github.com/nao1215/bosankai/internal/bosankai"
)

func main() {
	cfg := bosankai.ConfigFromEnv()

	server, err := bosankai.NewServer(cfg)
	if err != nil {
		log.Fatalf("サーバーの初期化に失敗: %v", err)
	}
	defer server.Shutdown()

	log.Printf("墓参会APIサーバーを起動します: :%s", cfg.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("サーバーの起動に失敗: %v", err)
	}
}
