// Package store は墓参会の全エンティティ（墓参記録・寄付メモ・思い出の品・コメント）と
// 添付メディアの関連付けをSQLiteに永続化するリポジトリを提供する。
// 寄付メモとコメントのcommunity_idは、クライアント入力ではなく
// 参照先エンティティから導出して書き込む。
package store
