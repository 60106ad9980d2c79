// Package bosankai は「みんなの墓参会」APIサーバーを提供する。
// 墓参記録・寄付メモ・思い出の品・コメントの4種類のレコードを
// コミュニティ単位で管理し、添付メディアの保存と静的配信を行う。
// 認証は持たない。コミュニティIDはあくまで整理用のキーであり、
// アクセス制御の境界ではない。
package bosankai
