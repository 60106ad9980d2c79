// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// パニックリカバリとCORS設定を含む。墓参会APIは認証を持たないため、
// 認証系のミドルウェアは存在しない。
package middleware
