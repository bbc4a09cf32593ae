// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService はチャットのユーザーメッセージおよび
// アシスタント応答をサニタイズし、XSS攻撃などのセキュリティリスクから
// ユーザーを保護する。bluemondayライブラリの厳格ポリシーを使用し、
// すべてのHTMLタグを除去してプレーンテキストのみを通過させる。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService はテキストコンテンツのサニタイズ機能のインターフェースを定義する。
// チャットメッセージの外部API送信前およびアシスタント応答の返却時に使用される。
type ContentSanitizerService interface {
	// Sanitize はテキストからすべてのHTMLタグを除去したプレーンテキストを返す。
	// script, iframe, img, aなどのタグとon*イベント属性はすべて除去される。
	// HTMLエンティティはデコードされ、前後の空白は除去される。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayの厳格ポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// チャットメッセージは書式を持たないプレーンテキストとして扱うため、
// 許可タグを一切持たないStrictPolicyを使用する。
func NewContentSanitizer() *contentSanitizer {
	return &contentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize はテキストからすべてのHTMLタグを除去したプレーンテキストを返す。
func (s *contentSanitizer) Sanitize(raw string) string {
	// StrictPolicyはエンティティをエスケープ済みで返すため、
	// プレーンテキストとして扱えるようデコードする。
	sanitized := s.policy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(sanitized))
}
