// Package i18n holds the translated strings shown in the comment box.
package i18n

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	MsgNoComments         = "No comments yet."
	MsgInsertMissingParam = "Oops! Failed to get necessary parameter."
	MsgDeleteMissingParam = "Failed to get necessary parameter."
	MsgInsertRefused      = "Insert comment refused."
	MsgDeleteFailed       = "Failed to delete comment."
	MsgDeleteForbidden    = "You are not allowed to delete this comment."
	MsgLimitExceeded      = "The number of comments exceeds the limit."
	MsgNoEmpty            = "No empty."
	MsgDeleteFailedClient = "Delete failed."
	MsgUpdateFailed       = "Update failed."
	MsgAuthRequired       = "Authentication required."
	MsgPermissionDenied   = "Sorry, you are not allowed to do that."
	MsgTooManyRequests    = "Too many requests. Please try again later."
	MsgInternalError      = "Internal server error."
	MsgPostNotFound       = "Content item not found."
	MsgInvalidSettings    = "Invalid settings."
	MsgSettingsFailed     = "Failed to save settings."
	MsgUnknownAction      = "Unknown action."
)

var japanese = map[string]string{
	MsgNoComments:         "まだコメントはありません。",
	MsgInsertMissingParam: "必要なパラメータを取得できませんでした。",
	MsgDeleteMissingParam: "必要なパラメータを取得できませんでした。",
	MsgInsertRefused:      "コメントの登録が拒否されました。",
	MsgDeleteFailed:       "コメントの削除に失敗しました。",
	MsgDeleteForbidden:    "このコメントを削除する権限がありません。",
	MsgLimitExceeded:      "コメント数が上限を超えています。",
	MsgNoEmpty:            "コメントを入力してください。",
	MsgDeleteFailedClient: "削除に失敗しました。",
	MsgUpdateFailed:       "更新に失敗しました。",
	MsgAuthRequired:       "認証が必要です。",
	MsgPermissionDenied:   "この操作を行う権限がありません。",
	MsgTooManyRequests:    "リクエストが多すぎます。しばらくしてから再度お試しください。",
	MsgInternalError:      "サーバー内部エラーが発生しました。",
	MsgPostNotFound:       "コンテンツが見つかりません。",
	MsgInvalidSettings:    "設定内容が正しくありません。",
	MsgSettingsFailed:     "設定の保存に失敗しました。",
	MsgUnknownAction:      "不明な操作です。",
}

var (
	supported = []language.Tag{language.English, language.Japanese}
	matcher   = language.NewMatcher(supported)
	messages  = newCatalog()
	fallback  = message.NewPrinter(language.English, message.Catalog(messages))
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, translation := range japanese {
		b.SetString(language.English, key, key)
		b.SetString(language.Japanese, key, translation)
	}
	return b
}

// NewPrinter picks the best supported language for an Accept-Language header
func NewPrinter(acceptLanguage string) *message.Printer {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return message.NewPrinter(supported[index], message.Catalog(messages))
}

type printerKey struct{}

// WithPrinter stores the request's printer in ctx
func WithPrinter(ctx context.Context, p *message.Printer) context.Context {
	return context.WithValue(ctx, printerKey{}, p)
}

// FromContext returns the request's printer, English when none was stored
func FromContext(ctx context.Context) *message.Printer {
	if p, ok := ctx.Value(printerKey{}).(*message.Printer); ok && p != nil {
		return p
	}
	return fallback
}

// T translates a message key
func T(p *message.Printer, key string) string {
	return p.Sprintf(key)
}

// ClientMessages returns the strings the editing screen shows without a round trip
func ClientMessages(p *message.Printer) map[string]string {
	return map[string]string{
		"delete_failed_msg":  T(p, MsgDeleteFailedClient),
		"update_failed_msg":  T(p, MsgUpdateFailed),
		"comments_limit_msg": T(p, MsgLimitExceeded),
		"no_empty_msg":       T(p, MsgNoEmpty),
	}
}
