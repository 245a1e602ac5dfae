package app

import "github.com/dejobratic/minishop/internal/shop/ports"

// NoticeLevel tells the front end how to present a notice.
type NoticeLevel int

const (
	// NoticeNone means there is nothing to show.
	NoticeNone NoticeLevel = iota
	// NoticeSuccess confirms a completed action.
	NoticeSuccess
	// NoticeInvalid reports input rejected before any request was sent.
	NoticeInvalid
	// NoticeFailure reports a failed request. Screen state is as it was before the action.
	NoticeFailure
)

// Success messages of the actions that report one.
const (
	MessageCreated  = "상품이 추가되었습니다"
	MessageUpdated  = "수정 완료되었습니다"
	MessageRestored = "복구 완료되었습니다"
	MessageOrdered  = "주문이 완료되었습니다"
)

// Notice is the message an action hands back to the UI. The UI must show it;
// the screens never present anything themselves.
//
// Warning is set when the action went through but the refresh after it
// failed. The notice stays a success.
type Notice struct {
	Level   NoticeLevel
	Message string
	Warning string
}

func (n Notice) IsZero() bool {
	return n.Level == NoticeNone
}

// IsError reports whether the notice describes a rejected or failed action.
func (n Notice) IsError() bool {
	return n.Level == NoticeInvalid || n.Level == NoticeFailure
}

// withRefreshError attaches the message of a failed follow-up reload.
func (n Notice) withRefreshError(err error, fallback string) Notice {
	n.Warning = ports.MessageOr(err, fallback)
	return n
}

func success(message string) Notice {
	return Notice{Level: NoticeSuccess, Message: message}
}

func invalid(message string) Notice {
	return Notice{Level: NoticeInvalid, Message: message}
}

func failure(message string) Notice {
	return Notice{Level: NoticeFailure, Message: message}
}
