package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the backend's status-code taxonomy. API methods wrap
// these together with a user-facing message so callers can branch with
// errors.Is while pages display Error() verbatim.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrBackend          = errors.New("backend error")
)

// Error carries the mapped human-readable message plus the original HTTP
// status, wrapping the matching sentinel.
type Error struct {
	Status  int
	Message string
	sent    error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.sent }

// messages maps a status code to the fixed message shown to the user.
// Endpoints override individual entries where the backend's meaning differs
// (e.g. 404 on rename means the chat is gone, not a generic missing page).
type messages map[int]string

// defaultMessages is the fallback taxonomy shared by every endpoint.
var defaultMessages = messages{
	400: "입력값이 올바르지 않습니다.",
	401: "로그인이 필요합니다.",
	403: "접근 권한이 없습니다.",
	404: "요청한 대상을 찾을 수 없습니다.",
	415: "지원하지 않는 파일 형식입니다.",
}

const fallbackMessage = "알 수 없는 오류가 발생했습니다. 잠시 후 다시 시도해주세요."

func sentinelFor(status int) error {
	switch status {
	case 400:
		return ErrBadRequest
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 415:
		return ErrUnsupportedMedia
	default:
		return ErrBackend
	}
}

// statusError builds the mapped error for a non-2xx response. The override
// map wins over the default taxonomy; unknown codes get the generic message.
func statusError(status int, override messages) error {
	msg, ok := override[status]
	if !ok {
		msg, ok = defaultMessages[status]
	}
	if !ok {
		msg = fallbackMessage
	}
	return &Error{Status: status, Message: msg, sent: sentinelFor(status)}
}

// IsAuthError reports whether err should bounce the user to login.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func decodeError(err error) error {
	return fmt.Errorf("응답을 해석할 수 없습니다: %w", err)
}
