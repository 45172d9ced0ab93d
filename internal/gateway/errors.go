package gateway

import (
	"errors"
	"fmt"
)

// Op names a gateway operation
type Op string

const (
	OpInitialize Op = "initialize"
	OpListETFs   Op = "list_etfs"
	OpThemes     Op = "themes"
	OpComparison Op = "comparison"
	OpHistory    Op = "history"
	OpStats      Op = "stats"
	OpUpdate     Op = "update"
	OpExport     Op = "export"
	OpHealth     Op = "health"
)

// userMessages are the fixed alerts shown for each failed operation.
// Transport, status and decode failures are not distinguished.
var userMessages = map[Op]string{
	OpInitialize: "시스템 초기화 중 오류가 발생했습니다.",
	OpListETFs:   "ETF 목록을 불러오는 중 오류가 발생했습니다.",
	OpThemes:     "테마 목록을 불러오는 중 오류가 발생했습니다.",
	OpComparison: "ETF 정보를 불러오는 중 오류가 발생했습니다.",
	OpHistory:    "비중 추이를 불러오는 중 오류가 발생했습니다.",
	OpStats:      "통계를 불러오는 중 오류가 발생했습니다.",
	OpUpdate:     "데이터 업데이트 중 오류가 발생했습니다.",
	OpExport:     "CSV 내보내기 중 오류가 발생했습니다.",
	OpHealth:     "서버 상태를 확인할 수 없습니다.",
}

// Error is returned by every failed gateway call
type Error struct {
	Op         Op
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage returns the localized alert for this operation
func (e *Error) UserMessage() string {
	return UserMessage(e.Op)
}

// UserMessage returns the localized alert for op
func UserMessage(op Op) string {
	if msg, ok := userMessages[op]; ok {
		return msg
	}
	return "요청 처리 중 오류가 발생했습니다."
}

// AlertFor returns the user-facing alert for any error
func AlertFor(err error) string {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.UserMessage()
	}
	return "요청 처리 중 오류가 발생했습니다."
}
