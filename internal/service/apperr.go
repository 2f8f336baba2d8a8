package service

import "fmt"

// Kind 错误分类，传输层按 Kind 映射 HTTP 状态码
type Kind int

const (
	KindValidation Kind = iota + 1 // 400 入参校验失败
	KindNotFound                   // 404
	KindDomain                     // 400 业务规则冲突
	KindInternal                   // 500
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error 统一业务错误：在出错点构造，不在边界上探测 ORM 字段
type Error struct {
	Kind    Kind
	Msg     string
	Details []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(details ...FieldError) *Error {
	return &Error{Kind: KindValidation, Msg: "ValidationError", Details: details}
}

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Msg: msg} }

func Domain(msg string) *Error { return &Error{Kind: KindDomain, Msg: msg} }

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}
