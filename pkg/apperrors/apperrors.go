package apperrors

import "fmt"

// Kind 业务错误分类
// 所有业务规则失败都属于以下五类之一，直接返回调用方，不做自动重试
type Kind int

const (
	// KindValidation 输入非法：缺失、格式错误、超出范围
	KindValidation Kind = iota
	// KindState 当前生命周期状态下不允许该操作
	KindState
	// KindConflict 违反唯一性或容量约束
	KindConflict
	// KindAuth 调用者缺少所有权或角色权限
	KindAuth
	// KindNotFound 引用的实体不存在
	KindNotFound
)

// Error 带分类的业务错误
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is 支持 errors.Is 按分类匹配：errors.Is(err, apperrors.Validation())
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// ── 构造函数 ──

// Validationf 构造输入校验错误
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Statef 构造状态机错误
func Statef(format string, args ...interface{}) *Error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

// Conflictf 构造唯一性/容量冲突错误
func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Authf 构造权限错误
func Authf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAuth, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf 构造实体不存在错误
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// ── 分类哨兵（仅用于 errors.Is 匹配，Message 为空） ──

// Validation 匹配任意输入校验错误
func Validation() *Error { return &Error{Kind: KindValidation} }

// State 匹配任意状态机错误
func State() *Error { return &Error{Kind: KindState} }

// Conflict 匹配任意冲突错误
func Conflict() *Error { return &Error{Kind: KindConflict} }

// Auth 匹配任意权限错误
func Auth() *Error { return &Error{Kind: KindAuth} }

// NotFound 匹配任意实体不存在错误
func NotFound() *Error { return &Error{Kind: KindNotFound} }
