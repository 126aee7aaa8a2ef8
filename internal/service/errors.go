package service

import (
	"errors"
	"fmt"
)

// ErrUnauthorized 未登录或当前用户无权操作目标记录
// Ownership misses are reported identically to a missing session so callers
// cannot distinguish "exists but not yours" from "no permission".
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError 请求参数校验失败（缺字段、类型错误、重复编码等）
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validationf 构造校验错误
func Validationf(format string, a ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, a...)}
}

// IsValidation 判断是否为校验错误
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
