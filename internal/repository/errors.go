package repository

import "errors"

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate 唯一约束冲突（building code / room code / user email）
	// Structured so callers never have to match on driver error strings.
	ErrDuplicate = errors.New("duplicate record")
)
