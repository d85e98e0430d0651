package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrTimestampInvalid = errors.New("时间戳无效")
	ErrApplyConflict    = errors.New("并发冲突，请稍后重试")
	UnauthorizedError   = errors.New("权限不足")
	UnExpectedError     = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:     BadRequest,
	ErrTimestampInvalid: BadRequest,
	ErrApplyConflict:    Conflict,
	UnauthorizedError:   Unauthorized,
	UnExpectedError:     InternalServerError,
}
