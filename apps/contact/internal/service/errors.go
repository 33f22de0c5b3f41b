package service

import (
	"ContactServer/consts"
	"errors"
)

// BizError 业务错误：携带 consts 错误码在服务层和 Handler 层之间传递。
// 业务失败（邮箱不存在、重复添加等）属于正常流程，必须以类型化结果返回，
// 绝不允许底层存储错误直接穿透到 Handler。
type BizError struct {
	Code int32
}

func (e *BizError) Error() string {
	return consts.GetMessage(e.Code)
}

// NewBizError 按错误码构造业务错误
func NewBizError(code int32) error {
	return &BizError{Code: code}
}

// ExtractErrorCode 提取业务错误码；非业务错误一律按内部错误处理
func ExtractErrorCode(err error) int32 {
	if err == nil {
		return consts.CodeSuccess
	}

	var bizErr *BizError
	if errors.As(err, &bizErr) {
		return bizErr.Code
	}

	return consts.CodeInternalError
}
