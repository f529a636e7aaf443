package author

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 作者领域错误定义
var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")

	// ErrNameRequired 名称为空
	ErrNameRequired = apperrors.NewFieldError("name", "作者名称不能为空")

	// ErrNameTooLong 名称超长
	ErrNameTooLong = apperrors.NewFieldError("name", "作者名称不能超过200个字符")
)
