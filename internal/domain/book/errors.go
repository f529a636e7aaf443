package book

import (
	"fmt"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrTitleRequired 书名为空
	ErrTitleRequired = apperrors.NewFieldError("title", "书名不能为空")

	// ErrTitleTooLong 书名超长
	ErrTitleTooLong = apperrors.NewFieldError("title", "书名不能超过200个字符")

	// ErrDuplicateTitleAuthor 同一作者下书名重复
	ErrDuplicateTitleAuthor = apperrors.New(apperrors.ErrCodeDuplicateEntry, "参数校验失败").
				WithField("title", "该作者名下已存在同名图书")

	// ErrAuthorRef 引用的作者不存在
	ErrAuthorRef = apperrors.NewFieldError("author", "引用的作者不存在")
)

// FutureYearError 出版年份晚于当前年份
// 错误信息携带当前年份,便于客户端提示
func FutureYearError(currentYear int) *apperrors.AppError {
	return apperrors.NewFieldError("publication_year",
		fmt.Sprintf("出版年份不能晚于当前年份(%d)", currentYear))
}
