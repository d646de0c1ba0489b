package errors

import "errors"

// ErrStaleSelection 批量删除时部分记录已不存在：整批回滚，需刷新后重试
var ErrStaleSelection = errors.New("선택한 항목 중 일부가 이미 삭제되었습니다. 새로고침 후 다시 시도해주세요")
