package dto

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListQuery là tham số phân trang chung cho các API danh sách
type ListQuery struct {
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
	Q     string `form:"q"`
}

func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
