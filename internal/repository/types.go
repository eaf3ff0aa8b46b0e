package repository

import "time"

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string // 姓名 / 邮箱 / 身份证号模糊匹配
	IsActive    *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page          int
	PageSize      int
	CategoryID    uint
	SubcategoryID uint
	Search        string
	PriceMin      string
	PriceMax      string
	InStockOnly   bool
	OnlyActive    bool
	WithCategory  bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	Email       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// MovementListFilter 查询库存流水的过滤条件
type MovementListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	Type      string
}

// AuthzAuditLogListFilter 查询权限审计日志列表的过滤条件
type AuthzAuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorAdminID uint
	TargetAdminID   uint
	Action          string
	Role            string
	Object          string
	Method          string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
