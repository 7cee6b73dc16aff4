package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateCurrency     = "CREATE_CURRENCY"
	ActionUpdateCurrency     = "UPDATE_CURRENCY"
	ActionDeleteCurrency     = "DELETE_CURRENCY"
	ActionCreateVatCategory  = "CREATE_VAT_CATEGORY"
	ActionUpdateVatCategory  = "UPDATE_VAT_CATEGORY"
	ActionDeleteVatCategory  = "DELETE_VAT_CATEGORY"
	ActionCreatePriceType    = "CREATE_PRICE_TYPE"
	ActionDeletePriceType    = "DELETE_PRICE_TYPE"
	ActionUpsertExchangeRate = "UPSERT_EXCHANGE_RATE"
	ActionDeleteExchangeRate = "DELETE_EXCHANGE_RATE"
	ActionCreateProduct      = "CREATE_PRODUCT"
	ActionUpdateProduct      = "UPDATE_PRODUCT"
	ActionDeleteProduct      = "DELETE_PRODUCT"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated bot
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
