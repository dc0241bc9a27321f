package payment

import (
	"time"

	"gorm.io/gorm"

	courseModels "lms/models/course"
)

// TransactionStatus lifecycle: pending -> completed | failed; completed may
// later become refunded.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionRefunded  TransactionStatus = "refunded"
)

// Transaction is a cart turned into an order. Line items live in
// TransactionDetail; checkout confirms a pending transaction and creates the
// enrollments.
type Transaction struct {
	gorm.Model
	StudentID       uint              `json:"student_id" gorm:"index;not null"`
	TransactionCode string            `json:"transaction_code" gorm:"unique;not null"`
	TotalAmount     float64           `json:"total_amount" gorm:"not null"`
	DiscountAmount  float64           `json:"discount_amount" gorm:"default:0"`
	FinalAmount     float64           `json:"final_amount" gorm:"not null"`
	PaymentMethod   string            `json:"payment_method"` // bank_card, e_wallet, bank_transfer
	PaymentGateway  string            `json:"payment_gateway"`
	Status          TransactionStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	PaymentAt       *time.Time        `json:"payment_at"`
	RefundedAt      *time.Time        `json:"refunded_at"`

	Details []TransactionDetail `json:"details,omitempty" gorm:"foreignKey:TransactionID"`
}

type TransactionDetail struct {
	gorm.Model
	TransactionID uint    `json:"transaction_id" gorm:"index;not null"`
	CourseID      uint    `json:"course_id" gorm:"not null"`
	Price         float64 `json:"price" gorm:"not null"`
	Discount      float64 `json:"discount" gorm:"default:0"`
	FinalPrice    float64 `json:"final_price" gorm:"not null"`

	Course *courseModels.Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
