package dto

type AddPaymentRequest struct {
	DueDate  string  `json:"due_date" validate:"required"`
	Amount   float64 `json:"amount" validate:"gt=0"`
	Status   string  `json:"status" validate:"omitempty,oneof=pending paid"`
	PaidDate string  `json:"paid_date"`
	Note     string  `json:"note" validate:"max=500"`
}

type MarkPaidRequest struct {
	PaidDate string `json:"paid_date"`
}

type UpdateSettingRequest struct {
	Value string `json:"value" validate:"required"`
}

type NotifyRequest struct {
	Kind string `json:"kind" validate:"required,oneof=confirmation reminder contract"`
}
