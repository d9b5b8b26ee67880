package request

// OpenShiftRequest represents a shift open request
type OpenShiftRequest struct {
	StartCash int64 `json:"start_cash" binding:"min=0"`
}

// CloseShiftRequest represents a shift close request
type CloseShiftRequest struct {
	EndCash int64   `json:"end_cash" binding:"min=0"`
	Notes   *string `json:"notes" binding:"omitempty,max=500"`
}

// CashMovementRequest represents a drawer cash movement request
type CashMovementRequest struct {
	Type   string `json:"type" binding:"required"`
	Amount int64  `json:"amount" binding:"required,min=1"`
	Notes  string `json:"notes" binding:"omitempty,max=500"`
}
