package response

// PaymentStatusCount is one row of the per-status payment breakdown
type PaymentStatusCount struct {
	Status string  `json:"status"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

// DocumentTypeCount is one row of the per-type document breakdown
type DocumentTypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// AdminStatsResponse is the admin dashboard stats payload
type AdminStatsResponse struct {
	TotalResidents     int64                `json:"totalResidents"`
	ActiveResidents    int64                `json:"activeResidents"`
	TotalUsers         int64                `json:"totalUsers"`
	TotalPayments      int64                `json:"totalPayments"`
	TotalDocuments     int64                `json:"totalDocuments"`
	TotalNotifications int64                `json:"totalNotifications"`
	PaymentStats       []PaymentStatusCount `json:"paymentStats"`
	DocumentStats      []DocumentTypeCount  `json:"documentStats"`
}

// PaymentStatsResponse is the global payment stats payload
type PaymentStatsResponse struct {
	TotalPayments int64   `json:"totalPayments"`
	TotalPending  int64   `json:"totalPending"`
	TotalPaid     int64   `json:"totalPaid"`
	TotalOverdue  int64   `json:"totalOverdue"`
	TotalAmount   float64 `json:"totalAmount"`
	PendingAmount float64 `json:"pendingAmount"`
	PaidAmount    float64 `json:"paidAmount"`
}

// PaymentSummaryResponse is the per-resident payment summary payload
type PaymentSummaryResponse struct {
	TotalPending  int64   `json:"totalPending"`
	TotalPaid     int64   `json:"totalPaid"`
	TotalOverdue  int64   `json:"totalOverdue"`
	PendingAmount float64 `json:"pendingAmount"`
}

// ReportSummaryResponse is the payments report footer
type ReportSummaryResponse struct {
	TotalPayments int     `json:"totalPayments"`
	TotalAmount   float64 `json:"totalAmount"`
	PaidAmount    float64 `json:"paidAmount"`
	PendingAmount float64 `json:"pendingAmount"`
}
