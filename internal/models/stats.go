package models

// BucketCount is one row of a group-by aggregation.
type BucketCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// AdminStats is the admin dashboard summary.
type AdminStats struct {
	Counts struct {
		TotalClients         int `json:"total_clients"`
		TotalPartners        int `json:"total_partners"`
		PendingVerifications int `json:"pending_verifications"`
		TotalInquiries       int `json:"total_inquiries"`
		CompletedInquiries   int `json:"completed_inquiries"`
		TotalPortfolioItems  int `json:"total_portfolio_items"`
	} `json:"counts"`
	Analytics struct {
		InquiriesByCategory []BucketCount `json:"inquiries_by_category"`
		InquiriesByStatus   []BucketCount `json:"inquiries_by_status"`
		InquiriesByCity     []BucketCount `json:"inquiries_by_city"`
	} `json:"analytics"`
}
