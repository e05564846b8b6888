package dashboard

// Stats is an opaque snapshot; it is replaced wholesale on every load.
type Stats struct {
	TotalEmployees int     `json:"totalEmployees"`
	PresentToday   int     `json:"presentToday"`
	PendingLeaves  int     `json:"pendingLeaves"`
	MonthlyPayroll float64 `json:"monthlyPayroll"`
}

type Activity struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
