package models

// InsightRequest optionally narrows the question asked about the current selection.
type InsightRequest struct {
	Question string `json:"question"`
}

// InsightResponse is the narrative generated for a dashboard summary.
type InsightResponse struct {
	Model   string           `json:"model"`
	Text    string           `json:"text"`
	Summary DashboardSummary `json:"summary"`
}
