package ports

import "context"

// ReportMailer delivers the monthly completed-orders report.
type ReportMailer interface {
	SendMonthlyReport(ctx context.Context, subject, body string) error
}
