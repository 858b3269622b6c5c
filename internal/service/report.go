package service

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"study-game/internal/config"
	"study-game/internal/content"
	"study-game/internal/domain"
	"study-game/internal/dto"
	"study-game/internal/logger"
	"study-game/internal/repository"

	"go.uber.org/zap"
)

// Mailer delivers a composed report email. Implementations own transport
// concerns; the service only hands over recipient, subject and HTML body.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// LogMailer logs the email instead of sending it. Used in development
// and as the default when no provider is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	logger.Get().Info("report email (not sent, log mailer)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(htmlBody)))
	return nil
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// maxReportRows caps the per-question table in the email body.
const maxReportRows = 50

// ReportService composes and sends the parent report for a stored
// attempt, gated on the user's entitlement when paid-only mode is on.
type ReportService interface {
	Send(ctx context.Context, userID string, req *dto.ReportRequest) (*dto.ReportResponse, error)
}

type reportService struct {
	attempts     repository.AttemptRepository
	entitlements repository.EntitlementRepository
	mailer       Mailer
	cfg          config.ReportConfig
}

func NewReportService(attempts repository.AttemptRepository, entitlements repository.EntitlementRepository, mailer Mailer, cfg config.ReportConfig) ReportService {
	return &reportService{attempts: attempts, entitlements: entitlements, mailer: mailer, cfg: cfg}
}

func (s *reportService) Send(ctx context.Context, userID string, req *dto.ReportRequest) (*dto.ReportResponse, error) {
	if req == nil {
		return nil, domain.NewInvalidInputError("request body is required")
	}
	to := strings.TrimSpace(req.ToEmail)
	if !emailRe.MatchString(to) {
		return nil, domain.NewInvalidInputError("a valid recipient email is required")
	}
	if req.AttemptID == "" {
		return nil, domain.NewInvalidInputError("attempt_id is required")
	}

	attempt, err := s.attempts.Get(ctx, req.AttemptID)
	if err != nil {
		return nil, err
	}

	if s.cfg.PaidOnly {
		if err := s.checkAccess(ctx, userID, attempt.Slug); err != nil {
			return nil, err
		}
	}

	title := content.TitleFor(attempt.Slug, "")
	subject := fmt.Sprintf("今日練習報告：%s", title)
	if name := strings.TrimSpace(req.StudentName); name != "" {
		subject = fmt.Sprintf("%s 今日練習報告：%s", name, title)
	}

	body := composeReportBody(attempt, req.StudentName, title, req.DurationMin)
	if err := s.mailer.Send(ctx, to, subject, body); err != nil {
		return nil, domain.NewMailerError(err)
	}

	logger.Get().Info("report sent",
		zap.String("attempt_id", attempt.ID),
		zap.String("slug", attempt.Slug))

	return &dto.ReportResponse{Sent: true, To: to}, nil
}

func (s *reportService) checkAccess(ctx context.Context, userID, slug string) error {
	if userID == "" {
		return domain.NewUpgradeRequiredError("sign in and upgrade to send reports")
	}

	subject, gradeNum := content.ParseSubjectGrade(slug)
	grade := ""
	if gradeNum > 0 {
		grade = fmt.Sprintf("grade%d", gradeNum)
	}

	ok, err := s.entitlements.HasAccess(ctx, userID, subject, grade)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewUpgradeRequiredError("reports require access to this subject and grade")
	}
	return nil
}

func composeReportBody(attempt *domain.Attempt, studentName, title string, durationMin int) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family:sans-serif;max-width:640px">`)
	if name := strings.TrimSpace(studentName); name != "" {
		fmt.Fprintf(&b, "<h2>%s 的練習報告</h2>", html.EscapeString(name))
	} else {
		b.WriteString("<h2>練習報告</h2>")
	}
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(title))
	fmt.Fprintf(&b, "<p>得分：<strong>%d / %d</strong>", attempt.Score, attempt.Total)
	if durationMin > 0 {
		fmt.Fprintf(&b, "（%d 分鐘）", durationMin)
	}
	b.WriteString("</p>")

	b.WriteString(`<table border="1" cellpadding="6" cellspacing="0" style="border-collapse:collapse;width:100%">`)
	b.WriteString("<tr><th>題目</th><th>你的答案</th><th>正確答案</th><th></th></tr>")

	rows := attempt.Results
	if len(rows) > maxReportRows {
		rows = rows[:maxReportRows]
	}
	for _, r := range rows {
		mark := "✗"
		if r.Correct {
			mark = "✓"
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(r.Stem),
			html.EscapeString(r.YourAnswer),
			html.EscapeString(r.CorrectAnswer),
			mark)
	}
	b.WriteString("</table>")

	if len(attempt.Results) > maxReportRows {
		fmt.Fprintf(&b, "<p>（只顯示前 %d 題）</p>", maxReportRows)
	}
	b.WriteString("</div>")
	return b.String()
}
