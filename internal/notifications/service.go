package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/citelens/citations-bot/internal/config"
	"github.com/citelens/citations-bot/internal/models"
)

// Service handles sending notifications via various channels
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type     string         `json:"@type"`
	Context  string         `json:"@context"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	Sections []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle    string      `json:"activityTitle,omitempty"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	ActivityText     string      `json:"activityText,omitempty"`
	Facts            []TeamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendReport sends a citation report via configured notification channels
func (s *Service) SendReport(report *models.Report) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.sendToTeams(report); err != nil {
			logrus.Errorf("Failed to send Teams notification: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent citation report to Teams")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(report); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent citation report via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToTeams(report *models.Report) error {
	message := s.buildTeamsMessage(report)

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildTeamsMessage(report *models.Report) *TeamsMessage {
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("Brand Citations Report - %s", strings.Title(report.Period)),
		Text:    fmt.Sprintf("Found %d brand mentions across AI platforms in the last %s", report.TotalMentions, report.Period),
	}

	facts := []TeamsFact{
		{Name: "Total Mentions", Value: fmt.Sprintf("%d", report.TotalMentions)},
		{Name: "Responses Analyzed", Value: fmt.Sprintf("%d", len(report.Results))},
		{Name: "Generated", Value: report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
	}

	if sentiment, ok := report.Summary["sentiment"].(map[string]int); ok {
		for _, label := range models.AllSentimentTypes {
			facts = append(facts, TeamsFact{
				Name:  fmt.Sprintf("%s Mentions", strings.Title(string(label))),
				Value: fmt.Sprintf("%d", sentiment[string(label)]),
			})
		}
	}

	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Summary",
		Facts:         facts,
		Markdown:      true,
	})

	if brandCounts, ok := report.Summary["mentions_by_brand"].(map[string]int); ok && len(brandCounts) > 0 {
		var lines []string
		for brand, count := range brandCounts {
			lines = append(lines, fmt.Sprintf("**%s**: %d", brand, count))
		}
		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Mentions by Brand",
			ActivityText:  strings.Join(lines, "\n\n"),
			Markdown:      true,
		})
	}

	if len(report.Mentions) > 0 {
		var topMentions []string
		limit := 5
		if len(report.Mentions) < limit {
			limit = len(report.Mentions)
		}

		for i := 0; i < limit; i++ {
			mention := report.Mentions[i]
			topMentions = append(topMentions, fmt.Sprintf("**%s** (%s, %s) - \"%s\"",
				mention.BrandName, mention.MentionType, mention.SentimentType,
				truncate(mention.Context, 140)))
		}

		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Most Prominent Mentions",
			ActivityText:  strings.Join(topMentions, "\n\n"),
			Markdown:      true,
		})
	}

	return message
}

func (s *Service) sendEmail(report *models.Report) error {
	subject := fmt.Sprintf("Brand Citations Report - %s (%d mentions)",
		strings.Title(report.Period), report.TotalMentions)

	htmlBody, err := s.buildEmailHTML(report)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	textBody := s.buildEmailText(report)

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *Service) buildEmailHTML(report *models.Report) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Brand Citations Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #2b579a; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .mention { border-left: 4px solid #2b579a; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .mention-brand { font-weight: bold; margin-bottom: 5px; }
        .mention-meta { color: #666; font-size: 0.9em; }
        .positive { border-left-color: #107c10; }
        .negative { border-left-color: #d13438; }
        .neutral { border-left-color: #605e5c; }
        .mixed { border-left-color: #ca5010; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Brand Citations Report</h1>
        <p>{{.Period}} report generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM UTC"}}</p>
    </div>

    <div class="summary">
        <h2>Summary</h2>
        <p><strong>Total Mentions:</strong> {{.TotalMentions}}</p>
        <p><strong>Responses Analyzed:</strong> {{len .Results}}</p>
    </div>

    {{if .Mentions}}
    <h2>Most Prominent Mentions</h2>
    {{range $index, $mention := .Mentions}}
        {{if lt $index 10}}
        <div class="mention {{$mention.SentimentType}}">
            <div class="mention-brand">{{$mention.BrandName}}</div>
            <div class="mention-meta">
                Type: {{$mention.MentionType}} | Sentiment: {{$mention.SentimentType}} |
                Prominence: {{printf "%.2f" $mention.ProminenceScore}} |
                Confidence: {{printf "%.2f" $mention.ConfidenceScore}}
            </div>
            {{if $mention.Context}}
            <p>{{truncate $mention.Context 200}}</p>
            {{end}}
        </div>
        {{end}}
    {{end}}
    {{end}}

    <hr>
    <p><small>This report was generated automatically by the Citations Bot.</small></p>
</body>
</html>
`

	t := template.New("email").Funcs(template.FuncMap{
		"title":    strings.Title,
		"truncate": truncate,
	})

	t, err := t.Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Service) buildEmailText(report *models.Report) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("Brand Citations Report - %s\n", strings.Title(report.Period)))
	text.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	text.WriteString("SUMMARY\n")
	text.WriteString("=======\n")
	text.WriteString(fmt.Sprintf("Total Mentions: %d\n", report.TotalMentions))
	text.WriteString(fmt.Sprintf("Responses Analyzed: %d\n", len(report.Results)))

	if sentiment, ok := report.Summary["sentiment"].(map[string]int); ok {
		for _, label := range models.AllSentimentTypes {
			text.WriteString(fmt.Sprintf("%s Mentions: %d\n", strings.Title(string(label)), sentiment[string(label)]))
		}
	}

	if len(report.Mentions) > 0 {
		text.WriteString("\nMOST PROMINENT MENTIONS\n")
		text.WriteString("=======================\n")

		limit := 10
		if len(report.Mentions) < limit {
			limit = len(report.Mentions)
		}

		for i := 0; i < limit; i++ {
			mention := report.Mentions[i]
			text.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, mention.BrandName))
			text.WriteString(fmt.Sprintf("   Type: %s | Sentiment: %s (%.2f) | Prominence: %.2f | Confidence: %.2f\n",
				mention.MentionType, mention.SentimentType, mention.SentimentScore,
				mention.ProminenceScore, mention.ConfidenceScore))
			if mention.Context != "" {
				text.WriteString(fmt.Sprintf("   Context: %s\n", truncate(mention.Context, 200)))
			}
		}
	}

	text.WriteString("\n---\nThis report was generated automatically by the Citations Bot.\n")

	return text.String()
}

// SendAlert sends an urgent alert notification to Teams
func (s *Service) SendAlert(alert *models.Alert) error {
	if s.config.TeamsWebhookURL == "" {
		logrus.Infof("Alert suppressed (no Teams webhook configured): %s - %s", alert.Type, alert.Title)
		return nil
	}

	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("[%s] %s", strings.ToUpper(alert.Type), alert.Title),
		Text:    alert.Message,
	}

	if alert.Mention != nil {
		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: alert.Mention.BrandName,
			ActivityText:  truncate(alert.Mention.Context, 280),
			Facts: []TeamsFact{
				{Name: "Sentiment", Value: fmt.Sprintf("%s (%.2f)", alert.Mention.SentimentType, alert.Mention.SentimentScore)},
				{Name: "Confidence", Value: fmt.Sprintf("%.2f", alert.Mention.ConfidenceScore)},
				{Name: "Mention Type", Value: string(alert.Mention.MentionType)},
			},
			Markdown: true,
		})
	}

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send alert: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length] + "..."
}
