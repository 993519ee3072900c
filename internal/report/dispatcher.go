package report

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/google/uuid"

	"carboquiz/internal/common/clock"
	"carboquiz/internal/domain"
)

// Request is a normalized send-my-results request. Answers have already been
// normalized into the single tagged shape at the API boundary.
type Request struct {
	Email       string
	Name        string
	TotalCarbon float64
	TotalTrees  float64
	Answers     []domain.Answer
}

// Result reports what a dispatch did.
type Result struct {
	MessageID   string
	AlreadySent bool
}

// Dispatcher sends at most one report per (email, totalCarbon) pair while the
// marker for that pair holds. A failed send clears the marker so a later
// attempt can retry; nothing retries automatically and nothing here blocks
// the quiz flow.
type Dispatcher struct {
	mailer Mailer
	clock  clock.Clock

	mu   sync.Mutex
	sent map[string]struct{}
}

func NewDispatcher(mailer Mailer, clk clock.Clock) *Dispatcher {
	return &Dispatcher{
		mailer: mailer,
		clock:  clk,
		sent:   make(map[string]struct{}),
	}
}

// Dispatch sends the report email with the PDF attached. A duplicate request
// for a pair already sent returns AlreadySent without touching the mailer.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Result, error) {
	key := markerKey(req.Email, req.TotalCarbon)

	d.mu.Lock()
	if _, dup := d.sent[key]; dup {
		d.mu.Unlock()
		return Result{AlreadySent: true}, nil
	}
	d.sent[key] = struct{}{}
	d.mu.Unlock()

	rep := BuildReport(req.Name, req.Email, req.Answers, d.clock.Now())
	body, err := renderEmailBody(rep)
	if err == nil {
		var pdf []byte
		pdf, err = BuildPDF(rep)
		if err == nil {
			err = d.mailer.Send(ctx, Message{
				To:             req.Email,
				Subject:        "Your CarboQuiz carbon footprint report",
				HTMLBody:       body,
				Attachment:     pdf,
				AttachmentName: "carboquiz-report.pdf",
			})
		}
	}
	if err != nil {
		// Roll the marker back so the user can retry later.
		d.mu.Lock()
		delete(d.sent, key)
		d.mu.Unlock()
		return Result{}, fmt.Errorf("dispatch report: %w", err)
	}

	return Result{MessageID: uuid.New().String()}, nil
}

func markerKey(email string, totalCarbon float64) string {
	return fmt.Sprintf("%s|%.3f", strings.ToLower(strings.TrimSpace(email)), totalCarbon)
}

var emailTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1b3a2d;">
  <h1>Hi {{.PlayerName}}, here are your CarboQuiz results</h1>
  <p>Your estimated annual footprint is <strong>{{printf "%.0f" .Totals.TotalCarbon}} kg CO2e</strong>
     ({{printf "%.2f" .AnnualTonnes}} tonnes).</p>
  <p>It would take <strong>{{.TreesToOffset}} trees</strong> a full year to absorb that.</p>
  <p>Effort rating: <strong>{{.Rating.Label}}</strong> ({{.Rating.Stars}}/5) - {{.Rating.Message}}</p>
  <h2>Your biggest opportunities</h2>
  <ol>
  {{range .RecommendationLines}}<li><strong>{{index . 0}}</strong><br>{{index . 1}}<br><em>{{index . 2}}</em></li>
  {{end}}</ol>
  <p>A printable report is attached. Thanks for playing!</p>
</body>
</html>`))

type emailData struct {
	Report
	RecommendationLines [][3]string
}

func renderEmailBody(rep Report) (string, error) {
	data := emailData{Report: rep}
	for _, rec := range rep.Recommendations {
		parts := strings.SplitN(rec, "\n", 3)
		var line [3]string
		copy(line[:], parts)
		data.RecommendationLines = append(data.RecommendationLines, line)
	}
	var sb strings.Builder
	if err := emailTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return sb.String(), nil
}
