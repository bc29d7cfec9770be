package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Plan enumerates the service tiers a client can order.
type Plan string

const (
	PlanEssential    Plan = "Essencial"
	PlanProfessional Plan = "Profissional"
	PlanPremium      Plan = "Premium"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending    Status = "PENDENTE"
	StatusInProgress Status = "EM ANDAMENTO"
	StatusCompleted  Status = "CONCLUIDA"
)

var (
	ErrInvalidPlan     = errors.New("plan is invalid")
	ErrInvalidStatus   = errors.New("order status is invalid")
	ErrMissingDetails  = errors.New("required detail fields are missing")
	ErrInvalidWhatsApp = errors.New("whatsapp number is invalid")
)

// Detail keys the service validates or reads. Anything else the client sends
// is stored and echoed back opaquely.
const (
	DetailName         = "nome"
	DetailObjective    = "objetivo"
	DetailCallToAction = "callToAction"
	DetailWhatsApp     = "whatsapp"
	DetailStyle        = "estilo"
	DetailColors       = "cores"

	DetailComplexIllustration = "ilustracaoComplexa"
	DetailAdvancedAnimations  = "animacoesAvancadas"
)

// whatsappPattern: leading plus, 1-3 digit country code, 8-15 digit subscriber
// number, nothing else.
var whatsappPattern = regexp.MustCompile(`^\+\d{1,3}\d{8,15}$`)

// Details carries the client-submitted project attributes as decoded JSON.
type Details map[string]any

// String returns the trimmed string value for key, or "" when the key is
// absent or not a string.
func (d Details) String(key string) string {
	if v, ok := d[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Flag reports whether the value stored under key is truthy. JSON decoding
// yields bools, strings, or float64 numbers.
func (d Details) Flag(key string) bool {
	switch v := d[key].(type) {
	case bool:
		return v
	case string:
		return v != "" && v != "false"
	case float64:
		return v != 0
	default:
		return false
	}
}

// Order models a client's landing-page request plus its derived fields.
type Order struct {
	ID           string
	Details      Details
	Plan         Plan
	Price        int
	Status       Status
	DeliveryDate string
	CreatedAt    time.Time
}

// ValidPlan reports whether plan is one of the three tiers.
func ValidPlan(plan Plan) bool {
	switch plan {
	case PlanEssential, PlanProfessional, PlanPremium:
		return true
	default:
		return false
	}
}

// ValidStatus reports whether status is one of the three known states.
func ValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// ValidWhatsApp reports whether number matches the accepted phone format.
func ValidWhatsApp(number string) bool {
	return whatsappPattern.MatchString(number)
}

// ValidateSubmission enforces the invariants for a new order: a known plan,
// the mandatory detail fields, and a well-formed contact number.
func ValidateSubmission(plan Plan, details Details) error {
	if !ValidPlan(plan) {
		return ErrInvalidPlan
	}
	if details.String(DetailName) == "" ||
		details.String(DetailObjective) == "" ||
		details.String(DetailCallToAction) == "" {
		return ErrMissingDetails
	}
	if !ValidWhatsApp(details.String(DetailWhatsApp)) {
		return ErrInvalidWhatsApp
	}
	return nil
}

// UpdateStatus ensures only known states are accepted and defaults to pending.
func (o *Order) UpdateStatus(status Status) error {
	if status == "" {
		status = StatusPending
	}
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}
