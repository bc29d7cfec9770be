//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "landing-orders-api"
	ConsumerName = "landing-page"

	StateOrdersBaseline = "orders baseline"
	StateOrderExists    = "order with id 1717408800000 exists"
	StateOrderMissing   = "no order with id 999"
)

const (
	ExistingOrderID = "1717408800000"
	MissingOrderID  = "999"
)

const (
	exampleClientName = "Ana"
	exampleObjective  = "vender curso"
	exampleWhatsApp   = "+5511987654321"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the landing page consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleSubmission provides stable request data for pact interactions.
func ExampleSubmission() map[string]any {
	return map[string]any{
		"plano": "Essencial",
		"detalhes": map[string]any{
			"nome":         exampleClientName,
			"objetivo":     exampleObjective,
			"callToAction": "Compre já",
			"whatsapp":     exampleWhatsApp,
		},
	}
}

// ExampleOrderPayload mirrors the stored-order wire shape.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"id":            ExistingOrderID,
		"detalhes":      ExampleSubmission()["detalhes"],
		"plano":         "Essencial",
		"preco":         120,
		"status":        "PENDENTE",
		"prazo_entrega": "2024-06-10",
		"created_at":    "2024-06-03T10:00:00Z",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
