//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/devqueiroz/landing-orders/test/pact"

	"github.com/devqueiroz/landing-orders/internal/domains/orders/adapters/memory"
	ordersobs "github.com/devqueiroz/landing-orders/internal/domains/orders/adapters/observability"
	"github.com/devqueiroz/landing-orders/internal/domains/orders/application"
	"github.com/devqueiroz/landing-orders/internal/domains/orders/domain"
	"github.com/devqueiroz/landing-orders/internal/httpapi"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestOrdersProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateOrdersBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetOrders(t)
			return nil, nil
		},
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetOrders(t)
			if setup {
				app.seedOrder(t, pacttest.ExistingOrderID)
			}
			return nil, nil
		},
		pacttest.StateOrderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetOrders(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetOrders(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo   *memory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	repo := memory.NewRepository()
	service := ordersobs.New(application.NewService(repo))
	router := httpapi.NewRouter(httpapi.NewOrdersAPI(service))

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:   repo,
		server: server,
	}
}

func (a *contractProviderApp) resetOrders(t testing.TB) {
	t.Helper()
	orders, err := a.repo.List(context.Background())
	require.NoError(t, err)
	for _, order := range orders {
		require.NoError(t, a.repo.Delete(context.Background(), order.ID))
	}
}

func (a *contractProviderApp) seedOrder(t testing.TB, id string) {
	t.Helper()
	_, err := a.repo.Save(context.Background(), &domain.Order{
		ID: id,
		Details: domain.Details{
			domain.DetailName:         "Ana",
			domain.DetailObjective:    "vender curso",
			domain.DetailCallToAction: "Compre já",
			domain.DetailWhatsApp:     "+5511987654321",
		},
		Plan:         domain.PlanEssential,
		Price:        120,
		Status:       domain.StatusPending,
		DeliveryDate: "2024-06-10",
		CreatedAt:    time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}
