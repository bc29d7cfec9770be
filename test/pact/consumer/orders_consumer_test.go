//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/devqueiroz/landing-orders/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type orderPayload struct {
	ID           string         `json:"id"`
	Details      map[string]any `json:"detalhes"`
	Plan         string         `json:"plano"`
	Price        int            `json:"preco"`
	Status       string         `json:"status"`
	DeliveryDate string         `json:"prazo_entrega"`
	CreatedAt    string         `json:"created_at"`
}

type submissionResponse struct {
	Order       orderPayload `json:"pedido"`
	WhatsAppURL string       `json:"linkWhatsApp"`
}

type orderDetailResponse struct {
	Order  orderPayload `json:"pedido"`
	Prompt string       `json:"prompt"`
}

type apiError struct {
	status  int
	message string
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.message, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestLandingPageContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	orderBodyMatcher := matchers.Map{
		"id": matchers.Regex(pacttest.ExistingOrderID, `\d+`),
		"detalhes": matchers.Map{
			"nome":     matchers.Like("Ana"),
			"whatsapp": matchers.Regex("+5511987654321", `^\+\d{9,18}$`),
		},
		"plano":         matchers.Term("Essencial", "Essencial|Profissional|Premium"),
		"preco":         matchers.Like(120),
		"status":        matchers.Term("PENDENTE", "PENDENTE|EM ANDAMENTO|CONCLUIDA"),
		"prazo_entrega": matchers.Regex("2024-06-10", `\d{4}-\d{2}-\d{2}`),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateOrdersBaseline).
		UponReceiving("a request to submit an order").
		WithRequest("POST", "/pedidos", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.MapMatcher(mapToMatchers(pacttest.ExampleSubmission())))
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"pedido":       orderBodyMatcher,
				"linkWhatsApp": matchers.Regex("https://wa.me/+5511987654321?text=Ol%C3%A1", `^https://wa\.me/.+`),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to fetch an existing order").
		WithRequest("GET", "/pedidos/"+pacttest.ExistingOrderID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"pedido": orderBodyMatcher,
				"prompt": matchers.Like("Crie uma landing page de 1 página (Home) com:"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a request for a missing order").
		WithRequest("GET", "/pedidos/"+pacttest.MissingOrderID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"erro": matchers.S("Pedido não encontrado"),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newOrderClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		created, err := client.SubmitOrder(ctx, pacttest.ExampleSubmission())
		if err != nil {
			return fmt.Errorf("submit order: %w", err)
		}
		if created.Order.ID == "" || created.WhatsAppURL == "" {
			return fmt.Errorf("expected stored order and contact link, got %+v", created)
		}

		fetched, err := client.GetOrder(ctx, pacttest.ExistingOrderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if fetched.Order.ID != pacttest.ExistingOrderID || fetched.Prompt == "" {
			return fmt.Errorf("expected order %s with brief, got %+v", pacttest.ExistingOrderID, fetched)
		}

		if _, err := client.GetOrder(ctx, pacttest.MissingOrderID); err == nil {
			return fmt.Errorf("expected 404 for order %s", pacttest.MissingOrderID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		return nil
	})
	require.NoError(t, err)
}

func mapToMatchers(values map[string]any) map[string]matchers.Matcher {
	out := make(map[string]matchers.Matcher, len(values))
	for k, v := range values {
		if nested, ok := v.(map[string]any); ok {
			out[k] = matchers.MapMatcher(mapToMatchers(nested))
			continue
		}
		out[k] = matchers.Like(v)
	}
	return out
}

type orderClient struct {
	baseURL    string
	httpClient *http.Client
}

func newOrderClient(config pactconsumer.MockServerConfig) *orderClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &orderClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *orderClient) SubmitOrder(ctx context.Context, submission map[string]any) (*submissionResponse, error) {
	body, err := json.Marshal(submission)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pedidos", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload submissionResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *orderClient) GetOrder(ctx context.Context, id string) (*orderDetailResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/pedidos/"+id, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload orderDetailResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func decodeAPIError(res *http.Response) error {
	var body struct {
		Erro string `json:"erro"`
	}
	_ = json.NewDecoder(res.Body).Decode(&body)
	message := body.Erro
	if message == "" {
		message = "api error"
	}
	return apiError{status: res.StatusCode, message: message}
}
