// Package freight quotes packages against the Correios CalcPrecoPrazo service.
package freight

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseURL     = "http://ws.correios.com.br/calculador/CalcPrecoPrazo.aspx"
	DefaultServiceCode = "04014"
	defaultTimeout     = 10 * time.Second

	responseBodyReadLimit int64 = 64 * 1024
)

var errOriginRequired = errors.New("origin postal code is required")

type Client struct {
	httpClient  *http.Client
	timeout     time.Duration
	baseURL     string
	origin      string
	serviceCode string
	metrics     *Metrics
	group       singleflight.Group
}

var _ port.FreightCalculator = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout bounds every carrier call, there is no retry.
// It applies to the client given by WithHTTPClient too, in any order.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithServiceCode(code string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(code); trimmed != "" {
			c.serviceCode = trimmed
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func NewClient(originPostalCode string, opts ...Option) (*Client, error) {
	origin, err := domain.NormalizePostalCode(originPostalCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errOriginRequired, err)
	}

	client := &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		baseURL:     DefaultBaseURL,
		origin:      origin,
		serviceCode: DefaultServiceCode,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.timeout > 0 {
		httpClient := *client.httpClient
		httpClient.Timeout = client.timeout
		client.httpClient = &httpClient
	}

	return client, nil
}

// Quote asks the carrier for price and lead time. Identical concurrent requests share one call.
func (c *Client) Quote(ctx context.Context, req domain.FreightRequest) (domain.FreightQuote, error) {
	destination, err := domain.NormalizePostalCode(req.DestinationPostalCode)
	if err != nil {
		return domain.FreightQuote{}, fmt.Errorf("%w: destination: %w", domain.ErrNoQuote, err)
	}
	req.DestinationPostalCode = destination

	if req.OriginPostalCode == "" {
		req.OriginPostalCode = c.origin
	}
	if req.ServiceCode == "" {
		req.ServiceCode = c.serviceCode
	}

	query := buildQuery(req)

	// the shared call outlives any single caller
	ch := c.group.DoChan(query.Encode(), func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.callTimeout())
		defer cancel()

		return c.quote(callCtx, query)
	})

	select {
	case <-ctx.Done():
		return domain.FreightQuote{}, fmt.Errorf("quote: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return domain.FreightQuote{}, res.Err
		}
		return res.Val.(domain.FreightQuote), nil
	}
}

func (c *Client) callTimeout() time.Duration {
	if c.httpClient.Timeout > 0 {
		return c.httpClient.Timeout
	}
	return defaultTimeout
}

func (c *Client) quote(ctx context.Context, query url.Values) (quote domain.FreightQuote, err error) {
	start := time.Now()
	defer func() {
		outcome := outcomeOK
		switch {
		case errors.Is(err, domain.ErrNoQuote):
			outcome = outcomeNoQuote
		case err != nil:
			outcome = outcomeError
		}
		c.metrics.observe(outcome, time.Since(start))
	}()

	endpoint := c.baseURL + "?" + query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.FreightQuote{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.FreightQuote{}, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return domain.FreightQuote{}, fmt.Errorf("io.ReadAll: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return domain.FreightQuote{}, fmt.Errorf("carrier returned status %d", resp.StatusCode)
	}

	var result calcResult
	if err := xml.Unmarshal(body, &result); err != nil {
		return domain.FreightQuote{}, fmt.Errorf("xml.Unmarshal: %w", err)
	}

	return result.toQuote(query.Get("nCdServico"))
}

func buildQuery(req domain.FreightRequest) url.Values {
	q := url.Values{}
	q.Set("nCdEmpresa", "")
	q.Set("sDsSenha", "")
	q.Set("nCdServico", req.ServiceCode)
	q.Set("sCepOrigem", req.OriginPostalCode)
	q.Set("sCepDestino", req.DestinationPostalCode)
	q.Set("nVlPeso", formatDecimal(req.Weight))
	q.Set("nCdFormato", "1")
	q.Set("nVlComprimento", formatDecimal(req.Length))
	q.Set("nVlAltura", formatDecimal(req.Height))
	q.Set("nVlLargura", formatDecimal(req.Width))
	q.Set("nVlDiametro", "0")
	q.Set("sCdMaoPropria", "S")
	q.Set("nVlValorDeclarado", formatDecimal(req.DeclaredValue))
	q.Set("sCdAvisoRecebimento", "S")
	q.Set("StrRetorno", "xml")
	return q
}

// formatDecimal writes the comma decimal separator the carrier expects.
func formatDecimal(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// parseDecimal reads carrier amounts such as "1.234,56".
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	return decimal.NewFromString(s)
}

type calcResult struct {
	XMLName  xml.Name  `xml:"Servicos"`
	Services []service `xml:"cServico"`
}

type service struct {
	Code      string `xml:"Codigo"`
	Value     string `xml:"Valor"`
	LeadTime  string `xml:"PrazoEntrega"`
	ErrorCode string `xml:"Erro"`
	ErrorMsg  string `xml:"MsgErro"`
}

func (r calcResult) toQuote(serviceCode string) (domain.FreightQuote, error) {
	if len(r.Services) == 0 {
		return domain.FreightQuote{}, fmt.Errorf("%w: empty carrier response", domain.ErrNoQuote)
	}

	s := r.Services[0]

	errCode := strings.TrimSpace(s.ErrorCode)
	errMsg := strings.TrimSpace(s.ErrorMsg)
	if (errCode != "" && errCode != "0") || errMsg != "" {
		return domain.FreightQuote{}, fmt.Errorf("%w: carrier error %s: %s", domain.ErrNoQuote, errCode, errMsg)
	}

	cost, err := parseDecimal(s.Value)
	if err != nil {
		return domain.FreightQuote{}, fmt.Errorf("parseDecimal[%s]: %w", s.Value, err)
	}

	leadTime, err := strconv.Atoi(strings.TrimSpace(s.LeadTime))
	if err != nil {
		return domain.FreightQuote{}, fmt.Errorf("strconv.Atoi[%s]: %w", s.LeadTime, err)
	}

	method := strings.TrimSpace(s.Code)
	if method == "" {
		method = serviceCode
	}

	return domain.FreightQuote{
		Cost:         cost,
		LeadTimeDays: leadTime,
		Method:       method,
	}, nil
}
