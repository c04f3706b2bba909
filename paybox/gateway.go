package paybox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kevin07696/paybox-client/domain"
	"github.com/kevin07696/paybox-client/ports"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config holds everything the gateway needs at construction. Nothing is
// reloaded afterwards; build a new Gateway to change credentials.
type Config struct {
	// Site is the 7-digit Paybox site number.
	Site string
	// Rank is the 2-digit rank (machine) number within the site.
	Rank string
	// Key is the CLE password for the site/rank pair.
	Key string

	// Endpoint is the primary PPPS URL. Defaults to ProductionURL.
	Endpoint string
	// BackupEndpoint receives an identical re-send when the primary
	// answers with an unavailability status code. Empty disables the
	// failover.
	BackupEndpoint string

	// Currency is the ISO 4217 alphabetic code applied to every call.
	// Defaults to EUR.
	Currency string

	// Activity is the ACTIVITE calling-context code. Defaults to 024
	// (internet payment).
	Activity string

	// Timeout bounds the HTTPS exchange when the gateway builds its own
	// HTTP client. Defaults to 30s.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound calls client-side; Paybox
	// caps request rates per site. Zero disables the limiter.
	RequestsPerSecond float64
	// Burst is the limiter burst size; defaults to 1 when throttled.
	Burst int
}

// SplitLogin splits the processor's combined login format (7-digit site
// followed by the rank) into its two wire fields.
func SplitLogin(login string) (site, rank string) {
	if len(login) <= 7 {
		return login, ""
	}
	return login[:7], login[7:]
}

func (c *Config) normalize() (currencyNumeric string, err error) {
	if c.Site == "" {
		return "", domain.NewValidationError(string(FieldSite), "site number is required")
	}
	if c.Rank == "" {
		return "", domain.NewValidationError(string(FieldRank), "rank number is required")
	}
	if c.Key == "" {
		return "", domain.NewValidationError(string(FieldKey), "key is required")
	}
	if c.Endpoint == "" {
		c.Endpoint = ProductionURL
	}
	if c.Currency == "" {
		c.Currency = "EUR"
	}
	if c.Activity == "" {
		c.Activity = defaultActivity
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	numeric, ok := CurrencyCode(c.Currency)
	if !ok {
		return "", domain.NewValidationError(string(FieldCurrency), fmt.Sprintf("unsupported currency %q", c.Currency))
	}
	return numeric, nil
}

// Gateway is the public operation surface over the Paybox Direct
// protocol. Safe for concurrent use; the only shared mutable state is
// the atomic question-number counter.
type Gateway struct {
	config     *Config
	builder    *requestBuilder
	httpClient ports.HTTPClient
	logger     *zap.Logger
	breaker    *CircuitBreaker
	limiter    *rate.Limiter
}

// New creates a Gateway. httpClient may be nil, in which case a default
// client with the configured timeout is used. logger may be nil for a
// no-op logger.
func New(config *Config, httpClient ports.HTTPClient, logger *zap.Logger) (*Gateway, error) {
	currencyNumeric, err := config.normalize()
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		burst := config.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), burst)
	}

	return &Gateway{
		config: config,
		builder: &requestBuilder{
			site:     config.Site,
			rank:     config.Rank,
			key:      config.Key,
			currency: currencyNumeric,
			activity: config.Activity,
			seq:      newQuestionSequence(time.Now()),
			now:      time.Now,
		},
		httpClient: httpClient,
		logger:     logger,
		breaker:    NewCircuitBreaker(DefaultCircuitBreakerConfig()),
		limiter:    limiter,
	}, nil
}

// Purchase debits the card in one step (authorization and capture).
func (g *Gateway) Purchase(ctx context.Context, amount domain.Money, card domain.CreditCard, opts Options) (*domain.Response, error) {
	fs, err := g.builder.NewTransaction(TypePurchase, amount, card, opts)
	return g.commit(ctx, "purchase", fs, err)
}

// Authorize places a hold on the card without moving funds. The
// returned authorization must be captured to settle.
func (g *Gateway) Authorize(ctx context.Context, amount domain.Money, card domain.CreditCard, opts Options) (*domain.Response, error) {
	fs, err := g.builder.NewTransaction(TypeAuthorize, amount, card, opts)
	return g.commit(ctx, "authorize", fs, err)
}

// Capture settles a previously authorized amount. Partial captures are
// allowed; Paybox enforces the ceiling and reports overruns as declines.
func (g *Gateway) Capture(ctx context.Context, amount domain.Money, auth domain.AuthorizationToken, opts Options) (*domain.Response, error) {
	fs, err := g.builder.Dependent(TypeCapture, amount, auth, opts)
	return g.commit(ctx, "capture", fs, err)
}

// Credit refunds part or all of a settled transaction.
func (g *Gateway) Credit(ctx context.Context, amount domain.Money, auth domain.AuthorizationToken, opts Options) (*domain.Response, error) {
	fs, err := g.builder.Dependent(TypeCredit, amount, auth, opts)
	return g.commit(ctx, "credit", fs, err)
}

// Void cancels a prior authorization or purchase. The original amount
// must be restated in opts.Amount; Paybox also wants the card expiry
// re-sent when the caller still has it (opts.Expiry).
func (g *Gateway) Void(ctx context.Context, auth domain.AuthorizationToken, opts Options) (*domain.Response, error) {
	fs, err := g.builder.Void(TypeVoid, auth, opts)
	return g.commit(ctx, "void", fs, err)
}

// CreateRecurring registers a subscriber agreement with the card. The
// response carries both an authorization for the initial amount and the
// subscriber card token (SubscriberToken) used by later calls.
func (g *Gateway) CreateRecurring(ctx context.Context, amount domain.Money, card domain.CreditCard, opts Options) (*domain.Response, error) {
	fs, err := g.builder.Subscriber(TypeSubscriberRegister, amount, card, opts)
	return g.commit(ctx, "create_recurring", fs, err)
}

// UpdateRecurring replaces the card held against the subscription.
func (g *Gateway) UpdateRecurring(ctx context.Context, amount domain.Money, card domain.CreditCard, opts Options) (*domain.Response, error) {
	fs, err := g.builder.Subscriber(TypeSubscriberUpdate, amount, card, opts)
	return g.commit(ctx, "update_recurring", fs, err)
}

// CancelRecurring deletes the subscriber agreement. Terminal from any
// subscription state; cancelling an unknown or already-cancelled
// subscription surfaces as a normal decline with Paybox's message.
func (g *Gateway) CancelRecurring(ctx context.Context, handle domain.SubscriptionHandle) (*domain.Response, error) {
	fs, err := g.builder.SubscriberCancel(handle)
	return g.commit(ctx, "cancel_recurring", fs, err)
}

// AuthorizeRecurring places a hold against the subscription. card.Number
// carries the subscriber token returned at registration, not a PAN.
func (g *Gateway) AuthorizeRecurring(ctx context.Context, amount domain.Money, card domain.CreditCard, opts Options) (*domain.Response, error) {
	fs, err := g.builder.Subscriber(TypeSubscriberAuthorize, amount, card, opts)
	return g.commit(ctx, "authorize_recurring", fs, err)
}

// PurchaseRecurring debits the subscription in one step.
func (g *Gateway) PurchaseRecurring(ctx context.Context, amount domain.Money, card domain.CreditCard, opts Options) (*domain.Response, error) {
	fs, err := g.builder.Subscriber(TypeSubscriberPurchase, amount, card, opts)
	return g.commit(ctx, "purchase_recurring", fs, err)
}

// CaptureRecurring settles a recurring authorization.
func (g *Gateway) CaptureRecurring(ctx context.Context, amount domain.Money, auth domain.AuthorizationToken, opts Options) (*domain.Response, error) {
	fs, err := g.builder.Dependent(TypeSubscriberCapture, amount, auth, opts)
	return g.commit(ctx, "capture_recurring", fs, err)
}

// CreditRecurring refunds a settled recurring transaction.
func (g *Gateway) CreditRecurring(ctx context.Context, amount domain.Money, auth domain.AuthorizationToken, opts Options) (*domain.Response, error) {
	fs, err := g.builder.Dependent(TypeSubscriberCredit, amount, auth, opts)
	return g.commit(ctx, "credit_recurring", fs, err)
}

// VoidRecurring cancels a recurring authorization or purchase. The
// original amount must be restated in opts.Amount.
func (g *Gateway) VoidRecurring(ctx context.Context, auth domain.AuthorizationToken, opts Options) (*domain.Response, error) {
	fs, err := g.builder.Void(TypeSubscriberVoid, auth, opts)
	return g.commit(ctx, "void_recurring", fs, err)
}

// commit runs the shared tail of every operation: encode, POST,
// interpret. A buildErr short-circuits before any network activity so
// incomplete calls are free.
func (g *Gateway) commit(ctx context.Context, operation string, fs FieldSet, buildErr error) (*domain.Response, error) {
	if buildErr != nil {
		g.logger.Debug("Rejected Paybox request before send",
			zap.String("operation", operation),
			zap.Error(buildErr),
		)
		return nil, buildErr
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
		}
	}

	body := fs.Encode()
	question := fs.Get(FieldQuestionNumber)

	g.logger.Info("Processing Paybox transaction",
		zap.String("operation", operation),
		zap.String("type", fs.Get(FieldType)),
		zap.String("question", question),
		zap.String("amount", fs.Get(FieldAmount)),
		zap.String("reference", fs.Get(FieldReference)),
	)

	start := time.Now()
	transactionsInFlight.Inc()
	defer transactionsInFlight.Dec()
	outcome := &responseOutcome{}
	defer observeTransaction(operation, start, outcome)

	resp, err := g.roundTrip(ctx, g.config.Endpoint, body)
	if err != nil {
		outcome.failed = true
		if errors.Is(err, ErrCircuitOpen) {
			g.logger.Warn("Circuit breaker is open, rejecting Paybox request",
				zap.String("operation", operation),
				zap.String("circuit_state", g.breaker.State().String()),
			)
		} else {
			g.logger.Error("Paybox call failed",
				zap.String("operation", operation),
				zap.String("question", question),
				zap.Error(err),
			)
		}
		return nil, err
	}

	// The platform refused the call before processing it; the identical
	// request is safe to re-send to the backup host.
	if resp.Unavailable && g.config.BackupEndpoint != "" {
		g.logger.Warn("Paybox primary reported unavailability, re-sending to backup",
			zap.String("operation", operation),
			zap.String("question", question),
			zap.String("code", resp.Code),
		)
		if backupResp, backupErr := g.roundTrip(ctx, g.config.BackupEndpoint, body); backupErr == nil {
			resp = backupResp
		} else {
			g.logger.Error("Paybox backup call failed, keeping primary response",
				zap.String("operation", operation),
				zap.Error(backupErr),
			)
		}
	}

	outcome.approved = resp.Success

	g.logger.Info("Completed Paybox transaction",
		zap.String("operation", operation),
		zap.String("question", question),
		zap.String("code", resp.Code),
		zap.Bool("approved", resp.Success),
		zap.String("authorization", string(resp.Authorization)),
	)

	return resp, nil
}

// roundTrip performs one HTTPS exchange and interprets the body. Only
// the transport leg runs inside the circuit breaker: declines and
// protocol errors are delivered responses and must not trip it.
func (g *Gateway) roundTrip(ctx context.Context, endpoint string, body []byte) (*domain.Response, error) {
	var raw []byte
	err := g.breaker.Call(func() error {
		b, err := g.exchange(ctx, endpoint, body)
		if err != nil {
			return err
		}
		raw = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return interpret(raw)
}

func (g *Gateway) exchange(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &domain.TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.TransportError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Endpoint: endpoint, Err: err}
	}
	return raw, nil
}
