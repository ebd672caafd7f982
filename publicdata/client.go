package publicdata

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sinbum/korea-public-data-be-sub000/auth"
	"github.com/sinbum/korea-public-data-be-sub000/envelope"
	"github.com/sinbum/korea-public-data-be-sub000/logger"
	"github.com/sinbum/korea-public-data-be-sub000/retry"
	"github.com/sinbum/korea-public-data-be-sub000/schema"
	"github.com/sinbum/korea-public-data-be-sub000/transport"
)

// tracerName identifies this library's spans.
const tracerName = "github.com/sinbum/korea-public-data-be-sub000/publicdata"

// errEmptyBody marks a 2xx response that carried no content.
var errEmptyBody = errors.New("publicdata: empty response body")

// Config configures a Client.
type Config struct {
	// BaseURL is the upstream service root. Required.
	BaseURL string
	// Strategy injects credentials into each request. Defaults to auth.None.
	Strategy auth.Strategy
	// Policy drives the retry loop. Defaults to an exponential policy with
	// retry.DefaultConfig.
	Policy retry.Policy
	// Logger receives structured call logs. Defaults to a no-op logger.
	Logger *logger.Logger
	// Timeout bounds a single attempt.
	Timeout time.Duration
	// HTTPClient substitutes the underlying HTTP client (tests).
	HTTPClient *http.Client
}

// Client is the façade over auth, retry, transport, and normalization.
// One call composes them all; the client itself holds only configuration
// and is safe for concurrent use.
type Client struct {
	transport *transport.Transport
	strategy  auth.Strategy
	policy    retry.Policy
	log       *logger.Logger
	tracer    trace.Tracer
}

// New creates a Client from cfg.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("publicdata: base URL is required")
	}
	if cfg.Strategy == nil {
		cfg.Strategy = auth.None()
	}
	if cfg.Policy == nil {
		cfg.Policy = retry.NewExponential(retry.DefaultConfig())
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	opts := []transport.Option{}
	if cfg.HTTPClient != nil {
		opts = append(opts, transport.WithHTTPClient(cfg.HTTPClient))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, transport.WithTimeout(cfg.Timeout))
	}

	return &Client{
		transport: transport.New(cfg.BaseURL, opts...),
		strategy:  cfg.Strategy,
		policy:    cfg.Policy,
		log:       cfg.Logger.WithComponent("publicdata"),
		tracer:    otel.Tracer(tracerName),
	}, nil
}

// Call fetches one page from the endpoint and returns the typed result.
// Domain parameter names are remapped to the upstream's, credentials are
// applied, the attempt loop runs under the retry policy, and the terminal
// body is normalized and validated. A completed round trip never panics:
// failures come back as a Result with Success=false.
func (c *Client) Call(ctx context.Context, endpoint string, params map[string]string) *Result {
	requestID := uuid.NewString()
	start := time.Now()

	log := c.log.WithFields(map[string]interface{}{
		logger.FieldRequestID: requestID,
		logger.FieldEndpoint:  endpoint,
	})

	ctx, span := c.tracer.Start(ctx, "publicdata.Call", trace.WithAttributes(
		attribute.String("upstream.endpoint", endpoint),
		attribute.String("request.id", requestID),
	))
	defer span.End()

	req := transport.Request{
		Method: http.MethodGet,
		Path:   endpoint,
		Query:  remapParams(params),
	}
	// JSON is the preferred response format; XML is accepted as a
	// fallback on parse.
	req.SetQuery("type", "json")
	req.SetHeader("Accept", "application/json")

	authed, err := c.strategy.Apply(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "auth failed")
		log.Error("credential injection failed", logger.ErrorFields("auth", err))
		return failure(err, 0)
	}

	attempts := 0
	resp, err := retry.Do(ctx, c.policy, func() (*transport.Response, error) {
		attempts++
		return c.transport.Do(ctx, authed)
	})
	span.SetAttributes(attribute.Int("upstream.attempts", attempts))

	if err != nil {
		statusCode := 0
		var terr *transport.Error
		if errors.As(err, &terr) {
			statusCode = terr.StatusCode
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream call failed")
		log.Error("upstream call failed", logger.Fields(
			logger.FieldError, err.Error(),
			logger.FieldStatus, statusCode,
			logger.FieldAttempt, attempts,
		))
		return failure(err, statusCode)
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 {
		span.SetStatus(codes.Error, "empty body")
		log.Error("upstream returned empty body", logger.Fields(logger.FieldStatus, resp.StatusCode))
		return failure(errEmptyBody, resp.StatusCode)
	}

	env, err := envelope.Normalize(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		log.Error("response parsing failed", logger.ErrorFields("normalize", err))
		return failure(err, resp.StatusCode)
	}

	kind := schema.KindOf(endpoint)
	items, err := schema.Decode(kind, env.Items, c.log)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "schema decode failed")
		log.Error("schema decoding failed", logger.ErrorFields("decode", err))
		return failure(err, resp.StatusCode)
	}

	log.Debug("call completed", logger.Fields(
		logger.FieldKind, kind.String(),
		logger.FieldStatus, resp.StatusCode,
		logger.FieldAttempt, attempts,
		logger.FieldDuration, time.Since(start).Milliseconds(),
		"items", len(items),
	))

	return &Result{
		Success:      true,
		Items:        items,
		StatusCode:   resp.StatusCode,
		TotalCount:   env.TotalCount,
		CurrentCount: env.CurrentCount,
	}
}
