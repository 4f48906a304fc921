package webhook

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/go-github/v80/github"
	"github.com/google/uuid"
	"github.com/thomas-vilte/prtitle/internal/config"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/thomas-vilte/prtitle/internal/metrics"
)

const (
	headerEvent    = "X-GitHub-Event"
	headerDelivery = "X-GitHub-Delivery"
)

type Server struct {
	app     *fiber.App
	router  *Router
	metrics *metrics.Metrics
	log     *slog.Logger
}

type ServerOption func(*Server)

func WithMetrics(m *metrics.Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = m
	}
}

func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		s.log = l
	}
}

// NewServer registers the webhook, health and metrics routes. The webhook
// route runs the whole handler before replying.
func NewServer(cfg config.ServerConfig, router *Router, opts ...ServerOption) *Server {
	s := &Server{
		router: router,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "prtitle",
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		DisableStartupMessage: true,
	})

	path := cfg.WebhookPath
	if path == "" {
		path = "/webhook"
	}

	s.app.Post(path, s.handleWebhook)
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})
	if s.metrics != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))
	}

	return s
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleWebhook(c *fiber.Ctx) error {
	// Header values alias the request buffer; copies outlive the request as
	// metric labels and log fields.
	event := utils.CopyString(c.Get(headerEvent))
	deliveryID := utils.CopyString(c.Get(headerDelivery))
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}

	log := s.log.With("delivery_id", deliveryID, "event", event)
	ctx := logger.WithLogger(c.UserContext(), log)

	if event == "" {
		s.metrics.WebhookEvent("", metrics.OutcomeInvalid)
		return s.reject(ctx, c, fiber.StatusBadRequest, domainErrors.ErrMissingEventType)
	}

	if !s.router.HandlesEvent(event) {
		log.Debug("event ignored")
		s.metrics.WebhookEvent(event, metrics.OutcomeIgnored)
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "ignored"})
	}

	payload, err := github.ParseWebHook(event, c.Body())
	if err != nil {
		s.metrics.WebhookEvent(event, metrics.OutcomeInvalid)
		return s.reject(ctx, c, fiber.StatusBadRequest, domainErrors.ErrInvalidPayload.WithError(err))
	}

	var action string
	if a, ok := payload.(interface{ GetAction() string }); ok {
		action = a.GetAction()
	}
	kind := KindOf(event, action)

	handler, ok := s.router.Lookup(kind)
	if !ok {
		log.Debug("event kind ignored", "kind", kind)
		s.metrics.WebhookEvent(string(kind), metrics.OutcomeIgnored)
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "ignored"})
	}

	ctx = logger.With(ctx, "kind", kind)
	logger.Info(ctx, "processing webhook delivery")

	res, err := handler(ctx, payload, Delivery{ID: deliveryID, Event: event, Kind: kind})
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidPayload) {
			s.metrics.WebhookEvent(string(kind), metrics.OutcomeInvalid)
			return s.reject(ctx, c, fiber.StatusBadRequest, err)
		}
		s.metrics.WebhookEvent(string(kind), metrics.OutcomeFailed)
		return s.reject(ctx, c, fiber.StatusInternalServerError, err)
	}

	s.metrics.WebhookEvent(string(kind), metrics.OutcomeProcessed)

	body := fiber.Map{"status": "processed"}
	if res.SuggestedTitle != "" {
		body["suggested_title"] = res.SuggestedTitle
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

func (s *Server) reject(ctx context.Context, c *fiber.Ctx, status int, err error) error {
	logger.Error(ctx, "webhook delivery failed", err, "status", status)
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
