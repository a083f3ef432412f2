// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it picks concrete collaborators from the
// configuration and injects them into the tools, prompts and resources
// that depend on abstractions. No business logic lives here, only wiring.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/lacabrera/cabrera-mcp/internal/calendar"
	"github.com/lacabrera/cabrera-mcp/internal/catalog"
	"github.com/lacabrera/cabrera-mcp/internal/config"
	"github.com/lacabrera/cabrera-mcp/internal/escalation"
	"github.com/lacabrera/cabrera-mcp/internal/menu"
	"github.com/lacabrera/cabrera-mcp/internal/notify"
	"github.com/lacabrera/cabrera-mcp/internal/prompts"
	"github.com/lacabrera/cabrera-mcp/internal/reservation"
	"github.com/lacabrera/cabrera-mcp/internal/resources"
	"github.com/lacabrera/cabrera-mcp/internal/schedule"
	"github.com/lacabrera/cabrera-mcp/internal/store"
	"github.com/lacabrera/cabrera-mcp/internal/store/postgres"
	"github.com/lacabrera/cabrera-mcp/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// backend is what every storage driver provides.
type backend interface {
	reservation.Repository
	calendar.Occupancy
	escalation.HandoffStore
}

// memoryBackend serves the "memory" storage driver.
type memoryBackend struct {
	*reservation.MemoryRepository
	*escalation.MemoryHandoffs
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the storage backend and must be
// called on shutdown (typically via defer). It is always non-nil.
func New(ctx context.Context, cfg config.Config, log zerolog.Logger) (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	db, cleanup, err := openBackend(ctx, cfg, log)
	if err != nil {
		return nil, noop, err
	}

	source := catalog.NewFileSource(cfg.CatalogPath)
	engine := menu.NewEngine(menu.DefaultRules())
	cal := newCalendar(cfg, db, log)
	notifier := newNotifier(cfg, log)

	svc := reservation.NewService(engine, db, log)
	if cfg.NotifyOnReservation {
		svc.SetObserver(tools.NewNotifyBridge(notifier, log))
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		cfg.ServerName,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions(cfg.RestaurantName)),
	)

	// --- Register information tools ---

	infoTool := tools.NewRestaurantInfoTool(source)
	s.AddTool(infoTool.Definition(), infoTool.Handle)

	pricesTool := tools.NewMenuPricesTool(source)
	s.AddTool(pricesTool.Definition(), pricesTool.Handle)

	hoursTool := tools.NewBusinessHoursTool(source)
	s.AddTool(hoursTool.Definition(), hoursTool.Handle)

	detailsTool := tools.NewMenuDetailsTool(source)
	s.AddTool(detailsTool.Definition(), detailsTool.Handle)

	// --- Register menu validation tools ---

	executiveTool := tools.NewValidateExecutiveTool(engine)
	s.AddTool(executiveTool.Definition(), executiveTool.Handle)

	mansoTool := tools.NewValidateMansoTool(engine)
	s.AddTool(mansoTool.Definition(), mansoTool.Handle)

	// --- Register reservation tools ---

	createTool := tools.NewCreateReservationTool(svc)
	s.AddTool(createTool.Definition(), createTool.Handle)

	getTool := tools.NewGetReservationTool(db)
	s.AddTool(getTool.Definition(), getTool.Handle)

	availabilityTool := tools.NewCheckAvailabilityTool(cal)
	s.AddTool(availabilityTool.Definition(), availabilityTool.Handle)

	slotsTool := tools.NewAvailableSlotsTool(cal)
	s.AddTool(slotsTool.Definition(), slotsTool.Handle)

	// --- Register escalation tools ---

	escalateTool := tools.NewEscalateTool(escalation.Formatter{Restaurant: cfg.RestaurantName}, notifier)
	s.AddTool(escalateTool.Definition(), escalateTool.Handle)

	markTool := tools.NewMarkHumanTool(db)
	s.AddTool(markTool.Definition(), markTool.Handle)

	notifyTool := tools.NewAdminNotificationTool(notifier)
	s.AddTool(notifyTool.Definition(), notifyTool.Handle)

	// --- Register prompts ---

	assistantPrompt := prompts.NewAssistantPrompt(cfg.RestaurantName)
	s.AddPrompt(assistantPrompt.Definition(), assistantPrompt.Handle)

	intakePrompt := prompts.NewIntakePrompt()
	s.AddPrompt(intakePrompt.Definition(), intakePrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(engine.Rules(), db)
	s.AddResource(resourceHandler.MenuRulesResource(), resourceHandler.HandleMenuRules)
	s.AddResourceTemplate(resourceHandler.ReservationTemplate(), resourceHandler.HandleReservation)

	log.Info().
		Str("storage", cfg.StorageDriver).
		Str("calendar", cfg.CalendarMode).
		Str("notify", cfg.NotifyChannel).
		Msg("server configured")

	return s, cleanup, nil
}

// noop is the cleanup function used when nothing needs closing.
func noop() {}

func openBackend(ctx context.Context, cfg config.Config, log zerolog.Logger) (backend, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		log.Warn().Msg("storage driver is memory: reservations are lost on restart")
		return memoryBackend{reservation.NewMemoryRepository(), escalation.NewMemoryHandoffs()}, noop, nil

	case config.StoragePostgres:
		pg, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("opening postgres store: %w", err)
		}
		return pg, closer(pg.Close, log), nil

	default:
		storeCfg := store.DefaultConfig()
		if cfg.DataDir != "" {
			storeCfg.DataDir = cfg.DataDir
		}
		st, err := store.New(storeCfg)
		if err != nil {
			return nil, noop, fmt.Errorf("opening sqlite store: %w", err)
		}
		return st, closer(st.Close, log), nil
	}
}

func closer(closeFn func() error, log zerolog.Logger) func() {
	return func() {
		if err := closeFn(); err != nil {
			log.Warn().Err(err).Msg("store close")
		}
	}
}

func newCalendar(cfg config.Config, occ calendar.Occupancy, log zerolog.Logger) calendar.Calendar {
	if cfg.CalendarMode == config.CalendarStore {
		return calendar.NewCapacity(occ, cfg.SeatingCapacity, cfg.SlotDuration(), cfg.BlockedDateList(),
			schedule.Lunch, schedule.Dinner)
	}
	log.Warn().Msg("calendar integration disabled: availability is assumed, not checked")
	return calendar.AlwaysAvailable{Closed: cfg.BlockedDateList()}
}

func newNotifier(cfg config.Config, log zerolog.Logger) notify.Notifier {
	switch cfg.NotifyChannel {
	case config.NotifyWebhook:
		return notify.NewWebhookNotifier(cfg.N8NAPIURL, cfg.N8NAPIKey, &http.Client{Timeout: 10 * time.Second})
	case config.NotifySMTP:
		return notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			To:       cfg.AdminEmail,
		})
	default:
		return notify.NewLogNotifier(log)
	}
}

// serverInstructions returns the system instructions that tell the AI
// how to use the server.
func serverInstructions(restaurant string) string {
	return fmt.Sprintf(`You are connected to the reservation assistant of %s.

## Information
- Prices, hours and dishes come ONLY from get_menu_prices, get_business_hours,
  get_menu_details and get_restaurant_info. Never invent or remember a price.

## Restricted menus
- Executive menu: Monday to Friday, 12:30 to 16:30, Argentine residents only.
  Call validate_executive_menu; always ask about residency.
- Manso menu: Monday to Thursday, 12:30 to 16:30 and 20:00 to 23:30.
  Call validate_manso_menu. It is never served Friday to Sunday.
- When a validation fails, relay the message exactly and offer the alternatives
  it lists. Do not retry with different parameters on your own.

## Reservations
- Collect nombre, telefono, email, personas, fecha (YYYY-MM-DD) and hora (HH:MM).
- Check check_availability first. If availability has source "stub", no calendar
  is connected: tell the customer the table is subject to confirmation.
- create_reservation returns a reservation_id; give it to the customer.

## Escalation
- If no tool answers the question, call escalate_to_human with the customer's
  contact details and mark_as_human_required for the conversation.
- Every result has a success (or valid/available) flag. If it is false, say so.
`, restaurant)
}
