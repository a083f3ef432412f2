package reservation

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lacabrera/cabrera-mcp/internal/menu"
)

// requiredFields lists the fields FieldCheck looks at, in the order
// they are reported back.
var requiredFields = []string{"nombre", "telefono", "email", "personas", "fecha", "hora"}

// Service runs the reservation workflow.
type Service struct {
	engine   *menu.Engine
	repo     Repository
	validate *validator.Validate
	observer Observer
	log      zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewService creates a Service. engine and repo must be non-nil.
func NewService(engine *menu.Engine, repo Repository, log zerolog.Logger) *Service {
	return &Service{
		engine:   engine,
		repo:     repo,
		validate: newValidator(),
		log:      log.With().Str("component", "reservation").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    NewID,
	}
}

// SetObserver injects an optional Observer. Nil is safe.
func (s *Service) SetObserver(o Observer) { s.observer = o }

// NewID returns a collision-resistant reservation identifier.
func NewID() string {
	return "RES-" + uuid.NewString()
}

// Create runs Received → FieldCheck → InvariantCheck → MenuCheck and
// ends in Persisted, Rejected or Errored.
func (s *Service) Create(ctx context.Context, req Request) Outcome {
	if missing := missingFields(req); len(missing) > 0 {
		return Outcome{
			Message:   "Missing required fields: " + strings.Join(missing, ", "),
			State:     StateRejected,
			ErrorKind: KindMissingField,
			Errors:    missing,
		}
	}

	if invalid := s.invalidFields(req); len(invalid) > 0 {
		return InvalidOutcome(invalid)
	}

	if rejected, ok := s.checkMenu(req); !ok {
		return rejected
	}

	return s.persist(ctx, req)
}

// InvalidOutcome is the rejection for fields that are present but
// malformed. Callers decoding arguments use it for values that never
// reach the Request.
func InvalidOutcome(fields []string) Outcome {
	return Outcome{
		Message:   "Invalid fields: " + strings.Join(fields, ", "),
		State:     StateRejected,
		ErrorKind: KindInvalidField,
		Errors:    fields,
	}
}

// DecodeFailure is the rejection for arguments that could not be decoded
// into req. Missing fields are reported alongside them so the caller sees
// every problem at once; a field listed in invalid is never also missing.
func DecodeFailure(req Request, invalid []string) Outcome {
	skip := make(map[string]bool, len(invalid))
	for _, f := range invalid {
		skip[f] = true
	}
	var missing []string
	for _, f := range missingFields(req) {
		if !skip[f] {
			missing = append(missing, f)
		}
	}
	if len(missing) == 0 {
		return InvalidOutcome(invalid)
	}
	return Outcome{
		Message: "Missing required fields: " + strings.Join(missing, ", ") +
			"; Invalid fields: " + strings.Join(invalid, ", "),
		State:     StateRejected,
		ErrorKind: KindMissingField,
		Errors:    append(missing, invalid...),
	}
}

// checkMenu returns ok=true when the request may proceed to persistence.
func (s *Service) checkMenu(req Request) (Outcome, bool) {
	if strings.TrimSpace(req.MenuType) == "" {
		return Outcome{}, true
	}

	kind := menu.Classify(req.MenuType)
	resident := false
	if kind == menu.KindExecutive {
		// Asked-and-answered is required; a missing answer is not "no".
		if req.Resident == nil {
			return Outcome{
				Message:   "Residency indication required for the executive menu: please say whether the customer is an Argentine resident",
				State:     StateRejected,
				ErrorKind: KindMissingField,
				Errors:    []string{"residente_argentino"},
			}, false
		}
		resident = *req.Resident
	}

	v := s.engine.ForKind(kind, req.Date, req.Time, resident)
	if v.Valid {
		return Outcome{}, true
	}
	return Outcome{
		Message:      v.Message,
		State:        StateRejected,
		ErrorKind:    KindBusinessRule,
		PriorityRule: v.PriorityRule,
		Alternatives: v.Alternatives,
	}, false
}

func (s *Service) persist(ctx context.Context, req Request) Outcome {
	rec := Record{
		ID:        s.newID(),
		Request:   req,
		CreatedAt: s.now(),
		Status:    StatusConfirmed,
	}

	id, err := s.repo.SaveReservation(ctx, rec)
	if err != nil {
		s.log.Error().Err(err).Str("reservation_id", rec.ID).Msg("save reservation")
		return Outcome{
			Message:   fmt.Sprintf("Failed to create reservation: %v", err),
			State:     StateErrored,
			ErrorKind: KindCollaborator,
		}
	}
	if id != "" {
		rec.ID = id
	}

	s.log.Info().
		Str("reservation_id", rec.ID).
		Str("fecha", rec.Date).
		Str("hora", rec.Time).
		Int("personas", rec.PartySize).
		Msg("reservation confirmed")

	if s.observer != nil {
		s.observer.OnConfirmed(ctx, rec)
	}

	menuType := req.MenuType
	if strings.TrimSpace(menuType) == "" {
		menuType = menu.FullMenu
	}

	return Outcome{
		Success:       true,
		Message:       "Reservation confirmed",
		State:         StatePersisted,
		ReservationID: rec.ID,
		Details: &Details{
			Name:      req.Name,
			Date:      req.Date,
			Time:      req.Time,
			PartySize: req.PartySize,
			MenuType:  menuType,
		},
		Record: &rec,
	}
}

func missingFields(req Request) []string {
	present := map[string]bool{
		"nombre":   strings.TrimSpace(req.Name) != "",
		"telefono": strings.TrimSpace(req.Phone) != "",
		"email":    strings.TrimSpace(req.Email) != "",
		"personas": req.PartySize != 0,
		"fecha":    strings.TrimSpace(req.Date) != "",
		"hora":     strings.TrimSpace(req.Time) != "",
	}
	var missing []string
	for _, f := range requiredFields {
		if !present[f] {
			missing = append(missing, f)
		}
	}
	return missing
}

func (s *Service) invalidFields(req Request) []string {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

// newValidator reports fields by their JSON names so rejections use the
// same vocabulary as the tool arguments.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
