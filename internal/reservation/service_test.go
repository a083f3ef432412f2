package reservation

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lacabrera/cabrera-mcp/internal/menu"
)

// --- Test helpers ---

type failingRepo struct{ err error }

func (f failingRepo) SaveReservation(context.Context, Record) (string, error) { return "", f.err }
func (f failingRepo) GetReservation(context.Context, string) (*Record, error) { return nil, f.err }

type recordingObserver struct{ got []Record }

func (o *recordingObserver) OnConfirmed(_ context.Context, rec Record) { o.got = append(o.got, rec) }

var fixedNow = time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	s := NewService(menu.NewEngine(menu.DefaultRules()), repo, zerolog.New(io.Discard))
	s.now = func() time.Time { return fixedNow }
	return s
}

func boolPtr(b bool) *bool { return &b }

func validRequest() Request {
	return Request{
		Name:      "Ana",
		Phone:     "123",
		Email:     "a@b.com",
		PartySize: 2,
		Date:      "2024-03-11",
		Time:      "13:00",
	}
}

// --- FieldCheck ---

func TestCreate_MissingFieldsListedInOrder(t *testing.T) {
	repo := NewMemoryRepository()
	s := newTestService(t, repo)

	out := s.Create(context.Background(), Request{Name: "Ana", PartySize: 2, Time: "13:00"})

	if out.Success {
		t.Fatal("expected rejection")
	}
	if out.State != StateRejected || out.ErrorKind != KindMissingField {
		t.Errorf("state/kind = %s/%s", out.State, out.ErrorKind)
	}
	want := []string{"telefono", "email", "fecha"}
	if strings.Join(out.Errors, ",") != strings.Join(want, ",") {
		t.Errorf("Errors = %v, want %v", out.Errors, want)
	}
	if out.Message != "Missing required fields: telefono, email, fecha" {
		t.Errorf("Message = %q", out.Message)
	}
	if repo.Len() != 0 {
		t.Error("no record may be created on missing fields")
	}
}

func TestCreate_MissingEmailOnly(t *testing.T) {
	repo := NewMemoryRepository()
	req := validRequest()
	req.Email = "   "

	out := newTestService(t, repo).Create(context.Background(), req)

	if len(out.Errors) != 1 || out.Errors[0] != "email" {
		t.Errorf("Errors = %v, want [email]", out.Errors)
	}
	if out.Record != nil || repo.Len() != 0 {
		t.Error("no record may be created")
	}
}

func TestCreate_ZeroPartySizeIsMissing(t *testing.T) {
	req := validRequest()
	req.PartySize = 0

	out := newTestService(t, NewMemoryRepository()).Create(context.Background(), req)

	if out.ErrorKind != KindMissingField || out.Errors[0] != "personas" {
		t.Errorf("got %+v", out)
	}
}

// --- InvariantCheck ---

func TestCreate_InvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		field  string
	}{
		{"bad email", func(r *Request) { r.Email = "not-an-email" }, "email"},
		{"party too large", func(r *Request) { r.PartySize = 21 }, "personas"},
		{"negative party", func(r *Request) { r.PartySize = -3 }, "personas"},
		{"bad date", func(r *Request) { r.Date = "11/03/2024" }, "fecha"},
		{"bad time", func(r *Request) { r.Time = "1pm" }, "hora"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMemoryRepository()
			req := validRequest()
			tt.mutate(&req)

			out := newTestService(t, repo).Create(context.Background(), req)

			if out.Success || out.ErrorKind != KindInvalidField {
				t.Fatalf("got %+v, want invalid_field rejection", out)
			}
			if len(out.Errors) != 1 || out.Errors[0] != tt.field {
				t.Errorf("Errors = %v, want [%s]", out.Errors, tt.field)
			}
			if repo.Len() != 0 {
				t.Error("no record may be created")
			}
		})
	}
}

func TestCreate_PartyBounds(t *testing.T) {
	for _, n := range []int{1, 20} {
		req := validRequest()
		req.PartySize = n
		if out := newTestService(t, NewMemoryRepository()).Create(context.Background(), req); !out.Success {
			t.Errorf("party of %d should be accepted: %+v", n, out)
		}
	}
}

func TestDecodeFailure(t *testing.T) {
	t.Run("only undecodable fields", func(t *testing.T) {
		req := validRequest()
		req.PartySize = 0
		out := DecodeFailure(req, []string{"personas"})
		if out.ErrorKind != KindInvalidField || out.Message != "Invalid fields: personas" {
			t.Errorf("got %+v", out)
		}
	})

	t.Run("missing fields reported alongside", func(t *testing.T) {
		req := validRequest()
		req.PartySize = 0
		req.Email = ""
		out := DecodeFailure(req, []string{"personas", "residente_argentino"})
		if out.Success || out.State != StateRejected || out.ErrorKind != KindMissingField {
			t.Fatalf("got %+v, want missing_field rejection", out)
		}
		want := "Missing required fields: email; Invalid fields: personas, residente_argentino"
		if out.Message != want {
			t.Errorf("Message = %q, want %q", out.Message, want)
		}
		if strings.Join(out.Errors, ",") != "email,personas,residente_argentino" {
			t.Errorf("Errors = %v", out.Errors)
		}
	})
}

// --- MenuCheck ---

func TestCreate_ExecutiveWithoutResidency(t *testing.T) {
	repo := NewMemoryRepository()
	req := validRequest()
	req.MenuType = "ejecutivo"

	out := newTestService(t, repo).Create(context.Background(), req)

	if out.Success {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(out.Message, "Residency indication required") {
		t.Errorf("Message = %q", out.Message)
	}
	if out.PriorityRule != "" {
		t.Errorf("rule chain must not run, got priority rule %s", out.PriorityRule)
	}
	if repo.Len() != 0 {
		t.Error("no record may be created")
	}
}

func TestCreate_ExecutiveExplicitNonResident(t *testing.T) {
	req := validRequest()
	req.MenuType = "Menú Ejecutivo"
	req.Resident = boolPtr(false)

	out := newTestService(t, NewMemoryRepository()).Create(context.Background(), req)

	if out.PriorityRule != menu.RuleRejectNotResident {
		t.Errorf("PriorityRule = %s, want REJECT_NOT_RESIDENT", out.PriorityRule)
	}
	if out.ErrorKind != KindBusinessRule {
		t.Errorf("ErrorKind = %s", out.ErrorKind)
	}
	if len(out.Alternatives) != 1 || out.Alternatives[0] != menu.FullMenu {
		t.Errorf("Alternatives = %v", out.Alternatives)
	}
}

func TestCreate_ExecutiveAccepted(t *testing.T) {
	req := validRequest()
	req.MenuType = "ejecutivo"
	req.Resident = boolPtr(true)

	out := newTestService(t, NewMemoryRepository()).Create(context.Background(), req)

	if !out.Success {
		t.Fatalf("expected success, got %+v", out)
	}
	if out.Details.MenuType != "ejecutivo" {
		t.Errorf("Details.MenuType = %q", out.Details.MenuType)
	}
	if out.Record.Resident == nil || !*out.Record.Resident {
		t.Error("record should keep the residency answer")
	}
}

func TestCreate_MansoOnFridayRejected(t *testing.T) {
	req := validRequest()
	req.MenuType = "manso"
	req.Date = "2024-03-15"
	req.Resident = boolPtr(false) // irrelevant for manso

	out := newTestService(t, NewMemoryRepository()).Create(context.Background(), req)

	if out.Success || out.PriorityRule != menu.RuleRejectAlways {
		t.Errorf("got %+v", out)
	}
}

func TestCreate_OtherMenuTypeIsRegular(t *testing.T) {
	req := validRequest()
	req.MenuType = "carta"
	req.Date = "2024-03-16" // Saturday is fine for the full menu

	out := newTestService(t, NewMemoryRepository()).Create(context.Background(), req)

	if !out.Success {
		t.Fatalf("got %+v", out)
	}
	if out.Details.MenuType != "carta" {
		t.Errorf("Details.MenuType = %q", out.Details.MenuType)
	}
}

// --- Persisted ---

func TestCreate_NoMenuDefaultsToFullMenu(t *testing.T) {
	repo := NewMemoryRepository()
	s := newTestService(t, repo)

	out := s.Create(context.Background(), validRequest())

	if !out.Success || out.State != StatePersisted {
		t.Fatalf("got %+v", out)
	}
	if out.Details.MenuType != "full menu" {
		t.Errorf("Details.MenuType = %q, want full menu", out.Details.MenuType)
	}
	if out.Record.Status != StatusConfirmed {
		t.Errorf("Status = %q", out.Record.Status)
	}
	if !out.Record.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt = %v", out.Record.CreatedAt)
	}
	if !strings.HasPrefix(out.ReservationID, "RES-") {
		t.Errorf("ReservationID = %q", out.ReservationID)
	}

	stored, err := repo.GetReservation(context.Background(), out.ReservationID)
	if err != nil {
		t.Fatalf("GetReservation: %v", err)
	}
	if stored.Name != "Ana" || stored.PartySize != 2 {
		t.Errorf("stored = %+v", stored)
	}
}

func TestCreate_IdentifiersUniqueForIdenticalRequests(t *testing.T) {
	repo := NewMemoryRepository()
	s := newTestService(t, repo)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		out := s.Create(context.Background(), validRequest())
		if seen[out.ReservationID] {
			t.Fatalf("duplicate id %s", out.ReservationID)
		}
		seen[out.ReservationID] = true
	}
	if repo.Len() != 100 {
		t.Errorf("stored %d records, want 100", repo.Len())
	}
}

func TestCreate_ObserverNotified(t *testing.T) {
	obs := &recordingObserver{}
	s := newTestService(t, NewMemoryRepository())
	s.SetObserver(obs)

	s.Create(context.Background(), validRequest())
	bad := validRequest()
	bad.Email = ""
	s.Create(context.Background(), bad)

	if len(obs.got) != 1 {
		t.Fatalf("observer calls = %d, want 1", len(obs.got))
	}
}

// --- Errored ---

func TestCreate_RepositoryFailure(t *testing.T) {
	s := newTestService(t, failingRepo{err: errors.New("disk full")})

	out := s.Create(context.Background(), validRequest())

	if out.Success {
		t.Fatal("expected failure")
	}
	if out.State != StateErrored || out.ErrorKind != KindCollaborator {
		t.Errorf("state/kind = %s/%s", out.State, out.ErrorKind)
	}
	if out.Message != "Failed to create reservation: disk full" {
		t.Errorf("Message = %q", out.Message)
	}
}
