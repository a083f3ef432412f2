package resources

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lacabrera/cabrera-mcp/internal/menu"
	"github.com/lacabrera/cabrera-mcp/internal/reservation"
)

func readReq(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func contentText(t *testing.T, contents []mcp.ResourceContents, err error) (string, string) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("content is %T", contents[0])
	}
	return tc.Text, tc.MIMEType
}

func TestMenuRules(t *testing.T) {
	h := NewHandler(menu.DefaultRules(), reservation.NewMemoryRepository())
	if h.MenuRulesResource().URI != MenuRulesURI {
		t.Errorf("URI = %q", h.MenuRulesResource().URI)
	}

	c, err := h.HandleMenuRules(context.Background(), readReq(MenuRulesURI))
	text, mime := contentText(t, c, err)
	if mime != "application/json" {
		t.Errorf("MIME = %q", mime)
	}

	var doc menuRulesDoc
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if doc.Executive.Days != "Monday to Friday" || !doc.Executive.RequiresResident {
		t.Errorf("executive = %+v", doc.Executive)
	}
	if doc.Manso.Days != "Monday to Thursday" || len(doc.Manso.Windows) != 2 || doc.Manso.Windows[1] != "20:00-23:30" {
		t.Errorf("manso = %+v", doc.Manso)
	}
	if doc.Alternative != menu.FullMenu {
		t.Errorf("alternative = %q", doc.Alternative)
	}
}

func TestReservationTemplate(t *testing.T) {
	repo := reservation.NewMemoryRepository()
	rec := reservation.Record{
		ID: "RES-1",
		Request: reservation.Request{
			Name: "Ana", Phone: "1", Email: "a@b.co", PartySize: 2, Date: "2025-01-13", Time: "13:00",
		},
		CreatedAt: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:    reservation.StatusConfirmed,
	}
	if _, err := repo.SaveReservation(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
	h := NewHandler(menu.DefaultRules(), repo)

	if h.ReservationTemplate().URITemplate == nil {
		t.Fatal("template has no URI template")
	}

	c, err := h.HandleReservation(context.Background(), readReq("reservations://RES-1"))
	text, _ := contentText(t, c, err)
	if !strings.Contains(text, `"id": "RES-1"`) || !strings.Contains(text, `"nombre": "Ana"`) {
		t.Errorf("unexpected body: %s", text)
	}

	c, err = h.HandleReservation(context.Background(), readReq("reservations://RES-2"))
	text, mime := contentText(t, c, err)
	if mime != "text/plain" || !strings.Contains(text, "not found") {
		t.Errorf("missing reservation: %s (%s)", text, mime)
	}

	c, err = h.HandleReservation(context.Background(), readReq("other://RES-1"))
	text, _ = contentText(t, c, err)
	if !strings.Contains(text, "expected reservations://{id}") {
		t.Errorf("bad URI: %s", text)
	}
}

type brokenRepo struct{}

func (brokenRepo) SaveReservation(context.Context, reservation.Record) (string, error) {
	return "", errors.New("down")
}
func (brokenRepo) GetReservation(context.Context, string) (*reservation.Record, error) {
	return nil, errors.New("down")
}

func TestReservationTemplate_RepositoryError(t *testing.T) {
	h := NewHandler(menu.DefaultRules(), brokenRepo{})
	if _, err := h.HandleReservation(context.Background(), readReq("reservations://RES-1")); err == nil {
		t.Error("expected error from broken repository")
	}
}
