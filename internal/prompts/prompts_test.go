package prompts

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func promptReq(args map[string]string) mcp.GetPromptRequest {
	req := mcp.GetPromptRequest{}
	req.Params.Arguments = args
	return req
}

func promptText(t *testing.T, res *mcp.GetPromptResult, err error) string {
	t.Helper()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(res.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(res.Messages))
	}
	tc, ok := res.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Messages[0].Content)
	}
	return tc.Text
}

func TestAssistantPrompt(t *testing.T) {
	p := NewAssistantPrompt("La Cabrera Mendoza")
	if p.Definition().Name != "reservation-assistant" {
		t.Errorf("name = %q", p.Definition().Name)
	}

	res, err := p.Handle(context.Background(), promptReq(map[string]string{"customer_name": "Ana"}))
	text := promptText(t, res, err)
	for _, want := range []string{"La Cabrera Mendoza", "Greet Ana", "exactly as", "escalate_to_human", "Never state a price"} {
		if !strings.Contains(text, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	res, err = p.Handle(context.Background(), promptReq(nil))
	if !strings.Contains(promptText(t, res, err), "Greet the customer warmly") {
		t.Error("expected generic greeting without a name")
	}
}

func TestIntakePrompt(t *testing.T) {
	p := NewIntakePrompt()
	if p.Definition().Name != "reservation-intake" {
		t.Errorf("name = %q", p.Definition().Name)
	}

	tests := []struct {
		menuType string
		want     string
		dontWant string
	}{
		{"Menú Ejecutivo", "residente_argentino", "validate_manso_menu"},
		{"manso", "Monday to Thursday", "Argentine resident"},
		{"", "fecha", "Argentine resident"},
	}
	for _, tt := range tests {
		t.Run(tt.menuType, func(t *testing.T) {
			res, err := p.Handle(context.Background(), promptReq(map[string]string{"menu_type": tt.menuType}))
			text := promptText(t, res, err)
			if !strings.Contains(text, tt.want) {
				t.Errorf("missing %q", tt.want)
			}
			if strings.Contains(text, tt.dontWant) {
				t.Errorf("unexpected %q", tt.dontWant)
			}
		})
	}
}
