package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T(CodeInvalidJSON, nil); msg != "invalid JSON" {
		t.Fatalf("expected english message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T(CodeInvalidJSON, nil); msg == "invalid JSON" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_Placeholders(t *testing.T) {
	got := T(CodeSummary, map[string]string{"failed": "2", "total": "5"})
	if got != "2 of 5 files failed" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if got := T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("expected code echo, got %q", got)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X-" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	if got := T(CodeOK, nil); got != "X-ok" {
		t.Fatalf("custom translator not used: %q", got)
	}
	SetTranslator(nil)
	if got := T(CodeOK, nil); got != "ok" {
		t.Fatalf("nil should restore default, got %q", got)
	}
}
