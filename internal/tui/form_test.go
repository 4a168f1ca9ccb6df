package tui

import (
	"strings"
	"testing"
)

func testForm() form {
	return newForm(
		formField{key: "Name", label: "Name"},
		formField{key: "Kind", label: "Kind", options: []string{"a", "b", "c"}},
		formField{key: "Note", label: "Note", multiline: true},
	)
}

func TestFormOptionDefaults(t *testing.T) {
	f := testForm()
	if f.value("Kind") != "a" {
		t.Errorf("option field default = %q, want first option", f.value("Kind"))
	}
	if f.value("missing") != "" {
		t.Error("unknown key should read empty")
	}
}

func TestFormFocusWraps(t *testing.T) {
	f := testForm()
	f, _ = f.handleKey("shift+tab")
	if f.focus != 2 {
		t.Errorf("focus = %d, want 2", f.focus)
	}
	f, _ = f.handleKey("tab")
	if f.focus != 0 {
		t.Errorf("focus = %d, want 0", f.focus)
	}
}

func TestFormEditDoesNotAlias(t *testing.T) {
	f := testForm()
	g, _ := f.handleKey("x")
	if f.value("Name") != "" || g.value("Name") != "x" {
		t.Errorf("edit leaked: f=%q g=%q", f.value("Name"), g.value("Name"))
	}
}

func TestFormOptionsCycle(t *testing.T) {
	f := testForm()
	f.focus = 1
	f, _ = f.handleKey("left")
	if f.value("Kind") != "c" {
		t.Errorf("left from first = %q, want c", f.value("Kind"))
	}
	f, _ = f.handleKey("z")
	if f.value("Kind") != "c" {
		t.Error("typing on an option field should be ignored")
	}
}

func TestFormSubmit(t *testing.T) {
	f := testForm()
	f, submit := f.handleKey("enter")
	if submit || f.focus != 1 {
		t.Error("enter on a middle field should advance")
	}
	f.focus = 2
	f, submit = f.handleKey("enter")
	if submit || f.value("Note") != "\n" {
		t.Error("enter in a multiline field should insert a newline")
	}
	_, submit = f.handleKey("ctrl+s")
	if !submit {
		t.Error("ctrl+s should submit")
	}
}

func TestFormSecretMasked(t *testing.T) {
	f := newForm(formField{key: "Password", label: "Password", secret: true})
	f = f.set("Password", "hunter2")
	view := f.view()
	if strings.Contains(view, "hunter2") || !strings.Contains(view, "•••••••") {
		t.Errorf("secret not masked:\n%s", view)
	}
}

func TestFormReset(t *testing.T) {
	f := testForm().set("Name", "x")
	f.focus = 2
	f = f.reset()
	if f.value("Name") != "" || f.focus != 0 {
		t.Error("reset should clear values and focus")
	}
}
