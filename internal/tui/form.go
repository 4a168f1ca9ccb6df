package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every form; validator caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// formField describes one input of a terminal form.
type formField struct {
	key         string // struct field name, used to map validation errors
	label       string
	placeholder string
	secret      bool
	multiline   bool
	options     []string // fixed choices cycled with left/right
}

// form holds field values and focus. It is embedded by the auth, admin
// login and contact views.
type form struct {
	fields []formField
	values []string
	focus  int
}

func newForm(fields ...formField) form {
	f := form{fields: fields, values: make([]string, len(fields))}
	for i, fd := range fields {
		if len(fd.options) > 0 {
			f.values[i] = fd.options[0]
		}
	}
	return f
}

// value returns the current value of the field with key.
func (f form) value(key string) string {
	for i, fd := range f.fields {
		if fd.key == key {
			return f.values[i]
		}
	}
	return ""
}

// set replaces the value of the field with key.
func (f form) set(key, v string) form {
	values := append([]string(nil), f.values...)
	for i, fd := range f.fields {
		if fd.key == key {
			values[i] = v
		}
	}
	f.values = values
	return f
}

func (f form) reset() form {
	return newForm(f.fields...)
}

// handleKey applies a keystroke. submit is true when enter is pressed on
// the last field or ctrl+s anywhere.
func (f form) handleKey(key string) (form, bool) {
	n := len(f.fields)
	if n == 0 {
		return f, false
	}
	fd := f.fields[f.focus]
	switch key {
	case "ctrl+s":
		return f, true
	case "tab", "down":
		f.focus = (f.focus + 1) % n
		return f, false
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + n) % n
		return f, false
	case "enter":
		if fd.multiline {
			return f.edit(f.values[f.focus] + "\n"), false
		}
		if f.focus == n-1 {
			return f, true
		}
		f.focus++
		return f, false
	case "left", "right":
		if len(fd.options) > 0 {
			return f.cycle(key == "right"), false
		}
		return f, false
	}
	if len(fd.options) > 0 {
		return f, false
	}
	return f.edit(editRune(f.values[f.focus], key)), false
}

func (f form) edit(v string) form {
	values := append([]string(nil), f.values...)
	values[f.focus] = v
	f.values = values
	return f
}

func (f form) cycle(forward bool) form {
	opts := f.fields[f.focus].options
	idx := 0
	for i, o := range opts {
		if o == f.values[f.focus] {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(opts)
	} else {
		idx = (idx - 1 + len(opts)) % len(opts)
	}
	return f.edit(opts[idx])
}

// view renders the fields, one per line.
func (f form) view() string {
	var b strings.Builder
	labelW := 0
	for _, fd := range f.fields {
		if l := len(fd.label); l > labelW {
			labelW = l
		}
	}
	for i, fd := range f.fields {
		focused := i == f.focus
		label := fieldLabelStyle.Render(fmt.Sprintf("%-*s", labelW, fd.label))
		marker := "  "
		if focused {
			label = fieldFocusStyle.Render(fmt.Sprintf("%-*s", labelW, fd.label))
			marker = accentStyle.Render("▸ ")
		}

		v := f.values[i]
		var field string
		switch {
		case len(fd.options) > 0:
			field = f.renderOptions(fd.options, v, focused)
		case fd.secret:
			field = renderTextInput(strings.Repeat("•", len([]rune(v))), fd.placeholder, focused)
		default:
			field = renderTextInput(strings.ReplaceAll(v, "\n", " ⏎ "), fd.placeholder, focused)
		}
		b.WriteString(" " + marker + label + "  " + field + "\n")
	}
	return b.String()
}

func (f form) renderOptions(opts []string, current string, focused bool) string {
	parts := make([]string, len(opts))
	for i, o := range opts {
		if o == current {
			if focused {
				parts[i] = searchStyle.Render("[" + o + "]")
			} else {
				parts[i] = selectedStyle.Render("[" + o + "]")
			}
		} else {
			parts[i] = dimStyle.Render(" " + o + " ")
		}
	}
	return strings.Join(parts, " ")
}

// validationMessage turns a validator error into one readable line. labels
// maps struct field names to the labels shown on screen.
func validationMessage(err error, labels map[string]string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	name := labels[fe.Field()]
	if name == "" {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s digits", name, fe.Param())
	case "numeric":
		return name + " must contain digits only"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	default:
		return name + " is invalid"
	}
}

// labelsOf maps field keys to labels for validationMessage.
func (f form) labelsOf() map[string]string {
	m := make(map[string]string, len(f.fields))
	for _, fd := range f.fields {
		m[fd.key] = fd.label
	}
	return m
}
