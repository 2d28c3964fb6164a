package handlers

import (
	"net/url"
	"strings"
)

type IndexViewData struct {
	Title    string
	Sections []SectionLink
}

type SectionLink struct {
	Label string
	URL   string
}

// ListViewData drives list.tmpl for every entity.
type ListViewData struct {
	Title     string
	Heading   string
	CreateURL string
	Columns   []string
	Rows      []RowView
	Error     string
}

type RowView struct {
	Cells     []string
	EditURL   string
	DeleteURL string
}

// FormViewData drives form.tmpl for every entity.
type FormViewData struct {
	Title       string
	Heading     string
	Action      string
	SubmitLabel string
	CancelURL   string
	Error       string
	Fields      []FieldView
}

// FieldView is one input. Type is an HTML input type, or "textarea" or "select".
type FieldView struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Step     string
	Required bool
	ReadOnly bool
	Options  []OptionView
}

type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

func textField(v url.Values, name, typ string, required bool) FieldView {
	return FieldView{Name: name, Label: labelFor(name), Type: typ, Value: v.Get(name), Required: required}
}

func selectField(v url.Values, name string, required bool, choices []OptionView) FieldView {
	current := v.Get(name)
	options := make([]OptionView, 0, len(choices)+1)
	if !required {
		options = append(options, OptionView{Value: "", Label: "(none)", Selected: current == ""})
	}
	known := current == ""
	for _, c := range choices {
		c.Selected = c.Value == current
		known = known || c.Selected
		options = append(options, c)
	}
	// Keep a stored value the choices do not offer.
	if !known {
		options = append(options, OptionView{Value: current, Label: current, Selected: true})
	}
	return FieldView{Name: name, Label: labelFor(name), Type: "select", Value: current, Required: required, Options: options}
}

// keyField shows an immutable key on edit forms.
func keyField(v url.Values, name string) FieldView {
	return FieldView{Name: name, Label: labelFor(name), Type: "text", Value: v.Get(name), ReadOnly: true}
}

func stringOptions(values []string) []OptionView {
	options := make([]OptionView, len(values))
	for i, s := range values {
		options[i] = OptionView{Value: s, Label: s}
	}
	return options
}

// labelFor turns given_name into "Given name".
func labelFor(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
