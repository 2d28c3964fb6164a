package handlers

import (
	"fmt"
	"html/template"
	"path/filepath"
)

// LoadTemplates parses every *.tmpl file in templatesPath.
func LoadTemplates(templatesPath string) (*template.Template, error) {
	files, err := filepath.Glob(filepath.Join(templatesPath, "*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found in %s", templatesPath)
	}

	funcMap := template.FuncMap{
		"isTextarea": func(f FieldView) bool { return f.Type == "textarea" },
		"isSelect":   func(f FieldView) bool { return f.Type == "select" },
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}
