// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package template

import (
	"bytes"
	"strconv"
	"strings"
	texttemplate "text/template"

	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/pkg/date"
)

// maxRenderedBytes caps the size of a generated contract.
const maxRenderedBytes = 1 << 20

var funcs = texttemplate.FuncMap{
	"pct": func(value float64) string {
		return strconv.FormatFloat(value, 'f', -1, 64) + "%"
	},
	"date": func(value any) string {
		switch d := value.(type) {
		case date.Date:
			return d.String()
		case *date.Date:
			if d == nil {
				return ""
			}
			return d.String()
		}
		return ""
	},
	"upper": strings.ToUpper,
	"join":  strings.Join,
}

// Parse compiles a template body. Unknown fields fail at render time.
func Parse(name, body string) (*texttemplate.Template, error) {
	parsed, err := texttemplate.New(name).Funcs(funcs).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, apperr.ValidationError("Template body does not parse", apperr.FieldError{
			Field:   FieldBody,
			Message: err.Error(),
		})
	}
	return parsed, nil
}

// Render executes body against data. Execution failures are 422.
func Render(name, body string, data RenderData) (string, error) {
	parsed, err := Parse(name, body)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := parsed.Execute(&out, data); err != nil {
		return "", apperr.Unprocessable("Template could not be rendered: " + err.Error())
	}
	if out.Len() > maxRenderedBytes {
		return "", apperr.Unprocessable("Rendered contract is too large")
	}
	return out.String(), nil
}
