package format

import (
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

type LineFormater struct {
	tpl *template.Template
}

func NewLineFormater(tpl *template.Template) *LineFormater {
	return &LineFormater{tpl: tpl}
}

// ParseLineFormater compiles text as a go-template over Record.
func ParseLineFormater(text string) (*LineFormater, error) {
	tpl, err := template.New("line").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid format template `%s`", text)
	}
	return NewLineFormater(tpl), nil
}

func (o *LineFormater) Format(r *Record) (string, error) {
	b := &strings.Builder{}
	if err := o.tpl.Execute(b, r); err != nil {
		return "", errors.Wrap(err, "failed to execute template")
	}
	return b.String(), nil
}
