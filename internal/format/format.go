package format

import "github.com/pkg/errors"

type Formater interface {
	Format(r *Record) (string, error)
}

// New returns the formater for an --output value: line or json.
func New(output, template string) (Formater, error) {
	switch output {
	case "line":
		return ParseLineFormater(template)
	case "json":
		return NewJsonFormater(), nil
	}
	return nil, errors.Errorf("not support output `%s`", output)
}
