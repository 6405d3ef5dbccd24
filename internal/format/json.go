package format

import (
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

type JsonFormater struct {
}

func NewJsonFormater() *JsonFormater {
	return &JsonFormater{}
}

func (o *JsonFormater) Format(r *Record) (string, error) {
	bs, err := json.Marshal(r)
	if err != nil {
		return "", errors.Wrap(err, "failed to make json string")
	}
	return string(bs), nil
}
