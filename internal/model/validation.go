package model

import (
	"errors"

	"github.com/goliatone/go-obesense/pkg/schema"
)

var errSchemaEmpty = errors.New("model builder: schema declares no fields")

func validateSchema(s schema.Schema) error {
	if s.Len() == 0 {
		return errSchemaEmpty
	}
	return nil
}
