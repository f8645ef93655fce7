package gotemplate

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-obesense/pkg/model"
	"github.com/goliatone/go-obesense/pkg/schema"
)

// registerDomainFilters installs the filters the form templates rely on:
//
//	option_label  raw option value -> display label
//	number        float -> shortest decimal ("145", "0.01")
//	form_value    value -> control value attribute ("" for nil)
func registerDomainFilters() {
	register("option_label", filterOptionLabel)
	register("number", filterNumber)
	register("form_value", filterFormValue)
}

func register(name string, fn pongo2.FilterFunction) {
	if !pongo2.FilterExists(name) {
		_ = pongo2.RegisterFilter(name, fn)
	}
}

func filterOptionLabel(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(model.OptionLabel(in.String())), nil
}

func filterNumber(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	if in.IsNumber() {
		return pongo2.AsValue(schema.FormatNumber(in.Float())), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func filterFormValue(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	if number, ok := schema.Number(in.Interface()); ok {
		return pongo2.AsValue(schema.FormatNumber(number)), nil
	}
	return pongo2.AsValue(fmt.Sprint(in.Interface())), nil
}
