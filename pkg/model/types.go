package model

import internalmodel "github.com/goliatone/go-obesense/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString = internalmodel.FieldTypeString
	FieldTypeNumber = internalmodel.FieldTypeNumber
)

// ControlType re-exports the internal ControlType enumeration.
type ControlType = internalmodel.ControlType

const (
	ControlNumber = internalmodel.ControlNumber
	ControlSelect = internalmodel.ControlSelect
)

const (
	ValidationRuleMin  = internalmodel.ValidationRuleMin
	ValidationRuleMax  = internalmodel.ValidationRuleMax
	ValidationRuleStep = internalmodel.ValidationRuleStep
)

type ValidationRule = internalmodel.ValidationRule
type Option = internalmodel.Option
type Field = internalmodel.Field
type Section = internalmodel.Section
type FormModel = internalmodel.FormModel
