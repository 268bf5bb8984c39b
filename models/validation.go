package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobuffalo/validate/v3"

	"github.com/claimwell/claims-api/api"
)

// Model validation tool
var mValidate *validator.Validate

var fieldValidators = map[string]func(validator.FieldLevel) bool{
	"careType":        validateCareType,
	"claimStatus":     validateClaimStatus,
	"claimFileType":   validateClaimFileType,
	"claimFileStatus": validateClaimFileStatus,
	"scopeType":       validateScopeType,
}

func validateModel(m interface{}) *validate.Errors {
	vErrs := validate.NewErrors()

	if err := mValidate.Struct(m); err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			vErrs.Add(err.StructNamespace(), err.Error())
		}
	}
	return vErrs
}

// flattenPopErrors - pop validation errors are complex structures, this flattens them to a simple string
func flattenPopErrors(popErrs *validate.Errors) string {
	var msgs []string
	for key, val := range popErrs.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", key, strings.Join(val, ", ")))
	}
	msg := strings.Join(msgs, " |")
	return msg
}

func validateClaimStatus(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.ClaimStatus); ok {
		_, valid := ValidClaimStatus[value]
		return valid
	}
	return false
}

func validateCareType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.CareType); ok {
		if value == "" {
			// unset until the claim leaves DRAFT
			return true
		}
		_, valid := ValidCareTypes[value]
		return valid
	}
	return false
}

func validateClaimFileType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.ClaimFileType); ok {
		_, valid := ValidClaimFileTypes[value]
		return valid
	}
	return false
}

func validateClaimFileStatus(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.ClaimFileStatus); ok {
		_, valid := ValidClaimFileStatus[value]
		return valid
	}
	return false
}

func validateScopeType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.ScopeType); ok {
		_, valid := ValidScopeTypes[value]
		return valid
	}
	return false
}
