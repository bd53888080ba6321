package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/user-directory/internal/domain"
	"github.com/spec-kit/user-directory/pkg/util/errorutil"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateUserRequest is the schema-checked POST /api/users payload.
type CreateUserRequest struct {
	FirstName *string `json:"first_name" validate:"required,min=1"`
	LastName  *string `json:"last_name" validate:"required,min=1"`
	Email     *string `json:"email" validate:"required,email"`
	Gender    *string `json:"gender" validate:"omitempty,oneof=Male Female"`
	Avatar    *string `json:"avatar" validate:"omitempty,url"`
	Domain    *string `json:"domain" validate:"omitempty,oneof=Sales Finance Marketing IT 'UI Designing' Management"`
	Available *bool   `json:"available"`
}

// UpdateUserRequest is the schema-checked PUT /api/users/:id payload.
// Every field is optional; only present fields are merged.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Gender    *string `json:"gender" validate:"omitempty,oneof=Male Female"`
	Avatar    *string `json:"avatar" validate:"omitempty,url"`
	Domain    *string `json:"domain" validate:"omitempty,oneof=Sales Finance Marketing IT 'UI Designing' Management"`
	Available *bool   `json:"available"`
}

// BodyDecoder turns raw request bodies into records.
type BodyDecoder struct {
	Strict bool
}

// DecodeCreate parses a POST body.
func (d BodyDecoder) DecodeCreate(body []byte) (domain.Record, error) {
	if !d.Strict {
		return decodePermissive(body)
	}
	var req CreateUserRequest
	if err := decodeStrict(body, &req); err != nil {
		return nil, err
	}
	return fieldsRecord(req.FirstName, req.LastName, req.Email, req.Gender, req.Avatar, req.Domain, req.Available), nil
}

// DecodeUpdate parses a PUT body.
func (d BodyDecoder) DecodeUpdate(body []byte) (domain.Record, error) {
	if !d.Strict {
		return decodePermissive(body)
	}
	var req UpdateUserRequest
	if err := decodeStrict(body, &req); err != nil {
		return nil, err
	}
	return fieldsRecord(req.FirstName, req.LastName, req.Email, req.Gender, req.Avatar, req.Domain, req.Available), nil
}

func decodePermissive(body []byte) (domain.Record, error) {
	rec, err := domain.DecodeRecord(body)
	if err != nil {
		if errors.Is(err, domain.ErrNotObject) {
			return nil, errorutil.NewValidationError("Request body must be a JSON object", nil)
		}
		return nil, errorutil.NewValidationError("Invalid JSON body", nil)
	}
	return rec, nil
}

func decodeStrict(body []byte, target any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return errorutil.NewValidationError(fmt.Sprintf("Invalid request body: %v", err), nil)
	}
	if err := validate.Struct(target); err != nil {
		return errorutil.NewValidationError(validationMessage(err), nil)
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", jsonName(fe.Field()), fe.Tag()))
	}
	return "Invalid request body: " + strings.Join(parts, ", ")
}

var jsonNames = map[string]string{
	"FirstName": "first_name",
	"LastName":  "last_name",
	"Email":     "email",
	"Gender":    "gender",
	"Avatar":    "avatar",
	"Domain":    "domain",
	"Available": "available",
}

func jsonName(field string) string {
	if name, ok := jsonNames[field]; ok {
		return name
	}
	return field
}

func fieldsRecord(firstName, lastName, email, gender, avatar, dom *string, available *bool) domain.Record {
	rec := domain.Record{}
	setString(rec, "first_name", firstName)
	setString(rec, "last_name", lastName)
	setString(rec, "email", email)
	setString(rec, "gender", gender)
	setString(rec, "avatar", avatar)
	setString(rec, "domain", dom)
	if available != nil {
		rec["available"] = *available
	}
	return rec
}

func setString(rec domain.Record, key string, val *string) {
	if val != nil {
		rec[key] = *val
	}
}
