package middleware

import "github.com/hospital/records/internal/domain"

// Validator plugs request validation into echo.Context.Validate. Bodies
// with their own Validate method normalize themselves first.
type Validator struct{}

func NewValidator() *Validator { return &Validator{} }

func (v *Validator) Validate(i interface{}) error {
	if s, ok := i.(interface{ Validate() error }); ok {
		return s.Validate()
	}
	return domain.Validate(i)
}
