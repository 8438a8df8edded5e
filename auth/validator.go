package auth

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pavelsokolov/yazen-chat-app/errors"
)

var validate = validator.New()

type DisplayNameRequest struct {
	Name string `validate:"required,min=2,max=30"`
}

// ValidateDisplayName checks the trimmed display name against the
// room's naming rules.
func ValidateDisplayName(name string) error {
	req := DisplayNameRequest{Name: strings.TrimSpace(name)}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidDisplayName, err)
	}
	return nil
}
