package middleware

import (
	"errors"

	"github.com/glkt/upkeep/internal/errs"
	"github.com/glkt/upkeep/internal/logger"
)

var ErrLogged = errors.New("already logged")

func FlagComboError(code errs.Code, a ...any) error {
	msg := errs.Msg(code, a...)
	logger.LogError("%s", msg)
	return ErrLogged
}
