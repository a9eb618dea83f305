package middleware

import (
	"github.com/chrisdamba/roaddash/internal/logger"
)

type Middleware struct {
	log logger.Logger
}

func NewMiddleware(log logger.Logger) *Middleware {
	return &Middleware{log: log}
}
