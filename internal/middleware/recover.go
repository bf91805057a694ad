package middleware

import (
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Recover turns a panicking handler into a logged error
func Recover(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var userID int64
					if s := c.Sender(); s != nil {
						userID = s.ID
					}
					logger.Error("Handler panicked",
						zap.Int64("user_id", userID),
						zap.Any("panic", r),
						zap.Stack("stack"),
					)
					err = fmt.Errorf("handler panic: %v", r)
				}
			}()
			return next(c)
		}
	}
}
