package goroutine

import (
	"runtime/debug"

	"github.com/ignatzorin/fits-backend/internal/logger"
)

// SafeGo запускает горутину с обработкой panic.
// Используется для фоновой отправки уведомлений: их падение не должно
// ронять обработку запроса.
func SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.WithComponent("goroutine").
					Errorf("panic в горутине: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}
