//go:build prod

package runtime

import (
	"fmt"

	"go.uber.org/zap"
)

// guard runs a render step in production mode. Panics are recovered and
// logged so a failing component does not take the application down.
func (r *Root) guard(op string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("render panic", zap.String("op", op), zap.String("panic", fmt.Sprint(rec)))
		}
	}()
	fn()
}
