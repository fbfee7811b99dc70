// export_test.go exports private functions for white-box testing.
package fs

import "go.trai.ch/bust/internal/core/ports"

// CallbackCount returns the number of callbacks registered on a token handed out by this package.
func CallbackCount(token ports.ChangeToken) int {
	t := token.(*changeToken)
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.callbacks)
}
