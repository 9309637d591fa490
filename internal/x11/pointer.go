package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// QueryPointer returns the cursor position in root (desktop) coordinates.
func (c *Connection) QueryPointer() (x, y int, err error) {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query pointer: %w", err)
	}
	return int(pointer.RootX), int(pointer.RootY), nil
}
