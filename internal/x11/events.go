package x11

import (
	"context"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// ChangeKindClientList marks a change to the root _NET_CLIENT_LIST property
// (a window was mapped or unmapped). ChangeKindWorkspace marks a change to
// _NET_CURRENT_DESKTOP.
const (
	ChangeKindClientList = "clientlist"
	ChangeKindWorkspace  = "workspace"
)

// WatchProperties subscribes to root-window property changes relevant to
// window activity and streams a change kind per notification. The returned
// channel is closed when the context is cancelled or the X connection dies.
//
// Notifications are coalesced if the consumer lags; consumers re-query
// authoritative state per notification, so a dropped duplicate is harmless.
func (c *Connection) WatchProperties(ctx context.Context) (<-chan string, error) {
	clientList, err := xprop.Atm(c.XUtil, "_NET_CLIENT_LIST")
	if err != nil {
		return nil, fmt.Errorf("failed to intern _NET_CLIENT_LIST: %w", err)
	}
	currentDesktop, err := xprop.Atm(c.XUtil, "_NET_CURRENT_DESKTOP")
	if err != nil {
		return nil, fmt.Errorf("failed to intern _NET_CURRENT_DESKTOP: %w", err)
	}

	if err := xwindow.New(c.XUtil, c.Root).Listen(xproto.EventMaskPropertyChange); err != nil {
		return nil, fmt.Errorf("failed to listen for root property changes: %w", err)
	}

	changes := make(chan string, 64)

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		var kind string
		switch ev.Atom {
		case clientList:
			kind = ChangeKindClientList
		case currentDesktop:
			kind = ChangeKindWorkspace
		default:
			return
		}
		select {
		case changes <- kind:
		default:
		}
	}).Connect(c.XUtil, c.Root)

	go func() {
		<-ctx.Done()
		xevent.Quit(c.XUtil)
	}()

	go func() {
		defer close(changes)
		c.EventLoop()
	}()

	return changes, nil
}
