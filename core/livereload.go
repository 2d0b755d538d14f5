package core

import (
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const LiveReloadPath = "/__reload"

// LiveReloadScript reconnects to LiveReloadPath and reloads the page on
// every message.
const LiveReloadScript template.HTML = `<script>
(function () {
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "` + LiveReloadPath + `");
  ws.onmessage = function () { location.reload(); };
})();
</script>`

type LiveReloader interface {
	BroadcastReload()
	Handler(http.ResponseWriter, *http.Request)
}

// reloadWriteTimeout bounds how long one stalled tab can hold up a reload
// broadcast to the others.
const reloadWriteTimeout = time.Second

var reloadMessage = []byte("reload")

type liveReloader struct {
	lock     sync.Mutex
	tabs     map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
}

var NewLiveReloader = func() LiveReloader {
	return &liveReloader{
		tabs: map[*websocket.Conn]struct{}{},
		upgrader: websocket.Upgrader{
			// Dev only.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler upgrades a browser tab and keeps it registered until the tab
// goes away. A failed upgrade has already been answered by the upgrader.
func (lr *liveReloader) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := lr.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	lr.register(conn)
	go lr.readUntilClosed(conn)
}

// readUntilClosed drains control frames so close and ping are handled, and
// unregisters the tab once the connection fails.
func (lr *liveReloader) readUntilClosed(conn *websocket.Conn) {
	defer lr.drop(conn)
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

// BroadcastReload tells every registered tab to reload. Tabs that cannot be
// written to are dropped.
func (lr *liveReloader) BroadcastReload() {
	lr.lock.Lock()
	defer lr.lock.Unlock()

	var stale []*websocket.Conn
	for conn := range lr.tabs {
		_ = conn.SetWriteDeadline(time.Now().Add(reloadWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, reloadMessage); err != nil {
			stale = append(stale, conn)
		}
	}
	for _, conn := range stale {
		lr.dropLocked(conn)
	}
}

func (lr *liveReloader) register(conn *websocket.Conn) {
	lr.lock.Lock()
	lr.tabs[conn] = struct{}{}
	lr.lock.Unlock()
}

func (lr *liveReloader) drop(conn *websocket.Conn) {
	lr.lock.Lock()
	defer lr.lock.Unlock()
	lr.dropLocked(conn)
}

func (lr *liveReloader) dropLocked(conn *websocket.Conn) {
	if _, ok := lr.tabs[conn]; !ok {
		return
	}
	delete(lr.tabs, conn)
	_ = conn.Close()
}

func (lr *liveReloader) clientCount() int {
	lr.lock.Lock()
	defer lr.lock.Unlock()
	return len(lr.tabs)
}
