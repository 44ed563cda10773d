package proxy

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The whole point of the proxy is to present one origin.
		return true
	},
}

// tunnel upgrades the browser connection, dials the same path on the
// backend, and relays frames in both directions until either side closes.
func (p *Proxy) tunnel(w http.ResponseWriter, r *http.Request) {
	backendURL := *r.URL
	backendURL.Host = p.target.Host
	if p.target.Scheme == "https" {
		backendURL.Scheme = "wss"
	} else {
		backendURL.Scheme = "ws"
	}

	header := http.Header{}
	if protos := r.Header.Get("Sec-Websocket-Protocol"); protos != "" {
		header.Set("Sec-Websocket-Protocol", protos)
	}
	for _, name := range []string{"Cookie", "User-Agent", "X-Request-Id"} {
		if v := r.Header.Get(name); v != "" {
			header.Set(name, v)
		}
	}

	backend, resp, err := websocket.DefaultDialer.Dial(backendURL.String(), header)
	if err != nil {
		p.logger.Warn("backend websocket dial failed",
			zap.String("url", backendURL.String()),
			zap.Error(err))
		status := http.StatusBadGateway
		if resp != nil {
			status = resp.StatusCode
		}
		http.Error(w, http.StatusText(status), status)
		return
	}
	defer backend.Close()

	respHeader := http.Header{}
	if resp != nil {
		if proto := resp.Header.Get("Sec-Websocket-Protocol"); proto != "" {
			respHeader.Set("Sec-Websocket-Protocol", proto)
		}
	}

	client, err := upgrader.Upgrade(w, r, respHeader)
	if err != nil {
		return
	}
	defer client.Close()

	errc := make(chan error, 2)
	go relay(backend, client, errc)
	go relay(client, backend, errc)

	err = <-errc
	if err != nil && !isExpectedClose(err) {
		p.logger.Debug("websocket tunnel closed", zap.Error(err))
	}
}

func relay(dst, src *websocket.Conn, errc chan<- error) {
	for {
		msgType, data, err := src.ReadMessage()
		if err != nil {
			// Propagate the close code so the far side sees a clean
			// shutdown instead of an abnormal closure.
			code := websocket.CloseNormalClosure
			if ce, ok := err.(*websocket.CloseError); ok && ce.Code != websocket.CloseNoStatusReceived {
				code = ce.Code
			}
			dst.SetWriteDeadline(time.Now().Add(writeWait))
			dst.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, ""))
			errc <- err
			return
		}
		dst.SetWriteDeadline(time.Now().Add(writeWait))
		if err := dst.WriteMessage(msgType, data); err != nil {
			errc <- err
			return
		}
	}
}

func isExpectedClose(err error) bool {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
		return true
	}
	return strings.Contains(err.Error(), "use of closed network connection")
}
