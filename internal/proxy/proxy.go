// Package proxy forwards matching request prefixes to the backend origin,
// rewriting the origin so the browser never sees a cross-origin response.
package proxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Proxy struct {
	table   Table
	target  *url.URL
	reverse *httputil.ReverseProxy
	logger  *zap.Logger
}

func New(table Table, logger *zap.Logger) (*Proxy, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	target, err := url.Parse(table.Target)
	if err != nil {
		return nil, err
	}

	p := &Proxy{table: table, target: target, logger: logger}

	p.reverse = &httputil.ReverseProxy{
		Director: func(req *http.Request) {
			req.URL.Scheme = target.Scheme
			req.URL.Host = target.Host
			// changeOrigin: the backend must see itself as the host.
			req.Host = target.Host
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Warn("backend unreachable",
				zap.String("path", r.URL.Path),
				zap.String("target", target.String()),
				zap.Error(err))
			w.WriteHeader(http.StatusBadGateway)
		},
	}

	return p, nil
}

func (p *Proxy) Target() *url.URL { return p.target }

// Middleware intercepts requests matching the rule table and forwards them,
// leaving everything else to the static host behind it.
func (p *Proxy) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rule, ok := p.table.Match(c.Request.URL.Path)
		if !ok {
			c.Next()
			return
		}
		if rule.WebSocket {
			p.tunnel(c.Writer, c.Request)
		} else {
			p.reverse.ServeHTTP(c.Writer, c.Request)
		}
		c.Abort()
	}
}
