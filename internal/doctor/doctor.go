// Package doctor runs the deployment-verification checks an operator would
// otherwise do with curl: the backend answers 404 on its root (it has no
// root route), the configuration document is served and well formed, and the
// API prefix reaches the backend through the proxy.
package doctor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/qsystem/frontgate/internal/runtimecfg"
)

type Check struct {
	Name string
	Err  error
}

func (c Check) OK() bool { return c.Err == nil }

type Doctor struct {
	// Backend is the backend origin, Frontend the gateway origin.
	Backend    string
	Frontend   string
	ConfigPath string
	APIPrefix  string

	client *resty.Client
}

func New(backend, frontend, configPath, apiPrefix string) *Doctor {
	return &Doctor{
		Backend:    strings.TrimRight(backend, "/"),
		Frontend:   strings.TrimRight(frontend, "/"),
		ConfigPath: configPath,
		APIPrefix:  apiPrefix,
		client:     resty.New().SetTimeout(10 * time.Second),
	}
}

func (d *Doctor) Run(ctx context.Context) []Check {
	return []Check{
		{Name: "backend root answers 404", Err: d.checkBackendRoot(ctx)},
		{Name: "configuration document served", Err: d.checkConfig(ctx)},
		{Name: "api prefix proxied to backend", Err: d.checkProxy(ctx)},
	}
}

func (d *Doctor) checkBackendRoot(ctx context.Context) error {
	resp, err := d.client.R().SetContext(ctx).Get(d.Backend + "/")
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	if resp.StatusCode() != 404 {
		return fmt.Errorf("expected 404 from backend root, got %d", resp.StatusCode())
	}
	return nil
}

func (d *Doctor) checkConfig(ctx context.Context) error {
	resp, err := d.client.R().SetContext(ctx).Get(d.Frontend + d.ConfigPath)
	if err != nil {
		return fmt.Errorf("frontend unreachable: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("expected 200 from %s, got %d", d.ConfigPath, resp.StatusCode())
	}
	var doc runtimecfg.Document
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		return fmt.Errorf("configuration is not valid JSON: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	return nil
}

func (d *Doctor) checkProxy(ctx context.Context) error {
	resp, err := d.client.R().SetContext(ctx).Get(d.Frontend + d.APIPrefix + "/")
	if err != nil {
		return fmt.Errorf("frontend unreachable: %w", err)
	}
	// Any backend-originated status will do; 502 means the proxy could not
	// reach the backend at all.
	if resp.StatusCode() == 502 {
		return fmt.Errorf("proxy answered 502, backend origin down or misconfigured")
	}
	return nil
}
