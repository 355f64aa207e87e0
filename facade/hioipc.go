// File: facade/hioipc.go
// Unified facade layer for the hioload-ipc library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This file defines the IPC struct, which aggregates the core components
// of hioload-ipc behind a single facade: the endpoint registry, the
// dispatch work queue, pipe construction with pooled telemetry, and the
// control interface. The facade exposes methods to start/stop the
// system, create pipes, register endpoints, and retrieve runtime
// services such as Control and Registry.

package facade

import (
	"fmt"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/momentics/hioload-ipc/api"
	"github.com/momentics/hioload-ipc/control"
	"github.com/momentics/hioload-ipc/endpoint"
	"github.com/momentics/hioload-ipc/pipe"
)

// Config holds parameters immutable per run.
type Config struct {
	PipeCapacity  int  `envconfig:"PIPE_CAPACITY" default:"65536"`  // default pipe buffer size in bytes
	EndpointSlots int  `envconfig:"ENDPOINT_SLOTS" default:"16"`    // maximum registered endpoints
	DispatchDepth int  `envconfig:"DISPATCH_DEPTH" default:"64"`    // callback work queue depth
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`  // Prometheus collectors on/off
	EnableDebug   bool `envconfig:"ENABLE_DEBUG" default:"true"`    // debug probes on/off
}

// envPrefix namespaces the facade's environment variables (HIOIPC_*).
const envPrefix = "hioipc"

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		PipeCapacity:  64 * 1024,
		EndpointSlots: 16,
		DispatchDepth: 64,
		EnableMetrics: true,
		EnableDebug:   true,
	}
}

// FromEnv builds a Config from HIOIPC_* environment variables, falling
// back to defaults for unset keys.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return &cfg, nil
}

// IPC is the main facade type.
// It implements api.GracefulShutdown to allow unified shutdown logic.
type IPC struct {
	registry *endpoint.Registry
	ctrl     *control.Controller
	metrics  *control.Metrics
	log      *zap.Logger

	config    *Config
	mu        sync.Mutex
	started   bool
	closed    bool
	startedAt time.Time
}

// Version is the library release identifier reported through Info.
const Version = "0.1.0"

// Ensure compliance with api.GracefulShutdown.
var _ api.GracefulShutdown = (*IPC)(nil)

// Option customizes facade construction.
type Option func(*options)

type options struct {
	logger     *zap.Logger
	registerer prometheus.Registerer
}

// WithLogger installs a logger used by dispatch and lifecycle paths.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.logger = log }
}

// WithRegisterer selects where Prometheus collectors are registered.
// Defaults to prometheus.DefaultRegisterer when metrics are enabled.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// New constructs the IPC facade with the given configuration.
func New(cfg *Config, opts ...Option) (*IPC, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.PipeCapacity <= 0 {
		return nil, api.NewError(api.ErrCodeInternal, "pipe capacity must be positive").
			WithContext("capacity", cfg.PipeCapacity)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = zap.NewNop()
	}

	ipc := &IPC{
		ctrl:   control.NewController(),
		log:    log,
		config: cfg,
	}

	if cfg.EnableMetrics {
		reg := o.registerer
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		ipc.metrics = control.NewMetrics(reg)
	}

	ipc.registry = endpoint.NewRegistry(endpoint.Config{
		Slots:         cfg.EndpointSlots,
		PipeCapacity:  cfg.PipeCapacity,
		DispatchDepth: cfg.DispatchDepth,
		Logger:        log,
		Observer:      observerOrNil(ipc.metrics),
		PipeObs:       pipeObsOrNil(ipc.metrics),
	})

	ipc.ctrl.SetConfig(map[string]any{
		"pipe.capacity":   cfg.PipeCapacity,
		"endpoint.slots":  cfg.EndpointSlots,
		"dispatch.depth":  cfg.DispatchDepth,
		"metrics.enabled": cfg.EnableMetrics,
	})
	if cfg.EnableDebug {
		ipc.ctrl.RegisterDebugProbe("registry", func() any { return ipc.registry.Stats() })
		ipc.ctrl.RegisterDebugProbe("service", func() any { return ipc.Info() })
	}
	return ipc, nil
}

// Info returns descriptive service metadata for external tooling.
func (f *IPC) Info() api.ServiceInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return api.ServiceInfo{
		Name:      "hioload-ipc",
		Version:   Version,
		StartedAt: f.startedAt,
	}
}

// observerOrNil avoids a typed-nil interface when metrics are disabled.
func observerOrNil(m *control.Metrics) endpoint.DispatchObserver {
	if m == nil {
		return nil
	}
	return m
}

func pipeObsOrNil(m *control.Metrics) api.PipeObserver {
	if m == nil {
		return nil
	}
	return m
}

// Start begins endpoint dispatch. Registrations must already be in place.
func (f *IPC) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return api.ErrAlreadyClosed
	}
	if f.started {
		return api.ErrAlreadyExists
	}
	if err := f.registry.Start(); err != nil {
		return err
	}
	f.started = true
	f.startedAt = time.Now()
	f.log.Info("hioload-ipc started",
		zap.Int("endpoint_slots", f.config.EndpointSlots),
		zap.Int("pipe_capacity", f.config.PipeCapacity))
	return nil
}

// Shutdown stops dispatch and tears down all endpoints.
func (f *IPC) Shutdown() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return api.ErrAlreadyClosed
	}
	f.closed = true
	if err := f.registry.Close(); err != nil && err != api.ErrAlreadyClosed {
		return err
	}
	f.log.Info("hioload-ipc stopped")
	return nil
}

// NewPipe creates a standalone pipe wired to the facade's metrics
// observer. The capacity follows the live "pipe.capacity" config key,
// so SetConfig retunes pipes created afterwards.
func (f *IPC) NewPipe() *pipe.Pipe {
	return f.NewPipeWithCapacity(f.ctrl.Config().GetInt("pipe.capacity", f.config.PipeCapacity))
}

// NewPipeWithCapacity creates a standalone pipe with explicit capacity.
// The "metrics.enabled" config key gates the observer at creation time.
func (f *IPC) NewPipeWithCapacity(capacity int) *pipe.Pipe {
	p := pipe.New(make([]byte, capacity))
	if f.metrics != nil && f.ctrl.Config().GetBool("metrics.enabled", true) {
		p.SetObserver(f.metrics)
	}
	return p
}

// Registry returns the endpoint registration façade.
func (f *IPC) Registry() *endpoint.Registry { return f.registry }

// Control returns the runtime config/introspection interface.
func (f *IPC) Control() api.Control { return f.ctrl }
