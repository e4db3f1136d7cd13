// Package deployer applies the stack's resource handlers against the Azure
// API. Handlers are grouped into phases. Handlers within one phase have no
// dependencies on each other and run concurrently, the way the ARM engine
// parallelizes independent resources. Phases run in order.
package deployer

import (
	"context"
	"sync"
	"time"

	"github.com/giantswarm/backoff"
	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/voicelive-operator/service/stack"
)

const (
	defaultResyncPeriod = 5 * time.Minute
)

type Config struct {
	Logger micrologger.Logger

	// Phases are the ordered groups of resource handlers.
	Phases [][]Resource
	// ResyncPeriod is the pause between two full passes.
	ResyncPeriod time.Duration
	Stack        stack.Stack
}

type Deployer struct {
	logger micrologger.Logger

	bootOnce     sync.Once
	phases       [][]Resource
	resyncPeriod time.Duration
	stack        stack.Stack
}

func New(config Config) (*Deployer, error) {
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}
	if len(config.Phases) == 0 {
		return nil, microerror.Maskf(invalidConfigError, "%T.Phases must not be empty", config)
	}
	for i, phase := range config.Phases {
		if len(phase) == 0 {
			return nil, microerror.Maskf(invalidConfigError, "%T.Phases[%d] must not be empty", config, i)
		}
	}
	if err := config.Stack.Validate(); err != nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Stack.%s", config, err)
	}

	resyncPeriod := config.ResyncPeriod
	if resyncPeriod == 0 {
		resyncPeriod = defaultResyncPeriod
	}

	d := &Deployer{
		logger: config.Logger,

		bootOnce:     sync.Once{},
		phases:       config.Phases,
		resyncPeriod: resyncPeriod,
		stack:        config.Stack,
	}

	return d, nil
}

// Boot runs EnsureCreated passes until the context is cancelled. Each pass is
// retried with exponential backoff before the deployer falls back to waiting
// for the next resync tick.
func (d *Deployer) Boot(ctx context.Context) {
	d.bootOnce.Do(func() {
		for {
			o := func() error {
				return d.EnsureCreated(ctx)
			}
			b := backoff.NewExponential(backoff.LongMaxWait, backoff.ShortMaxInterval)
			n := backoff.NewNotifier(d.logger, ctx)

			err := backoff.RetryNotify(o, b, n)
			if err != nil {
				d.logger.LogCtx(ctx, "level", "error", "message", "deployment pass failed", "stack", microerror.JSON(err))
			} else {
				d.logger.LogCtx(ctx, "level", "debug", "message", "deployment pass done")
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(d.resyncPeriod):
				// resync
			}
		}
	})
}

// EnsureCreated applies all phases once.
func (d *Deployer) EnsureCreated(ctx context.Context) error {
	for _, phase := range d.phases {
		g, gctx := errgroup.WithContext(ctx)

		for _, r := range phase {
			r := r
			g.Go(func() error {
				d.logger.LogCtx(gctx, "level", "debug", "message", "ensuring resource", "resource", r.Name())

				err := r.EnsureCreated(gctx, d.stack)
				if err != nil {
					return microerror.Mask(err)
				}

				d.logger.LogCtx(gctx, "level", "debug", "message", "ensured resource", "resource", r.Name())
				return nil
			})
		}

		err := g.Wait()
		if err != nil {
			return microerror.Mask(err)
		}
	}

	return nil
}

// EnsureDeleted tears the stack down, running phases in reverse order.
func (d *Deployer) EnsureDeleted(ctx context.Context) error {
	for i := len(d.phases) - 1; i >= 0; i-- {
		g, gctx := errgroup.WithContext(ctx)

		for _, r := range d.phases[i] {
			r := r
			g.Go(func() error {
				d.logger.LogCtx(gctx, "level", "debug", "message", "ensuring resource deletion", "resource", r.Name())

				err := r.EnsureDeleted(gctx, d.stack)
				if err != nil {
					return microerror.Mask(err)
				}

				d.logger.LogCtx(gctx, "level", "debug", "message", "ensured resource deletion", "resource", r.Name())
				return nil
			})
		}

		err := g.Wait()
		if err != nil {
			return microerror.Mask(err)
		}
	}

	return nil
}
