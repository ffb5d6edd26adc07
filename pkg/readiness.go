package mallctl

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/jiffoo/mallctl/pkg/retry"
)

// Probe checks one dependency's own readiness signal. Probes replace the
// fixed sleeps the original launch scripts used between service tiers:
// instead of guessing a startup time, we poll the signal with a bounded
// budget and fail with a clear timeout error.
type Probe interface {
	Name() string
	Check() error
}

// TCPProbe reports ready once the address accepts a connection.
type TCPProbe struct {
	Addr string
}

func (p TCPProbe) Name() string { return fmt.Sprintf("tcp %s", p.Addr) }

func (p TCPProbe) Check() error {
	conn, err := net.DialTimeout("tcp", p.Addr, 2*time.Second)
	if err != nil {
		return err
	}
	return conn.Close()
}

// HTTPProbe reports ready once the URL answers with a non-error status.
type HTTPProbe struct {
	URL string
}

func (p HTTPProbe) Name() string { return fmt.Sprintf("http %s", p.URL) }

func (p HTTPProbe) Check() error {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(p.URL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s answered %s", p.URL, resp.Status)
	}
	return nil
}

// Readiness bounds how long a probe is retried.
type Readiness struct {
	Attempts uint
	Interval time.Duration
	Log      *log.Logger
}

func (w Readiness) logger() *log.Logger {
	if w.Log != nil {
		return w.Log
	}
	return log.StandardLogger()
}

// Wait polls the probe until it reports ready or the budget is spent.
func (w Readiness) Wait(p Probe) error {
	ctx := w.logger().WithFields(log.Fields{"probe": p.Name()})
	ctx.Infof("waiting for %s", p.Name())

	model := retry.Times(w.Attempts).Wait(w.Interval)
	err := model.Try(func(attempt uint) error {
		err := p.Check()
		if err != nil {
			ctx.Debugf("attempt %d/%d: %v", attempt+1, w.Attempts, err)
		}
		return err
	})
	if err != nil {
		return errors.Wrapf(err, "%s not ready after %d attempts over %s", p.Name(), w.Attempts, model.Budget())
	}

	ctx.Infof("%s is ready", p.Name())
	return nil
}

// Gate adapts a probe into a sequence gate.
func (w Readiness) Gate(p Probe) Gate {
	return func() error {
		return w.Wait(p)
	}
}

// SleepGate waits a constant duration. Pipelines may still declare one for
// dependencies that expose no readiness signal; the built-in plans do not.
func SleepGate(d time.Duration, logger *log.Logger) Gate {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return func() error {
		logger.Infof("waiting %s", d)
		time.Sleep(d)
		return nil
	}
}
