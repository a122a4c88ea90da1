package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultMetricPath = "/metrics"

type Logger interface {
	Errorf(format string, v ...interface{})
}

// RequestCounterURLLabelMappingFn controls the cardinality of the "url" label,
// e.g. by returning the route template instead of the raw path.
type RequestCounterURLLabelMappingFn func(c *gin.Context) string

// Prometheus instruments a gin engine and exposes the metrics endpoint, either
// on the same engine or on a dedicated listen address.
type Prometheus struct {
	reqCnt *prometheus.CounterVec
	reqDur *prometheus.HistogramVec

	router        *gin.Engine
	listenAddress string
	metricsPath   string
	urlLabelFn    RequestCounterURLLabelMappingFn
	logger        Logger
}

type NewPrometheusOptions struct {
	Subsystem               string
	MetricsPath             string
	ReqCntURLLabelMappingFn RequestCounterURLLabelMappingFn
	Logger                  Logger
}

func NewPrometheus(options NewPrometheusOptions) *Prometheus {
	p := &Prometheus{
		metricsPath: options.MetricsPath,
		urlLabelFn:  options.ReqCntURLLabelMappingFn,
		logger:      options.Logger,
	}
	if p.metricsPath == "" {
		p.metricsPath = defaultMetricPath
	}
	if p.urlLabelFn == nil {
		p.urlLabelFn = func(c *gin.Context) string { return c.Request.URL.Path }
	}

	labels := []string{"code", "method", "url"}
	p.reqCnt = register(p.logger, prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: options.Subsystem,
		Name:      "req_total",
		Help:      "How many HTTP requests processed, partitioned by status code and HTTP method.",
	}, labels))
	p.reqDur = register(p.logger, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: options.Subsystem,
		Name:      "req_dur_ms",
		Help:      "The HTTP request latencies in milliseconds.",
		Buckets:   HistogramBuckets,
	}, labels))
	return p
}

// register adds c to the default registry, reusing an identical collector
// that is already registered.
func register[C prometheus.Collector](log Logger, c C) C {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		if log != nil {
			log.Errorf("metric could not be registered in Prometheus, err=%v", err)
		}
	}
	return c
}

// SetListenAddress exposes metrics on a separate address instead of the
// instrumented engine, keeping GET /metrics out of the access log.
func (p *Prometheus) SetListenAddress(address string) {
	p.listenAddress = address
	if p.listenAddress != "" {
		p.router = gin.New()
	}
}

// Use adds the middleware to a gin engine and mounts the metrics endpoint.
func (p *Prometheus) Use(e *gin.Engine) {
	e.Use(p.HandlerFunc())
	handler := gin.WrapH(promhttp.Handler())
	if p.listenAddress == "" {
		e.GET(p.metricsPath, handler)
		return
	}
	p.router.GET(p.metricsPath, handler)
	go func() {
		if err := p.router.Run(p.listenAddress); err != nil && p.logger != nil {
			p.logger.Errorf("metrics server stopped: %v", err)
		}
	}()
}

// HandlerFunc defines handler function for middleware
func (p *Prometheus) HandlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == p.metricsPath {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		url := p.urlLabelFn(c)
		p.reqDur.WithLabelValues(status, c.Request.Method, url).Observe(MillisecondsSince(start))
		p.reqCnt.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}

// MillisecondsSince returns the elapsed time since start as float milliseconds.
func MillisecondsSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
