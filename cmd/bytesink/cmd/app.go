package cmd

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lawrencejones/bytesink/internal/telem"
	"github.com/lawrencejones/bytesink/pkg/sinks"
	"github.com/lawrencejones/bytesink/pkg/sinks/descriptor"
	"github.com/lawrencejones/bytesink/pkg/sinks/format"

	"contrib.go.opencensus.io/exporter/jaeger"
	"github.com/alecthomas/kingpin"
	"github.com/davecgh/go-spew/spew"
	"github.com/getsentry/sentry-go"
	kitlog "github.com/go-kit/kit/log"
	level "github.com/go-kit/kit/log/level"
	"github.com/google/uuid"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opencensus.io/trace"
)

var logger kitlog.Logger

var (
	app = kingpin.New("bytesink", "Print integers through an unbuffered byte sink").Version(versionStanza())

	// Global flags
	debug               = app.Flag("debug", "Enable debug logging").Default("false").Bool()
	metricsAddress      = app.Flag("metrics-address", "Address to bind HTTP metrics listener").Default("127.0.0.1").String()
	metricsPort         = app.Flag("metrics-port", "Port to bind HTTP metrics listener, 0 to disable").Default("0").Uint16()
	jaegerAgentEndpoint = app.Flag("jaeger-agent-endpoint", "Endpoint for Jaeger agent, empty to disable tracing").Default("").String()
	sentryDSN           = app.Flag("sentry-dsn", "Sentry DSN to report errors to").Envar("SENTRY_DSN").Default("").String()

	printCmd           = app.Command("print", "Print integers to the output descriptor (use -- before negative values)")
	printNewline       = printCmd.Flag("newline", "Terminate every integer with a newline").Default("false").Bool()
	printDryRun        = printCmd.Flag("dry-run", "Dump parsed values instead of writing them").Default("false").Bool()
	printInstrument    = printCmd.Flag("instrument", "Count bytes and faults in Prometheus metrics").Default("true").Bool()
	printOutputOptions = new(descriptor.Options).Bind(printCmd, "output.")
	printValues        = printCmd.Arg("values", "Integers to print").Required().Int64List()
)

// SilentError should be returned when the command wants to skip all logging of the error
// it has encountered. It wraps no error content as we should never inspect it.
var SilentError = errors.New("silent error")

type UsageError struct {
	error
}

func Run(args []string) (err error) {
	command, err := app.Parse(args)
	if err != nil {
		app.Usage(args)
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		return err
	}

	logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	if *debug {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.DefaultCaller,
		"run_id", uuid.New().String())
	stdlog.SetOutput(kitlog.NewStdlibAdapter(logger))

	// Setup an error handler to log and print usage
	defer func() {
		var usageErr UsageError
		switch {
		// Do nothing if no error
		case err == nil:
			return
		// Suppress silent errors
		case errors.Is(err, SilentError):
			return
		// If we're a usage error, unwrap it and print out usage before returning
		case errors.As(err, &usageErr):
			context, _ := app.ParseContext(args)
			app.UsageForContext(context)
			fmt.Fprintf(os.Stderr, "error: %s\n", usageErr.Error())

			err = usageErr.error
			return
		// Otherwise we probably want to log our error, and tell Sentry if it's listening
		default:
			logger.Log("event", "error", "error", err, "fault", sinks.Fault(err), "msg", "exiting with error")
			if hub := sentry.CurrentHub(); hub.Client() != nil {
				if eventID := hub.CaptureException(err); eventID != nil {
					logger.Log("event", "capture_exception", "event_id", *eventID)
				}
				sentry.Flush(2 * time.Second)
			}
		}
	}()

	if *sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: *sentryDSN, Release: Version}); err != nil {
			return UsageError{fmt.Errorf("invalid sentry configuration: %w", err)}
		}
	}

	// This is the root context for the application. Once terminated, everything we have
	// started should also finish.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = telem.WithLogger(ctx, logger)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	defer signal.Stop(sigc)

	var g run.Group

	{
		logger := kitlog.With(logger, "component", "shutdown_handler")

		ctx, cancel := context.WithCancel(ctx)

		// If we're asked to shutdown, we use the rungroup to trigger interrupts for every
		// component
		g.Add(
			func() error {
				select {
				case <-sigc:
					logger.Log("event", "requesting_shutdown", "msg", "received signal, requesting shutdown")
				case <-ctx.Done():
				}

				return nil
			},
			func(error) {
				cancel() // end the shutdown select
			},
		)
	}

	if *metricsPort != 0 {
		logger := kitlog.With(logger, "component", "metrics")

		// Metrics and debug endpoints
		mux := http.NewServeMux()

		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

		srv := &http.Server{Addr: fmt.Sprintf("%s:%d", *metricsAddress, *metricsPort), Handler: mux}

		g.Add(
			func() error {
				logger.Log("event", "listen", "address", *metricsAddress, "port", *metricsPort)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return err
				}

				return nil
			},
			func(error) {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(ctx)
			},
		)
	}

	if *jaegerAgentEndpoint != "" {
		// Tracing with jaeger
		jexporter, err := jaeger.NewExporter(jaeger.Options{
			AgentEndpoint: *jaegerAgentEndpoint,
			Process: jaeger.Process{
				ServiceName: "bytesink",
			},
		})

		if err != nil {
			return UsageError{err}
		}

		defer jexporter.Flush()

		trace.RegisterExporter(jexporter)
		trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
	}

	switch command {
	case printCmd.FullCommand():
		if *printDryRun {
			spew.Dump(*printValues)
			return nil
		}

		fd, file, err := descriptor.Open(*printOutputOptions)
		if err != nil {
			return UsageError{err}
		}

		if file != os.Stdout && file != os.Stderr {
			defer file.Close()
		}

		var sink sinks.Sink = fd
		if *printInstrument {
			sink = sinks.NewInstrumentedSink(logger, printOutputOptions.Path, fd)
		}

		out := format.New(sink)

		{
			ctx, cancel := context.WithCancel(ctx)

			g.Add(
				func() error {
					return printAll(ctx, out, *printValues, *printNewline)
				},
				func(error) {
					cancel()
				},
			)
		}

		return g.Run()
	}

	return UsageError{fmt.Errorf("unsupported command")}
}
