package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/ubu-lite/internal/api"
	"github.com/hongminglow/ubu-lite/internal/config"
	"github.com/hongminglow/ubu-lite/internal/gateway"
	"github.com/hongminglow/ubu-lite/internal/logging"
	"github.com/hongminglow/ubu-lite/internal/outcome"
	"github.com/hongminglow/ubu-lite/internal/session"
	"github.com/hongminglow/ubu-lite/internal/telemetry"
)

// app is what every command runs against.
type app struct {
	api   *api.API
	store *session.Store
	log   logrus.FieldLogger
	out   io.Writer
}

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{"register", "create an account and sign in", cmdRegister},
	{"login", "sign in and store the session", cmdLogin},
	{"logout", "forget the stored session", cmdLogout},
	{"whoami", "show the stored session", cmdWhoami},
	{"creatives", "browse or search creative profiles", cmdCreatives},
	{"services", "browse services, or manage your own", cmdServices},
	{"categories", "list service categories", cmdCategories},
	{"profile", "show or edit your creative profile", cmdProfile},
	{"bookings", "list, create and manage bookings", cmdBookings},
	{"messages", "read or post booking messages", cmdMessages},
	{"portfolio", "list, upload or delete portfolio items", cmdPortfolio},
	{"wallet", "show wallet balances", cmdWallet},
	{"withdraw", "withdraw from the wallet (demo)", cmdWithdraw},
	{"escrows", "list, fund (demo) or fulfill escrows", cmdEscrows},
	{"orders", "list or show orders", cmdOrders},
	{"checkout", "run the demo checkout up to payment", cmdCheckout},
}

// usageError is a bad invocation rather than a failed call.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func main() {
	verbose := flag.Bool("v", false, "log every call at debug level")
	stats := flag.Bool("stats", false, "print call metrics to stderr on exit")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(2)
	}
	name, args := flag.Arg(0), flag.Args()[1:]
	if name == "help" {
		printUsage()
		return
	}
	cmd, ok := lookup(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		printUsage()
		os.Exit(2)
	}

	envErr := godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	level := cfg.LogLevel
	if *verbose {
		level = "debug"
	}
	log := logging.New(level, cfg.LogFormat, os.Stderr)
	if envErr != nil {
		log.Debug("no .env file found; relying on existing environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	store, kv, err := session.Open(ctx, cfg, log)
	if err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "session:", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	collector := telemetry.NewCollector(reg)
	client := gateway.New(cfg.APIBase,
		gateway.WithLogger(log),
		gateway.WithHooks(collector.Hooks()),
		gateway.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	)
	a := &app{
		api:   api.New(client, store),
		store: store,
		log:   log,
		out:   os.Stdout,
	}

	err = cmd.run(ctx, a, args)
	stop()
	if *stats {
		printStats(os.Stderr, reg)
	}
	if cerr := kv.Close(); cerr != nil {
		log.WithError(cerr).Warn("close session backend")
	}

	var ue *usageError
	switch {
	case err == nil:
	case errors.As(err, &ue):
		fmt.Fprintf(os.Stderr, "%s: %s\n", name, ue.msg)
		os.Exit(2)
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, outcome.Present(err))
		os.Exit(1)
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `UBU Lite marketplace client

Usage:
  ubu [-v] [-stats] <command> [options]

Commands:`)
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-11s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(os.Stderr, `
Run "ubu <command> -h" for the options of a command.
Configuration comes from the environment or a .env file (UBU_API_BASE, UBU_SESSION_BACKEND, ...).`)
}

// print writes v as indented JSON.
func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emit prints the value of a successful call or returns its error.
func emit[T any](a *app, o outcome.Outcome[T]) error {
	v, err := o.Get()
	if err != nil {
		return err
	}
	return a.print(v)
}

// printStats dumps the request counters gathered during the run.
func printStats(w io.Writer, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		fmt.Fprintln(w, "stats:", err)
		return
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s%s %g", mf.GetName(), labels, m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				lines = append(lines, fmt.Sprintf("%s%s count=%d sum=%.3fs", mf.GetName(), labels, h.GetSampleCount(), h.GetSampleSum()))
			}
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}
