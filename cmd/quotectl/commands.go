package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/jsamuelsen/quote-api/internal/adapters/clients"
	"github.com/jsamuelsen/quote-api/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-api/internal/app"
	"github.com/jsamuelsen/quote-api/internal/domain"
	"github.com/jsamuelsen/quote-api/internal/platform/config"
	"github.com/jsamuelsen/quote-api/internal/platform/logging"
)

const (
	defaultServer  = "http://localhost:3000"
	defaultTimeout = 10 * time.Second
)

var (
	serverFlag = &cli.StringFlag{
		Name:    "server",
		Aliases: []string{"s"},
		Value:   defaultServer,
		Usage:   "Base URL of the quote API",
		Sources: cli.EnvVars("QUOTECTL_SERVER"),
	}

	timeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Value: defaultTimeout,
		Usage: "Timeout for a single HTTP attempt",
	}

	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Value:   "warn",
		Usage:   "Log level (trace, debug, info, warn, error)",
		Sources: cli.EnvVars("QUOTECTL_LOG_LEVEL"),
	}
)

// newApp builds the root command. Results go to out as indented JSON;
// logs go to errOut.
func newApp(out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "quotectl",
		Usage:     "Manage quotes on a running quote API",
		Version:   fmt.Sprintf("%s (%s)", Version, Commit),
		Writer:    out,
		ErrWriter: errOut,
		Flags:     []cli.Flag{serverFlag, timeoutFlag, logLevelFlag},
		Commands: []*cli.Command{
			listCmd(),
			randomCmd(),
			getCmd(),
			addCmd(),
			deleteCmd(),
			healthCmd(),
			importCmd(),
		},
	}
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List every quote in insertion order",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := quoteClient(cmd)
			if err != nil {
				return err
			}

			quotes, err := client.List(ctx)
			if err != nil {
				return fmt.Errorf("listing quotes: %w", err)
			}

			views := make([]quoteView, len(quotes))
			for i, q := range quotes {
				views[i] = toView(q)
			}

			return writeJSON(cmd, views)
		},
	}
}

func randomCmd() *cli.Command {
	return &cli.Command{
		Name:  "random",
		Usage: "Show a randomly picked quote",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := quoteClient(cmd)
			if err != nil {
				return err
			}

			q, err := client.Random(ctx)
			if err != nil {
				return fmt.Errorf("picking a quote: %w", err)
			}

			return writeJSON(cmd, toView(q))
		},
	}
}

func getCmd() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show one quote",
		ArgsUsage: "ID",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := singleArg(cmd, "ID")
			if err != nil {
				return err
			}

			client, err := quoteClient(cmd)
			if err != nil {
				return err
			}

			q, err := client.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("getting quote %s: %w", id, err)
			}

			return writeJSON(cmd, toView(q))
		},
	}
}

func addCmd() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Create a quote",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Required: true, Usage: "Quote text"},
			&cli.StringFlag{Name: "author", Aliases: []string{"a"}, Required: true, Usage: "Quote author"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := quoteClient(cmd)
			if err != nil {
				return err
			}

			q, err := client.Create(ctx, cmd.String("text"), cmd.String("author"))
			if err != nil {
				return fmt.Errorf("creating quote: %w", err)
			}

			return writeJSON(cmd, toView(q))
		},
	}
}

func deleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Remove a quote and show what was removed",
		ArgsUsage: "ID",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := singleArg(cmd, "ID")
			if err != nil {
				return err
			}

			client, err := quoteClient(cmd)
			if err != nil {
				return err
			}

			q, err := client.Delete(ctx, id)
			if err != nil {
				return fmt.Errorf("deleting quote %s: %w", id, err)
			}

			return writeJSON(cmd, struct {
				Removed quoteView `json:"removed"`
			}{Removed: toView(q)})
		},
	}
}

func healthCmd() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Show the server's health and uptime",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := quoteClient(cmd)
			if err != nil {
				return err
			}

			h, err := client.Health(ctx)
			if err != nil {
				return fmt.Errorf("checking health: %w", err)
			}

			return writeJSON(cmd, healthView{
				Status: h.Status,
				Uptime: h.Uptime.Round(time.Second).String(),
				Time:   h.Time.UTC().Format(time.RFC3339),
			})
		},
	}
}

func importCmd() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Create every quote listed in a YAML file",
		ArgsUsage: "FILE",
		Description: `FILE holds a list of quotes:

  quotes:
    - text: Simplicity is the soul of efficiency.
      author: Austin Freeman

Entries are created concurrently. Entries the server rejects are reported
and the command exits non-zero.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Value:   app.DefaultImportConcurrency,
				Usage:   "Maximum in-flight create requests",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := singleArg(cmd, "FILE")
			if err != nil {
				return err
			}

			inputs, err := readQuoteFile(path)
			if err != nil {
				return err
			}

			client, err := quoteClient(cmd)
			if err != nil {
				return err
			}

			result, err := app.NewImporter(app.ImporterConfig{
				Target:      client,
				Concurrency: int(cmd.Int("concurrency")),
				Logger:      newLogger(cmd),
			}).Import(ctx, inputs)
			if err != nil {
				return err
			}

			report := importView{Created: make([]string, len(result.Created))}
			for i, q := range result.Created {
				report.Created[i] = q.ID
			}

			for _, f := range result.Failed {
				report.Failed = append(report.Failed, failureView{Index: f.Index, Error: f.Err.Error()})
			}

			if err := writeJSON(cmd, report); err != nil {
				return err
			}

			if len(result.Failed) > 0 {
				return fmt.Errorf("%d of %d quotes failed to import", len(result.Failed), len(inputs))
			}

			return nil
		},
	}
}

type quoteView struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

func toView(q domain.Quote) quoteView {
	return quoteView{ID: q.ID, Text: q.Text, Author: q.Author}
}

type healthView struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
	Time   string `json:"time"`
}

type failureView struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type importView struct {
	Created []string      `json:"created"`
	Failed  []failureView `json:"failed,omitempty"`
}

func singleArg(cmd *cli.Command, name string) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", fmt.Errorf("usage: %s %s", cmd.FullName(), name)
	}

	return cmd.Args().First(), nil
}

func readQuoteFile(path string) ([]app.QuoteInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	inputs, err := app.ParseQuoteFile(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(inputs) == 0 {
		return nil, errors.New("no quotes to import in " + path)
	}

	return inputs, nil
}

func newLogger(cmd *cli.Command) *slog.Logger {
	return logging.NewWithWriter(&logging.Config{
		Level:   cmd.String(logLevelFlag.Name),
		Format:  "text",
		Service: "quotectl",
		Version: Version,
	}, cmd.Root().ErrWriter)
}

// quoteClient builds the API adapter from the global flags. Retries and
// the circuit breaker use the server-side client defaults.
func quoteClient(cmd *cli.Command) (*acl.QuoteAPIClient, error) {
	logger := newLogger(cmd)

	httpClient, err := clients.New(clients.Config{
		BaseURL:     cmd.String(serverFlag.Name),
		ServiceName: "quote-api",
		Timeout:     cmd.Duration(timeoutFlag.Name),
		Retry: config.RetryConfig{
			MaxAttempts:     config.DefaultClientRetryMaxAttempts,
			InitialInterval: config.DefaultClientRetryInitialInterval,
			MaxInterval:     config.DefaultClientRetryMaxInterval,
			Multiplier:      config.DefaultClientRetryMultiplier,
			JitterFactor:    config.DefaultClientRetryJitterFactor,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   config.DefaultClientCircuitMaxFailures,
			Timeout:       config.DefaultClientCircuitTimeout,
			HalfOpenLimit: config.DefaultClientCircuitHalfOpenLimit,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	return acl.NewQuoteAPIClient(acl.QuoteAPIClientConfig{
		Client: httpClient,
		Logger: logger,
	}), nil
}

func writeJSON(cmd *cli.Command, v any) error {
	enc := json.NewEncoder(cmd.Root().Writer)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return enc.Encode(v)
}
