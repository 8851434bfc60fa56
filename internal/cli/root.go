// Package cli implements the smsaero command tree. Every command
// builds one client, performs one operation, prints the result as JSON
// and closes the session before returning.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	smsaero "github.com/smsaero/smsaero-go"
	"github.com/smsaero/smsaero-go/internal/config"
)

type app struct {
	out    io.Writer
	errOut io.Writer
	log    *logrus.Logger

	email    string
	apiKey   string
	gate     string
	timeout  time.Duration
	debug    bool
	testMode bool
}

// New builds the root command with environment-sourced defaults.
func New(out, errOut io.Writer) *cobra.Command {
	cfg := config.New()

	a := &app{
		out:    out,
		errOut: errOut,
		log:    logrus.New(),
	}

	root := &cobra.Command{
		Use:           "smsaero",
		Short:         "Command-line client for the SmsAero API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log.SetOutput(a.errOut)
			if a.debug {
				a.log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.email, "email", cfg.Email, "account email (env SMSAERO_EMAIL)")
	pf.StringVar(&a.apiKey, "api_key", cfg.APIKey, "account API key (env SMSAERO_API_KEY)")
	pf.StringVar(&a.gate, "gate", cfg.Gate, "override the gateway URL (env SMSAERO_GATE)")
	pf.DurationVar(&a.timeout, "timeout", cfg.Timeout, "per-request timeout")
	pf.BoolVar(&a.debug, "debug", cfg.Debug, "enable debug logging")
	pf.BoolVar(&a.testMode, "test", false, "use the API test endpoints")

	root.AddCommand(
		a.newSendCmd(),
		a.newStatusCmd(),
		a.newListCmd(),
		a.newBalanceCmd(),
		a.newCardsCmd(),
		a.newTariffsCmd(),
		a.newSignsCmd(),
		a.newAuthCmd(),
		a.newGroupCmd(),
		a.newContactCmd(),
		a.newBlacklistCmd(),
		a.newHLRCmd(),
		a.newOperatorCmd(),
		a.newViberCmd(),
		a.newListenCmd(),
	)
	return root
}

func (a *app) newClient() (*smsaero.Client, error) {
	if a.email == "" || a.apiKey == "" {
		return nil, errors.New("credentials are required: pass --email/--api_key or set SMSAERO_EMAIL/SMSAERO_API_KEY")
	}

	opts := []smsaero.Option{
		smsaero.WithTimeout(a.timeout),
		smsaero.WithLogger(a.log),
	}
	if a.gate != "" {
		opts = append(opts, smsaero.WithGate(a.gate))
	}
	if a.testMode {
		opts = append(opts, smsaero.WithTestMode())
	}
	return smsaero.New(a.email, a.apiKey, opts...)
}

// run builds a client, invokes fn and guarantees the session is closed
// on every path.
func (a *app) run(cmd *cobra.Command, fn func(ctx context.Context, c *smsaero.Client) error) error {
	c, err := a.newClient()
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(cmd.Context(), c)
}

func (a *app) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(a.out, string(data))
	return nil
}

func (a *app) printOK() error {
	return a.printJSON(map[string]bool{"success": true})
}
