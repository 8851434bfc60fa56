// Command smsaero_send sends a single SMS:
//
//	smsaero_send --email user@example.com --api_key KEY --phone 79031234567 --message "Hello"
//
// Credentials default to SMSAERO_EMAIL and SMSAERO_API_KEY. The full
// command surface lives in the smsaero binary; this one exists for the
// classic single-shot interface.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	smsaero "github.com/smsaero/smsaero-go"
	"github.com/smsaero/smsaero-go/internal/config"
)

func main() {
	cfg := config.New()

	email := flag.String("email", cfg.Email, "account email (env SMSAERO_EMAIL)")
	apiKey := flag.String("api_key", cfg.APIKey, "account API key (env SMSAERO_API_KEY)")
	phone := flag.Int64("phone", 0, "phone number to send the SMS to")
	message := flag.String("message", "", "message text")
	flag.Parse()

	if *email == "" || *apiKey == "" || *phone == 0 || *message == "" {
		fmt.Fprintln(os.Stderr, "smsaero_send: --email, --api_key, --phone and --message are required")
		flag.Usage()
		os.Exit(2)
	}

	// os.Exit skips deferred calls, so the session close lives inside
	// run and has finished before the exit code is used.
	os.Exit(run(cfg, *email, *apiKey, *phone, *message))
}

func run(cfg *config.Config, email, apiKey string, phone int64, message string) int {
	opts := []smsaero.Option{smsaero.WithTimeout(cfg.Timeout)}
	if cfg.Gate != "" {
		opts = append(opts, smsaero.WithGate(cfg.Gate))
	}

	client, err := smsaero.New(email, apiKey, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "smsaero_send: %v\n", err)
		return 1
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	msg, err := client.SendSMS(ctx, []int64{phone}, message, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
		return 1
	}

	out, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "smsaero_send: %v\n", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}
