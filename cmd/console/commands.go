package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/opsgate/console/internal/bootstrap"
	domainauth "github.com/opsgate/console/internal/domain/auth"
	apperrors "github.com/opsgate/console/internal/errors"
	"github.com/opsgate/console/internal/ports"
)

type loginOptions struct {
	Email    string
	Password string
	Wait     time.Duration
	Timeout  time.Duration
}

func parseLoginFlags(args []string) (loginOptions, error) {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts loginOptions
	fs.StringVar(&opts.Email, "email", "", "Administrator email address (required)")
	fs.StringVar(&opts.Password, "password", "", "Password (prompted on stdin when omitted)")
	fs.DurationVar(&opts.Wait, "wait", 2*time.Second, "How long to wait for the realtime link before exiting")
	fs.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "Timeout for the sign-in exchange")

	if err := fs.Parse(args); err != nil {
		return loginOptions{}, err
	}

	opts.Email = strings.TrimSpace(opts.Email)
	if opts.Timeout <= 0 {
		return loginOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags(args)
	if err != nil {
		return err
	}
	if opts.Password == "" {
		opts.Password, err = promptPassword()
		if err != nil {
			return err
		}
	}

	rt, err := bootstrap.NewRuntime(cmdCtx.Config, cmdCtx.Logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); cerr != nil {
			cmdCtx.Logger.Warn("runtime close failed", "error", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, opts.Timeout)
	defer cancel()

	creds := domainauth.Credentials{Identifier: opts.Email, Secret: opts.Password}
	submitErr := rt.Login.Submit(ctx, creds, func() {
		if err := writef(os.Stdout, "Signed in.\n"); err != nil {
			cmdCtx.Logger.Warn("print sign-in confirmation failed", "error", err)
		}
	})
	if submitErr != nil {
		if werr := writef(os.Stderr, "%s\n", apperrors.UserMessage(submitErr)); werr != nil {
			cmdCtx.Logger.Warn("print sign-in failure failed", "error", werr)
		}
		return submitErr
	}

	sess, err := rt.Login.Current(ctx)
	if err != nil {
		return fmt.Errorf("read established session: %w", err)
	}
	if err := writef(os.Stdout, "  %s <%s> (%s)\n",
		sess.Principal.DisplayName, sess.Principal.Email, sess.Principal.Role); err != nil {
		return fmt.Errorf("print session summary: %w", err)
	}

	// The realtime reconnect runs in the background; give it a moment so a
	// short-lived CLI process does not tear the dial down mid-handshake.
	if opts.Wait > 0 {
		waitForRealtime(cmdCtx.Ctx, rt, opts.Wait)
	}
	return nil
}

func waitForRealtime(ctx context.Context, rt *bootstrap.Runtime, wait time.Duration) {
	deadline := time.NewTimer(wait)
	defer deadline.Stop()
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			return
		case <-tick.C:
			if rt.Realtime.IsConnected() {
				return
			}
		}
	}
}

func promptPassword() (string, error) {
	if err := writef(os.Stderr, "Password: "); err != nil {
		return "", fmt.Errorf("print password prompt: %w", err)
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogout(cmdCtx *commandContext, _ []string) error {
	rt, err := bootstrap.NewRuntime(cmdCtx.Config, cmdCtx.Logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); cerr != nil {
			cmdCtx.Logger.Warn("runtime close failed", "error", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 30*time.Second)
	defer cancel()

	if err := rt.Login.Logout(ctx); err != nil {
		return err
	}
	return writeln(os.Stdout, "Signed out.")
}

func runWhoami(cmdCtx *commandContext, _ []string) error {
	rt, err := bootstrap.NewRuntime(cmdCtx.Config, cmdCtx.Logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); cerr != nil {
			cmdCtx.Logger.Warn("runtime close failed", "error", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 30*time.Second)
	defer cancel()

	sess, err := rt.Login.Current(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrNoSession) {
			return writeln(os.Stdout, "Not signed in.")
		}
		return err
	}

	if err := writef(os.Stdout, "%s <%s> (%s)\n",
		sess.Principal.DisplayName, sess.Principal.Email, sess.Principal.Role); err != nil {
		return fmt.Errorf("print session: %w", err)
	}
	return writef(os.Stdout, "Signed in since %s\n", sess.CreatedAt.Format(time.RFC3339))
}

func runWatch(cmdCtx *commandContext, _ []string) error {
	rt, err := bootstrap.NewRuntime(cmdCtx.Config, cmdCtx.Logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); cerr != nil {
			cmdCtx.Logger.Warn("runtime close failed", "error", cerr)
		}
	}()

	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	printEvent := func(channel string) ports.Listener {
		return func(evt domainauth.SessionEvent) {
			if werr := writef(os.Stdout, "%s %s principal=%d (%s)\n",
				evt.OccurredAt.Format(time.RFC3339), channel, evt.Principal.ID, evt.Principal.Email); werr != nil {
				cmdCtx.Logger.Warn("print session event failed", "error", werr)
			}
		}
	}

	unsubLogin := rt.Bus.Subscribe(domainauth.ChannelAdminLoginSuccess, printEvent(domainauth.ChannelAdminLoginSuccess))
	defer unsubLogin()
	unsubLogout := rt.Bus.Subscribe(domainauth.ChannelAdminLogout, printEvent(domainauth.ChannelAdminLogout))
	defer unsubLogout()

	if err := writeln(os.Stdout, "Watching session events. Press Ctrl+C to stop."); err != nil {
		return fmt.Errorf("print watch banner: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return nil
	})
	return g.Wait()
}
