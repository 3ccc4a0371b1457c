// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

/*
Package console wires the controllers into an interactive shell.

Architecture:

  - This package is the topmost presentation boundary: a line-oriented
    read–eval loop, which is the console's single cooperative scheduler.
    Every remote call suspends the loop until it resolves, so a control can
    never be triggered twice while its round-trip is pending.
  - Rendering strictly follows [viewgate]: the unauthenticated flows, the
    loading state, and the per-role feedback surface are decisions made
    there, never here.
  - Privileged commands are only offered inside the authenticated shell,
    which guarantees the credential is attached before any privileged call
    becomes reachable.
*/
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rahulrai19/smart-energy/internal/auth"
	"github.com/rahulrai19/smart-energy/internal/feedback"
	"github.com/rahulrai19/smart-energy/internal/nav"
	"github.com/rahulrai19/smart-energy/internal/viewgate"
)

// # Console Definition

// Console drives the core controllers from a single input loop.
type Console struct {
	auth     *auth.Controller
	nav      *nav.Controller
	feedback *feedback.Service
	log      *slog.Logger

	in  io.Reader
	out io.Writer

	// wantSignup is the "user explicitly requested the signup flow" bit
	// consumed by the view gate while unauthenticated.
	wantSignup bool
}

// New constructs a [Console] over the given controllers and streams.
func New(
	authController *auth.Controller,
	navController *nav.Controller,
	feedbackService *feedback.Service,
	logger *slog.Logger,
	in io.Reader,
	out io.Writer,
) *Console {
	return &Console{
		auth:     authController,
		nav:      navController,
		feedback: feedbackService,
		log:      logger,
		in:       in,
		out:      out,
	}
}

// # Event Loop

/*
Run executes the read–eval loop until the input ends, the operator quits,
or ctx is cancelled.

Parameters:
  - ctx: context.Context

Returns:
  - error: Input stream failures
*/
func (console *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	// The reader goroutine only feeds lines; all state changes happen on
	// this loop.
	go func() {
		scanner := bufio.NewScanner(console.in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	console.render()
	console.prompt()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(console.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			if quit := console.dispatch(ctx, strings.Fields(line)); quit {
				return nil
			}
			console.prompt()
		}
	}
}

// dispatch runs one command. It returns true when the operator quits.
func (console *Console) dispatch(ctx context.Context, args []string) bool {
	if len(args) == 0 {
		console.render()
		return false
	}

	command := args[0]
	if command == "quit" || command == "exit" {
		return true
	}

	route := viewgate.Decide(console.auth.Current(), console.auth.Loading(), console.wantSignup)
	switch route {
	case viewgate.RouteLoading:
		fmt.Fprintln(console.out, "Still loading, one moment...")
	case viewgate.RouteLogin, viewgate.RouteSignup:
		console.dispatchUnauthenticated(ctx, command, args[1:])
	case viewgate.RouteShell:
		console.dispatchShell(ctx, command, args[1:])
	}

	console.render()
	return false
}

// # Unauthenticated Flow

func (console *Console) dispatchUnauthenticated(ctx context.Context, command string, args []string) {
	switch command {
	case "login":
		if len(args) != 2 {
			fmt.Fprintln(console.out, "usage: login <email> <password>")
			return
		}
		if err := console.auth.Login(ctx, args[0], args[1]); err != nil {
			fmt.Fprintf(console.out, "✗ %s\n", err.Error())
			return
		}
		// A fresh authenticated session starts over at the dashboard.
		console.nav.Reset()
		console.wantSignup = false

	case "signup":
		if len(args) != 3 {
			fmt.Fprintln(console.out, "usage: signup <name> <email> <password>")
			return
		}
		if err := console.auth.Signup(ctx, args[0], args[1], args[2]); err != nil {
			fmt.Fprintf(console.out, "✗ %s\n", err.Error())
			return
		}
		fmt.Fprintln(console.out, "Account created. You can sign in now.")
		console.wantSignup = false

	case "signup-form":
		console.wantSignup = true

	case "back":
		console.wantSignup = false

	default:
		fmt.Fprintln(console.out, "commands: login, signup-form, signup, back, quit")
	}
}

// # Authenticated Shell

func (console *Console) dispatchShell(ctx context.Context, command string, args []string) {
	switch command {
	case "go":
		if len(args) != 1 {
			fmt.Fprintf(console.out, "usage: go <%s>\n", viewList())
			return
		}
		if err := console.nav.Navigate(nav.View(args[0])); err != nil {
			fmt.Fprintf(console.out, "✗ %s (%s)\n", err.Error(), viewList())
			return
		}
		// Mounting the moderation table fetches the current record set.
		if console.nav.State().Active == nav.ViewFeedback &&
			viewgate.FeedbackPane(console.auth.Current()) == viewgate.PaneModeration {
			console.feedback.Refresh(ctx)
		}

	case "overlay":
		// The toggle control is not offered on the assistant view.
		if console.nav.State().Active == nav.ViewAssistant {
			fmt.Fprintln(console.out, "The assistant is already on screen.")
			return
		}
		if console.nav.ToggleOverlay() {
			fmt.Fprintln(console.out, "Assistant overlay opened.")
		} else {
			fmt.Fprintln(console.out, "Assistant overlay closed.")
		}

	case "whoami":
		identity := console.auth.Current().Identity
		fmt.Fprintf(console.out, "%s <%s> (%s)\n", identity.Name, identity.Email, identity.Role)

	case "feedback":
		console.dispatchFeedback(ctx, args)

	case "logout":
		console.auth.Logout(ctx)
		console.nav.Reset()
		fmt.Fprintln(console.out, "Signed out.")

	default:
		fmt.Fprintln(console.out, "commands: go, overlay, whoami, feedback, logout, quit")
	}
}

// dispatchFeedback routes the feedback subcommands according to the pane the
// view gate grants the current identity.
func (console *Console) dispatchFeedback(ctx context.Context, args []string) {
	if console.nav.State().Active != nav.ViewFeedback {
		fmt.Fprintln(console.out, "Switch to the feedback view first: go feedback")
		return
	}

	pane := viewgate.FeedbackPane(console.auth.Current())
	if len(args) == 0 {
		if pane == viewgate.PaneModeration {
			fmt.Fprintln(console.out, "usage: feedback list | feedback toggle <id>")
		} else {
			fmt.Fprintln(console.out, "usage: feedback submit <query|bug|feature> <message>")
		}
		return
	}

	switch {
	case args[0] == "submit" && pane == viewgate.PaneForm:
		if len(args) < 3 {
			fmt.Fprintln(console.out, "usage: feedback submit <query|bug|feature> <message>")
			return
		}
		category := feedback.Category(args[1])
		message := strings.Join(args[2:], " ")
		if err := console.feedback.Submit(ctx, category, message); err != nil {
			fmt.Fprintln(console.out, "✗ Failed to submit feedback. Please try again.")
			return
		}
		fmt.Fprintln(console.out, "✓ Thank you! Your feedback has been submitted successfully.")

	case args[0] == "list" && pane == viewgate.PaneModeration:
		console.feedback.Refresh(ctx)
		console.renderRecords()

	case args[0] == "toggle" && pane == viewgate.PaneModeration:
		if len(args) != 2 {
			fmt.Fprintln(console.out, "usage: feedback toggle <id>")
			return
		}
		if err := console.feedback.ToggleStatus(ctx, args[1]); err != nil {
			// The blocking alert of the moderation surface.
			fmt.Fprintln(console.out, "ALERT: Failed to update status")
			return
		}
		console.renderRecords()

	default:
		fmt.Fprintln(console.out, "That action is not available here.")
	}
}

// # Rendering

// render prints the current routing decision and shell state.
func (console *Console) render() {
	route := viewgate.Decide(console.auth.Current(), console.auth.Loading(), console.wantSignup)

	switch route {
	case viewgate.RouteLoading:
		fmt.Fprintln(console.out, "[ loading... ]")

	case viewgate.RouteLogin:
		fmt.Fprintln(console.out, "[ sign in ] login <email> <password> — or signup-form")

	case viewgate.RouteSignup:
		fmt.Fprintln(console.out, "[ create account ] signup <name> <email> <password> — or back")

	case viewgate.RouteShell:
		state := console.nav.State()
		overlay := ""
		if state.OverlayOpen {
			overlay = " +overlay"
		}
		fmt.Fprintf(console.out, "[ %s%s ]\n", state.Active, overlay)

		if state.Active == nav.ViewFeedback {
			if viewgate.FeedbackPane(console.auth.Current()) == viewgate.PaneModeration {
				console.renderRecords()
			} else {
				fmt.Fprintln(console.out, "Have a question or found a bug? feedback submit <query|bug|feature> <message>")
			}
		}
	}
}

// renderRecords prints the cached moderation table in remote order.
func (console *Console) renderRecords() {
	records := console.feedback.Records()
	if len(records) == 0 {
		fmt.Fprintln(console.out, "No feedback found.")
		return
	}
	for _, record := range records {
		fmt.Fprintf(console.out, "%-14s %-8s %-7s %-24s %s\n",
			record.ID, record.Category, record.Status, record.SubmitterEmail, record.Message)
	}
}

func (console *Console) prompt() {
	fmt.Fprint(console.out, "> ")
}

// viewList renders the navigable view names for usage messages.
func viewList() string {
	names := make([]string, len(nav.Views))
	for i, view := range nav.Views {
		names[i] = string(view)
	}
	return strings.Join(names, "|")
}
