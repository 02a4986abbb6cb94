package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Verify(ctx context.Context) error
	Resend(ctx context.Context) error
	ResetRequest(ctx context.Context) error
	Reset(ctx context.Context) error
	Passwd(ctx context.Context) error
	Projects(ctx context.Context, args []string) error
	Notifications(ctx context.Context) error
	Dismiss(ctx context.Context, args []string) error
	UploadImage(ctx context.Context, args []string) error
	Image(ctx context.Context, args []string) error
	Contact(ctx context.Context) error
	EmailStatus(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}

const (
	helpGuest    = "Available commands: register, verify, resend, login, reset-request, reset, projects, contact, email-status, exit"
	helpLoggedIn = "Available commands: projects, notifications, dismiss <id>, image <key>, upload-image <project-id> <file>, passwd, contact, email-status, health-check, logout, exit"
)

// runREPL reads a command per line and dispatches it to a. Command errors
// are reported and the loop goes on. It returns on EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("mercury %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if line == "" && err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "verify":
			cmdErr = a.Verify(ctx)
		case "resend":
			cmdErr = a.Resend(ctx)
		case "reset-request":
			cmdErr = a.ResetRequest(ctx)
		case "reset":
			cmdErr = a.Reset(ctx)
		case "passwd":
			cmdErr = a.Passwd(ctx)
		case "p", "projects":
			cmdErr = a.Projects(ctx, args)
		case "n", "notifications":
			cmdErr = a.Notifications(ctx)
		case "dismiss":
			cmdErr = a.Dismiss(ctx, args)
		case "image":
			cmdErr = a.Image(ctx, args)
		case "upload-image":
			cmdErr = a.UploadImage(ctx, args)
		case "contact":
			cmdErr = a.Contact(ctx)
		case "email-status":
			cmdErr = a.EmailStatus(ctx)
		case "health-check":
			cmdErr = a.HealthCheck(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
