package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/mercury/internal/api"
	"github.com/dmitrijs2005/mercury/internal/client/client"
	"github.com/dmitrijs2005/mercury/internal/common"
)

// getSimpleText, getPassword, getMultiline and readFile are swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	readFile      = os.ReadFile
)

var errNotLoggedIn = errors.New("please log in first")

func (a *App) text(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

// password reads a password and returns it as a string, wiping the buffer.
func (a *App) password(prompt string) (string, error) {
	pw, err := getPassword(prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// newPassword asks twice and fails when the entries differ.
func (a *App) newPassword() (string, error) {
	pw, err := a.password("New password")
	if err != nil {
		return "", err
	}
	again, err := a.password("Repeat new password")
	if err != nil {
		return "", err
	}
	if pw != again {
		return "", errors.New("passwords do not match")
	}
	return pw, nil
}

func (a *App) texts(prompts ...string) ([]string, error) {
	out := make([]string, 0, len(prompts))
	for _, p := range prompts {
		v, err := a.text(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Register creates an account. The server mails a verification link.
func (a *App) Register(ctx context.Context) error {
	in, err := a.texts("Enter username", "Enter email", "Enter full name")
	if err != nil {
		return err
	}
	pw, err := a.newPassword()
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	err = a.client.Register(ctx, &api.RegisterRequest{Username: in[0], Email: in[1], Name: in[2], Password: pw})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Registered. Check your email for the verification code, then run 'verify'.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, err := a.text("Enter username")
	if err != nil {
		return err
	}
	pw, err := a.password("Enter password")
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	if err := a.client.Login(ctx, userName, pw); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("wrong username or password")
		}
		return err
	}
	a.userName = userName
	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

func (a *App) Logout(context.Context) error {
	a.client.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Verify(ctx context.Context) error {
	in, err := a.texts("Enter username", "Enter verification code")
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	if err := a.client.Verify(ctx, in[0], in[1]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Email verified. You can log in now.")
	return nil
}

func (a *App) Resend(ctx context.Context) error {
	userName, err := a.text("Enter username")
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	if err := a.client.ResendVerification(ctx, userName); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "A new verification code has been sent.")
	return nil
}

func (a *App) ResetRequest(ctx context.Context) error {
	in, err := a.texts("Enter username", "Enter the email of the account")
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	if err := a.client.RequestPasswordReset(ctx, in[0], in[1]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "A reset code has been sent. Run 'reset' to choose a new password.")
	return nil
}

func (a *App) Reset(ctx context.Context) error {
	in, err := a.texts("Enter username", "Enter reset code")
	if err != nil {
		return err
	}
	pw, err := a.newPassword()
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	if err := a.client.ResetPassword(ctx, in[0], in[1], pw); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed. You can log in now.")
	return nil
}

func (a *App) Passwd(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	old, err := a.password("Current password")
	if err != nil {
		return err
	}
	pw, err := a.newPassword()
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	if err := a.client.UpdatePassword(ctx, old, pw); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password updated.")
	return nil
}

// Projects lists projects: "projects [all|active|hidden]" or
// "projects status|category <n>". The default is active.
func (a *App) Projects(ctx context.Context, args []string) error {
	listing, value := api.ListingActive, 0
	if len(args) > 0 {
		listing = args[0]
	}
	if listing == api.ListingStatus || listing == api.ListingCategory {
		if len(args) < 2 {
			return fmt.Errorf("usage: projects %s <number>", listing)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid %s %q", listing, args[1])
		}
		value = n
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	projects, err := a.client.ListProjects(ctx, listing, value)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Fprintln(a.out, "No projects.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tCATEGORY\tSUMMARY")
	for _, p := range projects {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", p.ID, p.Title, p.Status, p.Category, p.Summary)
	}
	return tw.Flush()
}

func (a *App) Notifications(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	list, err := a.client.Notifications(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No new notifications.")
		return nil
	}
	for _, n := range list {
		fmt.Fprintf(a.out, "[%d] %s (%s)\n    %s\n", n.ID, n.Title, n.CreatedAt.Format("2006-01-02"), n.Body)
	}
	return nil
}

func (a *App) Dismiss(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if len(args) != 1 {
		return errors.New("usage: dismiss <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	if err := a.client.DismissNotification(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Dismissed.")
	return nil
}

// UploadImage stores a project image: "upload-image <project-id> <file>".
// The server only hands out upload URLs to admins.
func (a *App) UploadImage(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if len(args) != 2 {
		return errors.New("usage: upload-image <project-id> <file>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid project id %q", args[0])
	}
	data, err := readFile(args[1])
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	key, err := a.client.UploadProjectImage(ctx, id, args[1], data)
	if errors.Is(err, client.ErrForbidden) {
		return errors.New("uploading images requires admin portal access")
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Uploaded as", key)
	return nil
}

// Image prints a temporary download link: "image <key>".
func (a *App) Image(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if len(args) != 1 {
		return errors.New("usage: image <key>")
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	url, err := a.client.ImageURL(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, url)
	return nil
}

func (a *App) Contact(ctx context.Context) error {
	in, err := a.texts("Your name", "Your email", "Subject")
	if err != nil {
		return err
	}
	body, err := getMultiline(a.reader, "Message", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	err = a.client.ContactUs(ctx, &api.ContactUsRequest{Name: in[0], Email: in[1], Subject: in[2], Body: body})
	if errors.Is(err, client.ErrMailQueued) {
		fmt.Fprintln(a.out, "Thanks! Email is temporarily offline; your message will be sent later.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Thanks! Your message has been sent.")
	return nil
}

// HealthCheck has the server post an email and database report to Slack.
func (a *App) HealthCheck(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	st, err := a.client.SendHealthCheck(ctx)
	if errors.Is(err, client.ErrForbidden) {
		return errors.New("health checks require admin portal access")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Health check sent to Slack. Email: %s, database: %s.\n", onOff(st.Email), onOff(st.Database))
	return nil
}

func onOff(up bool) string {
	if up {
		return "online"
	}
	return "offline"
}

func (a *App) EmailStatus(ctx context.Context) error {
	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	online, err := a.client.EmailOnline(ctx)
	if err != nil {
		return err
	}
	if online {
		fmt.Fprintln(a.out, "Email service is online.")
	} else {
		fmt.Fprintln(a.out, "Email service is offline; messages are queued.")
	}
	return nil
}
