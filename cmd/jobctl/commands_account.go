package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/auth"
)

func init() {
	register("login", "sign in and keep the session", runLogin)
	register("register", "create an account", runRegister)
	register("logout", "end the session", runLogout)
	register("whoami", "show the signed-in user", runWhoami)
	register("refresh-token", "exchange the token for a fresh one", runRefreshToken)
	register("forgot-password", "request a password reset email", runForgotPassword)
	register("reset-password", "set a new password with a reset token", runResetPassword)
}

// ask reads one line from stdin when value is empty
func ask(value *string, prompt string) {
	if *value != "" {
		return
	}
	fmt.Fprint(os.Stderr, prompt+": ")
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	*value = strings.TrimSpace(line)
}

func runLogin(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("login")
	email := fs.StringP("email", "e", "", "account email")
	password := fs.StringP("password", "p", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ask(email, "Email")
	ask(password, "Password")

	user, err := app.Auth.Login(ctx, auth.LoginRequest{Email: kernel.Email(*email), Password: *password})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Welcome back, %s.\n", user.FullName())
	return nil
}

func runRegister(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("register")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password, at least 8 characters")
	first := fs.String("first-name", "", "first name")
	last := fs.String("last-name", "", "last name")
	role := fs.String("role", "seeker", "seeker or employer")
	company := fs.String("company", "", "company name, employers only")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := auth.RegisterRequest{
		Email:       kernel.Email(*email),
		Password:    *password,
		FirstName:   kernel.FirstName(*first),
		LastName:    kernel.LastName(*last),
		Role:        kernel.RoleJobSeeker,
		CompanyName: kernel.CompanyName(*company),
	}
	if strings.EqualFold(*role, "employer") {
		req.Role = kernel.RoleEmployer
	}

	user, err := app.Auth.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Account created for %s (%s).\n", user.Email, user.Role.GetDisplayName())
	return nil
}

func runLogout(ctx context.Context, app *Container, _ []string) error {
	if err := app.Auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "Signed out.")
	return nil
}

func runWhoami(ctx context.Context, app *Container, _ []string) error {
	if app.Session.Token() == "" {
		fmt.Fprintln(out, "Not signed in.")
		return nil
	}
	user, err := app.Auth.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s <%s>\nRole: %s\n", user.FullName(), user.Email, user.Role.GetDisplayName())
	if user.CompanyName != "" {
		fmt.Fprintf(out, "Company: %s\n", user.CompanyName)
	}
	return nil
}

func runRefreshToken(ctx context.Context, app *Container, _ []string) error {
	if err := app.Auth.RefreshToken(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "Session extended.")
	return nil
}

func runForgotPassword(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("forgot-password")
	email := fs.StringP("email", "e", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ask(email, "Email")
	if err := app.Auth.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: kernel.Email(*email)}); err != nil {
		return err
	}
	fmt.Fprintln(out, "If the address is registered, a reset link is on its way.")
	return nil
}

func runResetPassword(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("reset-password")
	token := fs.String("token", "", "token from the reset email")
	password := fs.StringP("password", "p", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ask(password, "New password")
	if err := app.Auth.ResetPassword(ctx, auth.ResetPasswordRequest{Token: *token, Password: *password}); err != nil {
		return err
	}
	fmt.Fprintln(out, "Password updated. You can sign in now.")
	return nil
}
