package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/foodcritique/critique-web/internal/api/handler"
	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/ports"
	"github.com/foodcritique/critique-web/internal/core/service"
)

var loginFlags struct {
	email    string
	password string
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and remember the credentials for this profile",
	RunE:  runLogin,
}

var signupFlags struct {
	name     string
	email    string
	password string
	role     string
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and log in with it",
	RunE:  runSignup,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the credentials of this profile",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runWhoami,
}

func init() {
	f := loginCmd.Flags()
	f.StringVar(&loginFlags.email, "email", "", "Account email (required)")
	f.StringVar(&loginFlags.password, "password", "", "Password; read from stdin when omitted")
	_ = loginCmd.MarkFlagRequired("email")

	f = signupCmd.Flags()
	f.StringVar(&signupFlags.name, "name", "", "Display name (required)")
	f.StringVar(&signupFlags.email, "email", "", "Account email (required)")
	f.StringVar(&signupFlags.password, "password", "", "Password; read from stdin when omitted")
	f.StringVar(&signupFlags.role, "role", string(domain.RoleUser), "Account type: USER or OWNER")
	_ = signupCmd.MarkFlagRequired("name")
	_ = signupCmd.MarkFlagRequired("email")
}

// signupForm mirrors the web sign-up form so both share one validator.
type signupForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,strongpassword"`
	Role     string `validate:"required,oneof=USER OWNER"`
}

func runLogin(cmd *cobra.Command, _ []string) error {
	s, err := localSession(cmd)
	if err != nil {
		return err
	}
	if s.State() == service.StateAuthenticated {
		u, _ := s.RequireUser()
		return finish(cmd, s, fmt.Errorf("already logged in as %s, run 'critique logout' first", u.Email))
	}
	password, err := readSecret(cmd, loginFlags.password, "Password: ")
	if err != nil {
		return err
	}
	if err := s.Login(cmd.Context(), strings.TrimSpace(loginFlags.email), password); err != nil {
		return finish(cmd, s, fmt.Errorf("login failed: %s", domain.Message(err)))
	}
	u, _ := s.RequireUser()
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", u.Name, u.Role)
	return finish(cmd, s, nil)
}

func runSignup(cmd *cobra.Command, _ []string) error {
	password, err := readSecret(cmd, signupFlags.password, "Password: ")
	if err != nil {
		return err
	}
	form := signupForm{
		Name:     strings.TrimSpace(signupFlags.name),
		Email:    strings.TrimSpace(signupFlags.email),
		Password: password,
		Role:     strings.ToUpper(signupFlags.role),
	}
	if err := handler.NewValidator().Validate(&form); err != nil {
		return err
	}

	s, err := localSession(cmd)
	if err != nil {
		return err
	}
	if s.State() == service.StateAuthenticated {
		return finish(cmd, s, fmt.Errorf("already logged in, run 'critique logout' first"))
	}
	err = s.SignUp(cmd.Context(), ports.SignUpInput{
		Email:    form.Email,
		Password: form.Password,
		Name:     form.Name,
		Role:     domain.Role(form.Role),
	})
	if err != nil {
		return finish(cmd, s, fmt.Errorf("sign up failed: %s", domain.Message(err)))
	}
	u, _ := s.RequireUser()
	fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s. Logged in as %s.\n", u.Name, u.Role)
	return finish(cmd, s, nil)
}

func runLogout(cmd *cobra.Command, _ []string) error {
	s, err := localSession(cmd)
	if err != nil {
		return err
	}
	s.Logout(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), "Logged out of profile %q\n", rootFlags.profile)
	return finish(cmd, s, nil)
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	s, err := requireLogin(cmd)
	if err != nil {
		return err
	}
	view := service.NewSessionView(s.Context())
	u := view.User
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Profile:  %s\n", rootFlags.profile)
	fmt.Fprintf(out, "User:     %s [%s]\n", u.Name, view.Initials)
	fmt.Fprintf(out, "Email:    %s\n", u.Email)
	fmt.Fprintf(out, "Role:     %s\n", u.Role)
	fmt.Fprintf(out, "Status:   %s\n", u.Status)
	if len(view.Tabs) > 0 {
		fmt.Fprintf(out, "Tabs:     %s\n", strings.Join(view.Tabs, ", "))
	}
	if exp, ok := service.TokenExpiry(s.Remote().Client.Token()); ok {
		fmt.Fprintf(out, "Expires:  %s (%s)\n", exp.Local().Format(time.RFC1123), time.Until(exp).Round(time.Minute))
	}
	return finish(cmd, s, nil)
}
