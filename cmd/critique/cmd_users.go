package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/ports"
	"github.com/foodcritique/critique-web/internal/core/service"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts (admins)",
	Args:  cobra.NoArgs,
	RunE:  runUsers,
}

var userEditFlags struct {
	name string
	role string
}

var userEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a user's name or role",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserEdit,
}

var userDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Soft delete a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUserStatus(cmd, args[0], domain.StatusInactive)
	},
}

var userActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Restore a soft deleted user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUserStatus(cmd, args[0], domain.StatusActive)
	},
}

func init() {
	f := userEditCmd.Flags()
	f.StringVar(&userEditFlags.name, "name", "", "New display name")
	f.StringVar(&userEditFlags.role, "role", "", "New role: USER, OWNER or ADMIN")
	userEditCmd.MarkFlagsOneRequired("name", "role")
	usersCmd.AddCommand(userEditCmd, userDeactivateCmd, userActivateCmd)
}

func runUsers(cmd *cobra.Command, _ []string) error {
	s, err := requireLogin(cmd)
	if err != nil {
		return err
	}
	view, err := service.NewUserService(s).List(cmd.Context())
	if err != nil {
		return finish(cmd, s, err)
	}
	printUsers(cmd, view)
	return finish(cmd, s, nil)
}

func runUserEdit(cmd *cobra.Command, args []string) error {
	s, err := requireLogin(cmd)
	if err != nil {
		return err
	}
	view, err := service.NewUserService(s).Update(cmd.Context(), args[0], ports.UserEdit{
		Name: strings.TrimSpace(userEditFlags.name),
		Role: domain.Role(strings.ToUpper(userEditFlags.role)),
	})
	if err != nil {
		return finish(cmd, s, err)
	}
	printUsers(cmd, view)
	return finish(cmd, s, nil)
}

func runUserStatus(cmd *cobra.Command, id string, status domain.Status) error {
	s, err := requireLogin(cmd)
	if err != nil {
		return err
	}
	svc := service.NewUserService(s)
	var view service.UsersView
	if status == domain.StatusInactive {
		view, err = svc.Deactivate(cmd.Context(), id)
	} else {
		view, err = svc.Activate(cmd.Context(), id)
	}
	if err != nil {
		return finish(cmd, s, err)
	}
	printUsers(cmd, view)
	return finish(cmd, s, nil)
}

func printUsers(cmd *cobra.Command, view service.UsersView) {
	out := cmd.OutOrStdout()
	if view.EmptyMessage != "" {
		fmt.Fprintln(out, view.EmptyMessage)
		return
	}
	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "Name", "Email", "Role", "Status", "Actions"})
	for _, u := range view.Users {
		t.AppendRow(table.Row{u.ID, fmt.Sprintf("%s [%s]", u.Name, u.Initials), u.Email, u.Role, u.Status, actionList(u.Actions)})
	}
	t.Render()
}
