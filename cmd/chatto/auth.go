package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chattolabs/chatto/internal/api"
)

var (
	signupEmail    string
	signupPhone    string
	signupPassword string
	loginPassword  string
)

func init() {
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Account password (required)")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Contact email")
	signupCmd.Flags().StringVar(&signupPhone, "phone", "", "Contact phone number")
	_ = signupCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (required)")
	_ = loginCmd.MarkFlagRequired("password")
}

var signupCmd = &cobra.Command{
	Use:   "signup <username>",
	Short: "Create a Chatto account",
	Long: `Create a Chatto account.

Examples:
  chatto signup alice --password s3cret --email alice@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runSignup,
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and store the session token",
	Long: `Log in and store the session token under the config directory.

Examples:
  chatto login alice --password s3cret`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and drop the stored token",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE:  runWhoami,
}

func runSignup(cmd *cobra.Command, args []string) error {
	state, err := newAppState()
	if err != nil {
		return err
	}
	defer state.close()
	ctx, cancel := state.ctx()
	defer cancel()

	err = state.mgr.Public().Signup(ctx, api.SignupRequest{
		Username: args[0],
		Password: signupPassword,
		Email:    signupEmail,
		Phone:    signupPhone,
	})
	if err != nil {
		return err
	}
	fmt.Printf("account %s created, log in with: chatto login %s\n", args[0], args[0])
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	state, err := newAppState()
	if err != nil {
		return err
	}
	defer state.close()
	ctx, cancel := state.ctx()
	defer cancel()

	if err := state.mgr.Login(ctx, args[0], loginPassword); err != nil {
		return err
	}
	profile := state.mgr.Profile()
	fmt.Printf("logged in as %s (credit %d)\n", profile.Username, profile.Credit)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	state, err := newAppState()
	if err != nil {
		return err
	}
	defer state.close()
	ctx, cancel := state.ctx()
	defer cancel()

	if _, err := state.requireAuth(ctx); err != nil {
		return err
	}
	if err := state.mgr.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	state, err := newAppState()
	if err != nil {
		return err
	}
	defer state.close()
	ctx, cancel := state.ctx()
	defer cancel()

	if _, err := state.requireAuth(ctx); err != nil {
		return err
	}
	profile := state.mgr.Profile()
	if outputJSON {
		return printJSON(profile)
	}
	fmt.Printf("%s <%s> credit=%d point=%d\n", profile.Username, profile.Email, profile.Credit, profile.Point)
	return nil
}
