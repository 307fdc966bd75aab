package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/templui/rincon/internal/config"
	"github.com/templui/rincon/internal/db"
	"github.com/templui/rincon/internal/repository"
	"github.com/templui/rincon/internal/service"
)

var errPasswordMismatch = errors.New("passwords do not match")

// passwordReader prompts for a secret and returns it without the newline.
type passwordReader func(prompt string) (string, error)

func CreateUserCmd() *cobra.Command {
	var username, email string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a store administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadEnv()

			conn, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close(conn)

			err = db.RunMigrations(conn.DB, cfg.DBDriver)
			if err != nil {
				return err
			}

			auth, err := newAuthService(cfg, repository.NewUserRepository(conn))
			if err != nil {
				return err
			}

			return createUser(cmd.Context(), auth, cmd.OutOrStdout(), username, email, promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr()))
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username (required)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newAuthService(cfg *config.Config, users repository.UserRepository) (*service.AuthService, error) {
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewTokenService(users, hasher, service.TokenConfig{
		Secret:   cfg.JWTSecret,
		ResetTTL: cfg.TokenPasswordResetExpiry,
		Issuer:   cfg.AppName,
	})
	mailer := service.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom, cfg.IsDevelopment())
	return service.NewAuthService(users, hasher, tokens, mailer, service.AuthConfig{
		SessionTTL: cfg.JWTExpiry,
		AppURL:     cfg.AppURL,
		AppName:    cfg.AppName,
	})
}

// createUser asks for the password twice and registers the user with the
// same validation as the public signup.
func createUser(ctx context.Context, auth *service.AuthService, out io.Writer, username, email string, readPassword passwordReader) error {
	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errPasswordMismatch
	}

	_, err = auth.Register(ctx, username, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "created user %s <%s>\n", strings.TrimSpace(username), strings.ToLower(strings.TrimSpace(email)))
	return nil
}

// promptPassword hides input on a terminal and reads plain lines otherwise.
func promptPassword(in io.Reader, prompt io.Writer) passwordReader {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return func(label string) (string, error) {
			fmt.Fprint(prompt, label)
			secret, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(prompt)
			if err != nil {
				return "", fmt.Errorf("failed to read password: %w", err)
			}
			return string(secret), nil
		}
	}

	scanner := bufio.NewScanner(in)
	return func(label string) (string, error) {
		fmt.Fprint(prompt, label)
		if !scanner.Scan() {
			err := scanner.Err()
			if err == nil {
				err = io.ErrUnexpectedEOF
			}
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return strings.TrimRight(scanner.Text(), "\r"), nil
	}
}
