// Command adduser creates a ledger user directly against the database. With
// -deactivate, -activate or -status it manages an existing user instead.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/service"
	"github.com/aussiebroadwan/ledger/internal/ledger/store/drivers/sqlite"
	"github.com/aussiebroadwan/ledger/pkg/cryptox"
	"github.com/aussiebroadwan/ledger/pkg/ledgersdk"
	"github.com/joho/godotenv"
	"golang.org/x/term"
)

const defaultDBPath = "ledger.db"

func main() {
	_ = godotenv.Load()

	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Email address of the user")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	dbPath := fs.String("db", defaultDBPath, "Path to database file")
	deactivate := fs.Bool("deactivate", false, "Deactivate the user and revoke their sessions")
	activate := fs.Bool("activate", false, "Reactivate a deactivated user")
	status := fs.Bool("status", false, "Print the user's status")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		fmt.Fprintln(stdout, "Usage: adduser -email <email> [-password <password>] [-db <db_path>] [-deactivate|-activate|-status]")
		fs.PrintDefaults()
		return errors.New("missing required flags: email")
	}

	modes := 0
	for _, set := range []bool{*deactivate, *activate, *status} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return errors.New("-deactivate, -activate and -status are mutually exclusive")
	}

	// LEDGER_DATABASE_FILE applies unless -db was given explicitly
	if path := os.Getenv("LEDGER_DATABASE_FILE"); path != "" && *dbPath == defaultDBPath {
		*dbPath = path
	}
	addr := strings.TrimSpace(*email)

	switch {
	case *deactivate, *activate:
		return withAuth(*dbPath, func(auth *service.AuthService) error {
			revoked, err := auth.SetActive(ctx, addr, *activate)
			if err != nil {
				return describe(addr, err)
			}
			if *activate {
				fmt.Fprintf(stdout, "User %s activated\n", addr)
			} else {
				fmt.Fprintf(stdout, "User %s deactivated, %d session(s) revoked\n", addr, revoked)
			}
			return nil
		})
	case *status:
		return withAuth(*dbPath, func(auth *service.AuthService) error {
			st, err := auth.Status(ctx, addr)
			if err != nil {
				return describe(addr, err)
			}
			fmt.Fprintf(stdout, "id: %s\nactive: %t\nsessions: %d\ncreated: %s\n",
				st.User.ID, st.User.IsActive, st.ActiveSessions, st.User.CreatedAt.Format(time.RFC3339))
			return nil
		})
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	req := ledgersdk.SignupRequest{Email: addr, Password: password}
	if details := req.Validate(); len(details) > 0 {
		for field, msg := range details {
			fmt.Fprintf(stderr, "  %s: %s\n", field, msg)
		}
		return errors.New("invalid user details")
	}

	return withAuth(*dbPath, func(auth *service.AuthService) error {
		user, err := auth.Signup(ctx, req.Email, req.Password)
		if err != nil {
			return describe(req.Email, err)
		}
		fmt.Fprintf(stdout, "User %s created successfully with ID %s\n", user.Email, user.ID)
		return nil
	})
}

// withAuth opens and migrates the database and runs fn against an auth
// service that needs no token issuer.
func withAuth(dbPath string, fn func(*service.AuthService) error) error {
	st, err := sqlite.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	if err := st.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return fn(&service.AuthService{
		Store:  st,
		Users:  &service.UserDirectory{Store: st},
		Tokens: &service.TokenStore{},
		Hasher: cryptox.BcryptHasher{},
	})
}

func describe(email string, err error) error {
	switch {
	case errors.Is(err, service.ErrUserAlreadyExists):
		return fmt.Errorf("user %s already exists", email)
	case errors.Is(err, service.ErrUserDoesntExist):
		return fmt.Errorf("user %s does not exist", email)
	}
	return err
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
