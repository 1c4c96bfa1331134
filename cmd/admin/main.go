// Package main provides the administration CLI.
//
// Usage:
//
//	yatube-admin [-db-driver postgres|sqlite] [-database-url DSN] <command>
//
// Commands:
//
//	groups sync -file groups.yaml   create or update groups from a YAML list
//	groups delete -slug SLUG        delete a group; its posts lose their group
//	groups list                     print all groups
//	users create -username NAME     create a user; the password is read from stdin
//	posts delete -id ID             delete a post and its comments
package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"

	"yatube/internal/infra/adapter/persistence"
	"yatube/internal/infra/db"
	"yatube/internal/observability/logging"
	authservice "yatube/internal/service/auth"
	"yatube/internal/usecase/group"
	postUC "yatube/internal/usecase/post"
	envconfig "yatube/pkg/config"
)

const usage = `usage: yatube-admin [-db-driver D] [-database-url DSN] <command>

commands:
  groups sync -file FILE
  groups delete -slug SLUG
  groups list
  users create -username NAME   (password on stdin)
  posts delete -id ID`

var errUsage = errors.New(usage)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// app bundles what the commands operate on.
type app struct {
	repos  *persistence.Repositories
	logger *slog.Logger
	stdin  io.Reader
	stdout io.Writer
}

// run parses the global flags, opens the database and dispatches the command.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("yatube-admin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	driver := fs.String("db-driver", envconfig.GetEnvString("DB_DRIVER", string(db.Postgres)), "database driver")
	dsn := fs.String("database-url", envconfig.GetEnvString("DATABASE_URL", ""), "database DSN")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w\n\n%v", err, errUsage)
	}
	rest := fs.Args()
	if len(rest) < 2 {
		return errUsage
	}

	dialect, err := db.ParseDialect(*driver)
	if err != nil {
		return err
	}
	database, err := db.Open(ctx, dialect, *dsn)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	if err := db.MigrateUp(ctx, database, dialect); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	a, err := newApp(dialect, database, stdin, stdout)
	if err != nil {
		return err
	}
	return a.dispatch(ctx, rest[0], rest[1], rest[2:])
}

func newApp(dialect db.Dialect, database *sql.DB, stdin io.Reader, stdout io.Writer) (*app, error) {
	repos, err := persistence.New(dialect, database)
	if err != nil {
		return nil, err
	}
	return &app{
		repos:  repos,
		logger: logging.NewTextLogger(),
		stdin:  stdin,
		stdout: stdout,
	}, nil
}

func (a *app) dispatch(ctx context.Context, noun, verb string, args []string) error {
	switch noun + " " + verb {
	case "groups sync":
		return a.groupsSync(ctx, args)
	case "groups delete":
		return a.groupsDelete(ctx, args)
	case "groups list":
		return a.groupsList(ctx)
	case "users create":
		return a.usersCreate(ctx, args)
	case "posts delete":
		return a.postsDelete(ctx, args)
	default:
		return fmt.Errorf("unknown command %q\n\n%w", noun+" "+verb, errUsage)
	}
}

func (a *app) groupsSync(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("groups sync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	file := fs.String("file", "", "YAML file with a list of groups")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("groups sync: -file is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("groups sync: %w", err)
	}
	defer func() { _ = f.Close() }()

	defs, err := loadDefinitions(f)
	if err != nil {
		return fmt.Errorf("groups sync: %s: %w", *file, err)
	}
	svc := &group.Service{Groups: a.repos.Groups}
	res, err := svc.Sync(ctx, defs)
	if err != nil {
		return fmt.Errorf("groups sync: %w", err)
	}
	a.logger.Info("groups synced", slog.String("file", *file), slog.Int("saved", res.Saved))
	_, err = fmt.Fprintf(a.stdout, "synced %d groups\n", res.Saved)
	return err
}

// loadDefinitions decodes a YAML sequence of groups. Unknown keys are rejected.
func loadDefinitions(r io.Reader) ([]group.Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var defs []group.Definition
	if err := dec.Decode(&defs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return defs, nil
}

func (a *app) groupsDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("groups delete", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	slug := fs.String("slug", "", "group slug")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *slug == "" {
		return errors.New("groups delete: -slug is required")
	}
	svc := &group.Service{Groups: a.repos.Groups}
	if err := svc.Delete(ctx, *slug); err != nil {
		return fmt.Errorf("groups delete %s: %w", *slug, err)
	}
	_, err := fmt.Fprintf(a.stdout, "deleted group %s\n", *slug)
	return err
}

func (a *app) groupsList(ctx context.Context) error {
	svc := &group.Service{Groups: a.repos.Groups}
	groups, err := svc.List(ctx)
	if err != nil {
		return err
	}
	for _, g := range groups {
		if _, err := fmt.Fprintf(a.stdout, "%s\t%s\n", g.Slug, g.Title); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) usersCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users create", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	username := fs.String("username", "", "username")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return errors.New("users create: -username is required")
	}

	password, err := readPassword(a.stdin)
	if err != nil {
		return fmt.Errorf("users create: %w", err)
	}
	user, err := authservice.NewService(a.repos.Users).Register(ctx, *username, password)
	if err != nil {
		return fmt.Errorf("users create: %w", err)
	}
	a.logger.Info("user created", slog.Int64("user_id", user.ID), slog.String("username", user.Username))
	_, err = fmt.Fprintf(a.stdout, "created user %s (id %d)\n", user.Username, user.ID)
	return err
}

// readPassword reads the first line of r.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password must be given on stdin")
	}
	return password, nil
}

func (a *app) postsDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("posts delete", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	id := fs.Int64("id", 0, "post id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	svc := &postUC.Service{Posts: a.repos.Posts, Logger: a.logger}
	view, err := svc.Get(ctx, *id)
	if err != nil {
		return fmt.Errorf("posts delete %d: %w", *id, err)
	}
	if err := svc.Remove(ctx, *id); err != nil {
		return fmt.Errorf("posts delete %d: %w", *id, err)
	}
	_, err = fmt.Fprintf(a.stdout, "deleted post %d %q\n", *id, view.Post.String())
	return err
}
