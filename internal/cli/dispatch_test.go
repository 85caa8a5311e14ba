package cli_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"organizo/internal/cli"
	"organizo/internal/commands"
	"organizo/internal/config"
	"organizo/internal/exitcode"
	"organizo/internal/push"
	"organizo/internal/service"
	"organizo/internal/session"
	"organizo/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config, sess session.Session) (service.Service, error) {
		return svc, nil
	}
}

func testChannels(ch *testutil.FakeChannel) cli.ChannelFactory {
	return func(cfg *config.Config, sess session.Session) push.Broadcaster {
		return ch
	}
}

func newDispatcher(svc *testutil.FakeService) *cli.Dispatcher {
	return cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc), testChannels(testutil.NewFakeChannel()))
}

// seedSession writes a logged-in session into the config dir.
func seedSession(t *testing.T, dir string, role service.Role) {
	t.Helper()
	store := session.NewStore(filepath.Join(dir, "session.json"))
	err := store.Save(session.Session{Token: "tok", UserID: "u1", Role: role})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := newDispatcher(testutil.NewFakeService())

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := newDispatcher(testutil.NewFakeService())

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := newDispatcher(testutil.NewFakeService())

	var stdout, stderr bytes.Buffer
	args := []string{"version", "--config", t.TempDir()}
	code := dispatcher.Run(context.Background(), args, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if stdout.String() != "organizo 0.1.0\n" {
		t.Errorf("expected 'organizo 0.1.0\\n', got %q", stdout.String())
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher := newDispatcher(testutil.NewFakeService())

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help", "--unknown"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_AuthPreflight(t *testing.T) {
	dispatcher := newDispatcher(testutil.NewFakeService())

	var stdout, stderr bytes.Buffer
	args := []string{"notifications", "--config", t.TempDir()}
	code := dispatcher.Run(context.Background(), args, &stdout, &stderr)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	expected := "error: not logged in (run: organizo login)\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_SessionReachesCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser("u1", "Maria", "maria", service.RoleAdmin)
	dispatcher := newDispatcher(svc)

	dir := t.TempDir()
	seedSession(t, dir, service.RoleAdmin)

	var stdout, stderr bytes.Buffer
	args := []string{"whoami", "--config", dir}
	code := dispatcher.Run(context.Background(), args, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr.String())
	}
	if stdout.String() != "Maria (Admin) id=u1\n" {
		t.Errorf("unexpected stdout %q", stdout.String())
	}
}

func TestDispatcher_NoArgsLandsOnDashboard(t *testing.T) {
	dispatcher := newDispatcher(testutil.NewFakeService())

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	// With no stored session the landing view demands login, the CLI
	// equivalent of the redirect.
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr.String(), "not logged in") {
		t.Errorf("expected login hint, got %q", stderr.String())
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	dispatcher := newDispatcher(testutil.NewFakeService())

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help", "--config"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr.String(), "flag needs an argument") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}
