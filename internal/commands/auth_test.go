package commands_test

import (
	"errors"
	"strings"
	"testing"

	"organizo/internal/commands"
	"organizo/internal/exitcode"
	"organizo/internal/service"
	"organizo/internal/session"
)

// Tests for login command
func TestLoginCommand_Success(t *testing.T) {
	svc := seeded()
	svc.SeedAccount("maria", "secret", service.Credentials{
		Token: "tok-123", UserID: "u1", Role: service.RoleAdmin,
	})
	deps, _ := newDeps(t, svc, session.Session{})

	cmd := &commands.LoginCmd{}
	newFlagSet(t, cmd, "-username", "maria", "-password", "secret")
	stdout, stderr, code := runCommand(t, cmd, deps, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}
	if !strings.Contains(stdout, "logged in as maria (Admin)") {
		t.Errorf("unexpected stdout %q", stdout)
	}

	sess, err := deps.Sessions.Load()
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if sess.Token != "tok-123" || sess.UserID != "u1" || sess.Role != service.RoleAdmin {
		t.Errorf("session not persisted correctly: %+v", sess)
	}
}

func TestLoginCommand_InvalidCredentials(t *testing.T) {
	svc := seeded()
	svc.SeedAccount("maria", "secret", service.Credentials{Token: "tok", UserID: "u1", Role: service.RoleAdmin})
	deps, _ := newDeps(t, svc, session.Session{})

	cmd := &commands.LoginCmd{}
	newFlagSet(t, cmd, "-username", "maria", "-password", "wrong")
	stdout, stderr, code := runCommand(t, cmd, deps, nil, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "Invalid credentials") {
		t.Errorf("expected credentials error, got %q", stderr)
	}
	if deps.Sessions.Exists() {
		t.Error("no session should be written on failed login")
	}
}

// Tests for logout command
func TestLogoutCommand(t *testing.T) {
	deps, _ := newDeps(t, seeded(), session.Session{})
	if err := deps.Sessions.Save(session.Session{Token: "tok", UserID: "u1", Role: service.RoleUser}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	stdout, _, code := runCommand(t, &commands.LogoutCmd{}, deps, nil, false)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if deps.Sessions.Exists() {
		t.Error("session file should be gone")
	}

	// Logging out twice is not an error.
	stdout, _, code = runCommand(t, &commands.LogoutCmd{}, deps, nil, false)
	if code != exitcode.Success {
		t.Errorf("expected success on repeat logout, got %d", code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

// Tests for signup command
func TestSignupCommand_Success(t *testing.T) {
	svc := seeded()
	deps, _ := newDeps(t, svc, session.Session{})

	cmd := &commands.SignupCmd{}
	newFlagSet(t, cmd,
		"-name", "New Person",
		"-username", "newbie",
		"-email", "new@example.com",
		"-password", "pw12345",
		"-confirm", "pw12345",
	)
	stdout, stderr, code := runCommand(t, cmd, deps, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}
	if !strings.Contains(stdout, "logged in as newbie (User)") {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if !deps.Sessions.Exists() {
		t.Error("signup should persist a session")
	}
}

func TestSignupCommand_PasswordMismatchBlocksNetworkCall(t *testing.T) {
	svc := seeded()
	// If the command reached the backend the sentinel would surface in
	// stderr and flip the exit code.
	svc.RegisterErr = errors.New("network call happened")
	deps, _ := newDeps(t, svc, session.Session{})

	cmd := &commands.SignupCmd{}
	newFlagSet(t, cmd,
		"-name", "New Person",
		"-username", "newbie",
		"-email", "new@example.com",
		"-password", "pw12345",
		"-confirm", "different",
	)
	stdout, stderr, code := runCommand(t, cmd, deps, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: Passwords do not match.\n" {
		t.Errorf("expected mismatch message, got %q", stderr)
	}
}

func TestSignupCommand_MissingFields(t *testing.T) {
	deps, _ := newDeps(t, seeded(), session.Session{})

	cmd := &commands.SignupCmd{}
	newFlagSet(t, cmd, "-name", "X", "-username", "x")
	_, stderr, code := runCommand(t, cmd, deps, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: Please fill in all fields.\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestSignupCommand_InvalidEmail(t *testing.T) {
	deps, _ := newDeps(t, seeded(), session.Session{})

	cmd := &commands.SignupCmd{}
	newFlagSet(t, cmd,
		"-name", "X", "-username", "x",
		"-email", "not-an-email",
		"-password", "pw", "-confirm", "pw",
	)
	_, stderr, code := runCommand(t, cmd, deps, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: Invalid email format.\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestSignupCommand_RefusesAdminRole(t *testing.T) {
	deps, _ := newDeps(t, seeded(), session.Session{})

	cmd := &commands.SignupCmd{}
	newFlagSet(t, cmd,
		"-name", "X", "-username", "x",
		"-email", "x@example.com",
		"-password", "pw", "-confirm", "pw",
		"-role", "Admin",
	)
	_, stderr, code := runCommand(t, cmd, deps, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "Admin role cannot be self-assigned") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for whoami command
func TestWhoamiCommand(t *testing.T) {
	deps, _ := newDeps(t, seeded(), adminSess())

	stdout, _, code := runCommand(t, &commands.WhoamiCmd{}, deps, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if stdout != "Maria (Admin) id=u1\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

// Tests for the recovery flow
func TestForgotPasswordCommand_Email(t *testing.T) {
	deps, _ := newDeps(t, seeded(), session.Session{})

	cmd := &commands.ForgotPasswordCmd{}
	newFlagSet(t, cmd, "-email", "maria@example.com")
	stdout, stderr, code := runCommand(t, cmd, deps, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}
	if !strings.Contains(stdout, "one-time code sent") {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestForgotPasswordCommand_RequiresExactlyOneSelector(t *testing.T) {
	deps, _ := newDeps(t, seeded(), session.Session{})

	_, stderr, code := runCommand(t, &commands.ForgotPasswordCmd{}, deps, nil, false)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: --email or --username required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}

	cmd := &commands.ForgotPasswordCmd{}
	newFlagSet(t, cmd, "-email", "a@b.co", "-username", "a")
	_, stderr, code = runCommand(t, cmd, deps, nil, false)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "cannot use both") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestResetPasswordCommand(t *testing.T) {
	deps, _ := newDeps(t, seeded(), session.Session{})

	cmd := &commands.ResetPasswordCmd{}
	newFlagSet(t, cmd,
		"-email", "maria@example.com",
		"-otp", "123456",
		"-password", "newpw", "-confirm", "newpw",
	)
	stdout, stderr, code := runCommand(t, cmd, deps, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}
	if !strings.Contains(stdout, "password updated") {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestResetPasswordCommand_BadOTP(t *testing.T) {
	deps, _ := newDeps(t, seeded(), session.Session{})

	cmd := &commands.ResetPasswordCmd{}
	newFlagSet(t, cmd,
		"-email", "maria@example.com",
		"-otp", "000000",
		"-password", "newpw", "-confirm", "newpw",
	)
	_, stderr, code := runCommand(t, cmd, deps, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.Contains(stderr, "Invalid OTP") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestResetPasswordCommand_Mismatch(t *testing.T) {
	svc := seeded()
	svc.RecoveryErr = errors.New("network call happened")
	deps, _ := newDeps(t, svc, session.Session{})

	cmd := &commands.ResetPasswordCmd{}
	newFlagSet(t, cmd,
		"-email", "maria@example.com",
		"-otp", "123456",
		"-password", "newpw", "-confirm", "other",
	)
	_, stderr, code := runCommand(t, cmd, deps, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: Passwords do not match.\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
