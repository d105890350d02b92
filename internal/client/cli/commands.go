package cli

import (
	"context"

	"github.com/dmitrijs2005/fingergate/internal/client/models"
	"github.com/dmitrijs2005/fingergate/internal/common"
)

const previewRunes = 50

func (a *App) readCredentials(ctx context.Context) (string, []byte, error) {
	username, err := GetSimpleText(ctx, a.console, a.tr.T("prompt.username"), a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := GetPassword(ctx, a.console, a.tr.T("prompt.password"), a.out)
	if err != nil {
		return "", nil, err
	}
	return username, password, nil
}

// endSession revokes the current session, if any.
func (a *App) endSession() {
	if a.session != nil {
		a.auth.Logout(a.session)
		a.session = nil
	}
}

// enter makes sess the current session and shows the user's stored data.
func (a *App) enter(ctx context.Context, sess *models.Session) error {
	a.session = sess
	a.println(a.tr.Tf("data.welcome", map[string]any{"Username": sess.Username}))
	return a.Show(ctx)
}

func (a *App) Register(ctx context.Context) error {
	a.endSession()
	username, password, err := a.readCredentials(ctx)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.auth.Register(ctx, username, password)
	if err != nil {
		return a.fail(ctx, "register", err)
	}
	a.println(a.tr.T("ok.registered"))
	return a.enter(ctx, sess)
}

// Enroll runs the fingerprint enrollment step of the registration form.
func (a *App) Enroll(ctx context.Context) error {
	if err := a.auth.ConfirmBiometricEnrollment(ctx); err != nil {
		return a.fail(ctx, "enroll", err)
	}
	a.println(a.tr.T("ok.enrolled"))
	return nil
}

// Back abandons the registration form.
func (a *App) Back(ctx context.Context) error {
	a.auth.ResetRegistration()
	a.println(a.tr.T("repl.registration_reset"))
	return nil
}

func (a *App) Login(ctx context.Context) error {
	a.endSession()
	username, password, err := a.readCredentials(ctx)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.auth.Login(ctx, username, password)
	if err != nil {
		return a.fail(ctx, "login", err)
	}
	a.println(a.tr.T("ok.login"))
	return a.enter(ctx, sess)
}

func (a *App) FingerprintLogin(ctx context.Context) error {
	a.endSession()
	username, err := GetSimpleText(ctx, a.console, a.tr.T("prompt.username"), a.out)
	if err != nil {
		return err
	}

	sess, err := a.auth.LoginWithBiometric(ctx, username)
	if err != nil {
		return a.fail(ctx, "fplogin", err)
	}
	a.println(a.tr.T("ok.login_biometric"))
	return a.enter(ctx, sess)
}

func (a *App) Show(ctx context.Context) error {
	content, err := a.data.Load(ctx, a.session)
	if err != nil {
		return a.fail(ctx, "show", err)
	}
	if content == models.NoData {
		a.println(a.tr.T("data.none"))
		return nil
	}
	a.println(a.tr.T("data.stored"))
	a.println(content)
	return nil
}

func (a *App) Save(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.fail(ctx, "save", common.ErrNoSession)
	}
	content, err := GetMultiline(ctx, a.console, a.tr.T("prompt.content"), a.tr.T("repl.finish_hint"), a.out)
	if err != nil {
		return err
	}

	if err := a.data.Save(ctx, a.session, content); err != nil {
		return a.fail(ctx, "save", err)
	}
	a.println(a.tr.Tf("ok.saved", map[string]any{"Preview": preview(content)}))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if a.session == nil {
		return a.fail(ctx, "logout", common.ErrNoSession)
	}
	a.endSession()
	a.println(a.tr.T("ok.logout"))
	return nil
}

func (a *App) Status(ctx context.Context) error {
	if a.isLoggedIn() {
		a.println(a.tr.Tf("status.logged_in", map[string]any{"Username": a.session.Username}))
	} else {
		a.println(a.tr.T("status.logged_out"))
	}
	if a.auth.EnrollmentConfirmed() {
		a.println(a.tr.T("status.enrollment_confirmed"))
	} else {
		a.println(a.tr.T("status.enrollment_pending"))
	}

	n, err := a.auth.AccountCount(ctx)
	if err != nil {
		return a.fail(ctx, "status", err)
	}
	a.println(a.tr.Tf("status.accounts", map[string]any{"Count": n}))
	return nil
}

// preview shortens content for the save confirmation.
func preview(content string) string {
	r := []rune(content)
	if len(r) <= previewRunes {
		return content
	}
	return string(r[:previewRunes]) + "..."
}
