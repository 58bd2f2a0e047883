package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophsocial/internal/cryptox"
	"github.com/dmitrijs2005/gophsocial/internal/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account fields and creates the account. It does
// not sign in.
func (a *App) Register(ctx context.Context) error {
	req := services.RegisterRequest{}
	var err error

	if req.Name, err = getSimpleText(a.reader, "Enter your name", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if req.Handle, err = getSimpleText(a.reader, "Choose a username", a.out); err != nil {
		return err
	}
	if req.Password, err = getPassword(a.out); err != nil {
		return err
	}
	defer cryptox.Wipe(req.Password)

	p, err := a.accounts.Register(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, okStyle.Render(fmt.Sprintf("Registered @%s. You can login now.", p.Handle)))
	return nil
}

// Login prompts for credentials and installs the user into the session.
func (a *App) Login(ctx context.Context) error {
	handle, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(password)

	p, err := a.accounts.Login(ctx, a.session, handle, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, okStyle.Render(fmt.Sprintf("Welcome, %s!", p.Name)))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.accounts.Logout(ctx, a.session); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
