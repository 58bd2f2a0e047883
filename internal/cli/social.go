package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophsocial/internal/models"
)

// argOrPrompt returns the first argument, prompting for it when absent.
func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

// Profile shows the profile of args[0], or the caller's own.
func (a *App) Profile(ctx context.Context, args []string) error {
	handle := ""
	if len(args) > 0 {
		handle = args[0]
	}
	p, err := a.social.ViewProfile(ctx, a.session, handle)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderProfile(p))
	return nil
}

// Edit prompts for a new name and bio; an empty answer keeps the field.
func (a *App) Edit(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.notLoggedIn()
	}

	name, err := getSimpleText(a.reader, "New name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	bio, err := getSimpleText(a.reader, "New bio (empty to keep)", a.out)
	if err != nil {
		return err
	}

	p, err := a.social.EditProfile(ctx, a.session, models.ProfileUpdate{Name: &name, Bio: &bio})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, okStyle.Render("Profile updated."))
	fmt.Fprintln(a.out, renderProfile(p))
	return nil
}

func (a *App) Follow(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return a.notLoggedIn()
	}
	target, err := a.argOrPrompt(args, "Username to follow")
	if err != nil {
		return err
	}

	if _, err := a.social.Follow(ctx, a.session, target); err != nil {
		return err
	}
	fmt.Fprintln(a.out, okStyle.Render("You are now following @"+target))
	return nil
}

func (a *App) Unfollow(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return a.notLoggedIn()
	}
	target, err := a.argOrPrompt(args, "Username to unfollow")
	if err != nil {
		return err
	}

	if _, err := a.social.Unfollow(ctx, a.session, target); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "You unfollowed @"+target)
	return nil
}

func (a *App) Connections(ctx context.Context) error {
	c, err := a.social.Connections(ctx, a.session)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderConnections(c))
	return nil
}

func (a *App) Mutual(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return a.notLoggedIn()
	}
	other, err := a.argOrPrompt(args, "Compare with username")
	if err != nil {
		return err
	}

	m, err := a.social.MutualConnections(ctx, a.session, other)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderHandles("Followed by you and @"+other, m))
	return nil
}

func (a *App) Recommend(ctx context.Context) error {
	recs, err := a.social.Recommendations(ctx, a.session)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderRecommendations(recs))
	return nil
}

// Search joins all arguments into one term so names with spaces work.
func (a *App) Search(ctx context.Context, args []string) error {
	term := joinArgs(args)
	if term == "" {
		var err error
		if term, err = getSimpleText(a.reader, "Search for", a.out); err != nil {
			return err
		}
	}

	hits, err := a.social.Search(ctx, term)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderSearch(hits))
	return nil
}

func (a *App) Popular(ctx context.Context) error {
	users, err := a.social.PopularUsers(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderPopular(users))
	return nil
}

// notLoggedIn returns the session's common.ErrUnauthenticated.
func (a *App) notLoggedIn() error {
	_, err := a.session.Handle()
	return err
}
