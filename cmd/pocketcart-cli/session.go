package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	syncdomain "pocketcart/internal/domain/sync"
	"pocketcart/internal/localstore"
)

var errSignedOut = errors.New("not signed in, run: pocketcart-cli login <email> <password>")

func (c *cli) register(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errUsage
	}
	user, err := c.api.Register(ctx, args[0], args[1], strings.Join(args[2:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "registered %s\n", user.Email)
	return nil
}

func (c *cli) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	session, err := c.api.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if err := c.store.Reset(ctx); err != nil {
		return err
	}
	err = c.store.SaveSession(ctx, localstore.Session{
		Token:  session.Token,
		UserID: session.User.ID,
		Email:  session.User.Email,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "signed in as %s\n", session.User.Email)
	return nil
}

func (c *cli) logout(ctx context.Context) error {
	if err := c.api.Logout(ctx); err != nil && !syncdomain.IsUnauthorized(err) {
		c.log.Warn("cli.logout: remote logout failed", "err", err)
	}
	if err := c.store.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "signed out")
	return nil
}

func (c *cli) budget(ctx context.Context, args []string) error {
	session, ok, err := c.store.Session(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errSignedOut
	}

	if len(args) == 0 {
		amount, set, err := c.store.Budget(ctx, session.UserID)
		if err != nil {
			return err
		}
		if !set {
			fmt.Fprintln(c.out, "no budget set")
			return nil
		}
		fmt.Fprintf(c.out, "Budget: %s\n", formatMoney(amount))
		return nil
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil {
		return localstore.ErrInvalidBudget
	}
	if err := c.store.SetBudget(ctx, session.UserID, amount); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Budget: %s\n", formatMoney(amount))
	return nil
}

// userBudget returns the signed in user's budget, if any.
func (c *cli) userBudget(ctx context.Context) (float64, bool) {
	session, ok, err := c.store.Session(ctx)
	if err != nil || !ok {
		return 0, false
	}
	amount, set, err := c.store.Budget(ctx, session.UserID)
	if err != nil {
		c.log.Warn("cli.budget: read failed", "err", err)
		return 0, false
	}
	return amount, set
}

// remoteErr turns a rejected session into a sign-in hint and drops the
// stored credentials.
func (c *cli) remoteErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if syncdomain.IsUnauthorized(err) {
		if resetErr := c.store.Reset(ctx); resetErr != nil {
			c.log.Error("cli.session: reset failed", "err", resetErr)
		}
		return errSignedOut
	}
	return err
}
