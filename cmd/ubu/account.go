package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/hongminglow/ubu-lite/internal/checkout"
	"github.com/hongminglow/ubu-lite/internal/models"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
	"github.com/hongminglow/ubu-lite/internal/session"
)

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return &usageError{msg: err.Error()}
	}
	if fs.NArg() > 0 {
		return usagef("unexpected argument %q", fs.Arg(0))
	}
	return nil
}

func credentials(fs *flag.FlagSet) (username, password *string) {
	username = fs.String("u", "", "username")
	password = fs.String("p", os.Getenv("UBU_PASSWORD"), "password (defaults to $UBU_PASSWORD)")
	return username, password
}

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register")
	username, password := credentials(fs)
	email := fs.String("email", "", "email address")
	role := fs.String("role", string(models.RoleClient), "creative or client")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return usagef("-u and -p are required")
	}

	raw, err := a.api.Register(ctx, dto.RegisterRequest{
		Username: *username,
		Email:    *email,
		Password: *password,
		Role:     models.Role(strings.ToLower(*role)),
	}).Get()
	if err != nil {
		return err
	}

	resp, err := a.api.WithToken("").Login(ctx, dto.LoginRequest{Username: *username, Password: *password}).Get()
	if err != nil {
		return err
	}
	// keep the full user record the registration returned
	var created models.User
	if json.Unmarshal(raw, &created) == nil && created.ID != 0 && resp.User == nil {
		resp.User = &created
	}
	if err := a.store.Begin(ctx, resp, *username); err != nil {
		return err
	}
	return a.printSession(ctx)
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	username, password := credentials(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return usagef("-u and -p are required")
	}

	resp, err := a.api.WithToken("").Login(ctx, dto.LoginRequest{Username: *username, Password: *password}).Get()
	if err != nil {
		return err
	}
	if err := a.store.Begin(ctx, resp, *username); err != nil {
		return err
	}
	a.log.WithField("username", *username).Info("signed in")
	return a.printSession(ctx)
}

func cmdLogout(ctx context.Context, a *app, args []string) error {
	if err := parse(newFlags("logout"), args); err != nil {
		return err
	}
	if err := a.store.Logout(ctx); err != nil {
		return err
	}
	return a.printSession(ctx)
}

func cmdWhoami(ctx context.Context, a *app, args []string) error {
	if err := parse(newFlags("whoami"), args); err != nil {
		return err
	}
	return a.printSession(ctx)
}

type sessionView struct {
	SignedIn  bool         `json:"signed_in"`
	User      *models.User `json:"user,omitempty"`
	TokenType string       `json:"token_type,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
	Expired   bool         `json:"expired,omitempty"`
}

func (a *app) printSession(ctx context.Context) error {
	st, err := a.store.Status(ctx, time.Now())
	if err != nil {
		return err
	}
	return a.print(newSessionView(st))
}

func newSessionView(st session.Status) sessionView {
	v := sessionView{SignedIn: st.SignedIn, User: st.User, Expired: st.Expired}
	if st.Token != nil {
		v.TokenType = st.Token.TokenType
		if !st.Token.ExpiresAt.IsZero() {
			exp := st.Token.ExpiresAt
			v.ExpiresAt = &exp
		}
	}
	return v
}

func cmdCheckout(ctx context.Context, a *app, args []string) error {
	fs := newFlags("checkout")
	var hints checkout.Hints
	fs.Int64Var(&hints.ServiceID, "service-id", 0, "buy this service id")
	fs.StringVar(&hints.Service, "service", "", "pick the first service whose title contains this")
	fs.StringVar(&hints.Category, "category", "", "pick the first service whose category contains this")
	fs.StringVar(&hints.Date, "date", "", "preferred date, copied into the order instructions")
	fs.StringVar(&hints.Budget, "budget", "", "budget, copied into the order instructions")
	username := fs.String("u", checkout.DemoBuyer.Username, "buyer username")
	password := fs.String("p", checkout.DemoBuyer.Password, "buyer password")
	if err := parse(fs, args); err != nil {
		return err
	}

	buyer := checkout.DemoBuyer
	if *username != buyer.Username || *password != buyer.Password {
		buyer = checkout.Buyer{Username: *username, Password: *password}
	}
	flow := checkout.New(a.api, a.store,
		checkout.WithBuyer(buyer),
		checkout.WithLogger(a.log),
		checkout.WithObserver(func(s checkout.Step) {
			a.log.WithField("step", s).Info("checkout")
		}),
	)
	res, err := flow.Run(ctx, hints)
	if err != nil {
		return err
	}
	return a.print(res)
}
