package backoffice

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"salesdesk/pkg/normalize"
	"salesdesk/pkg/record"
)

var (
	ErrMissingLogin  = errors.New("email and password are required")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrInactiveUser  = errors.New("user is inactive")
)

const (
	activeState = "activo"
	defaultRole = "usuario"
)

// UserProfile is what a successful login knows about an advisor.
type UserProfile struct {
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Nombre   string  `json:"nombre"`
	Rol      string  `json:"rol"`
	Comision float64 `json:"comision"`
	Codigo   string  `json:"codigo"`
	Posicion string  `json:"posicion"`
	Volumen  float64 `json:"volumen"`
	Ventas   int     `json:"ventas"`
}

type Advisor struct {
	Codigo  string `json:"codigo"`
	Nombre  string `json:"nombre"`
	Email   string `json:"email"`
	Rol     string `json:"rol"`
	Volumen string `json:"volumen"`
	Ventas  string `json:"ventas"`
}

type AdvisorList struct {
	Advisors []Advisor `json:"asesores"`
	Degraded bool      `json:"degraded,omitempty"`
}

// credentials is one fetch of the users sheet with its columns resolved.
type credentials struct {
	recs []record.Record
	cols map[string]string
}

func (d *Desk) credentials(ctx context.Context) (credentials, error) {
	recs, err := d.fetch(ctx, d.cfg.Sources.Users)
	if err != nil {
		return credentials{}, err
	}
	c := credentials{recs: recs}
	if len(recs) > 0 {
		c.cols = record.IndexKeys(recs[0]).Columns(
			fieldEmail, fieldUsername, fieldFullName, fieldCode, fieldComision,
			fieldPassword, fieldEstado, fieldRol, fieldPosicion, fieldVolumen, fieldVentasCnt,
		)
	}
	return c, nil
}

func (c credentials) text(r record.Record, field string) string {
	return strings.TrimSpace(r.Text(c.cols[field]))
}

// match returns the first user whose email, username or full name equals
// ident, ignoring case.
func (c credentials) match(ident string) (record.Record, bool) {
	target := strings.ToLower(strings.TrimSpace(ident))
	if target == "" {
		return record.Record{}, false
	}
	for _, r := range c.recs {
		for _, f := range []string{"email", "username", "nombre"} {
			if c.cols[f] == "" {
				continue
			}
			if strings.ToLower(c.text(r, f)) == target {
				return r, true
			}
		}
	}
	return record.Record{}, false
}

// UserCode returns the advisor code of the user identified by email,
// username or full name, or "" when there is none.
func (d *Desk) UserCode(ctx context.Context, ident string) string {
	code, err := guard("user_code", func() (string, error) {
		return d.userCode(ctx, ident)
	})
	if err != nil {
		d.degraded("user_code", err)
		return ""
	}
	return code
}

func (d *Desk) userCode(ctx context.Context, ident string) (string, error) {
	c, err := d.credentials(ctx)
	if err != nil {
		return "", err
	}
	if c.cols["codigo"] == "" {
		return "", nil
	}
	r, ok := c.match(ident)
	if !ok {
		return "", nil
	}
	return c.text(r, "codigo"), nil
}

// UserCommission returns the user's commission as a fraction, or the
// configured default when the sheet has no usable value.
func (d *Desk) UserCommission(ctx context.Context, ident string) float64 {
	pct, err := guard("user_commission", func() (float64, error) {
		return d.userCommission(ctx, ident)
	})
	if err != nil {
		d.degraded("user_commission", err)
		return d.defaultCommission()
	}
	return pct
}

func (d *Desk) userCommission(ctx context.Context, ident string) (float64, error) {
	c, err := d.credentials(ctx)
	if err != nil {
		return 0, err
	}
	r, ok := c.match(ident)
	if !ok || c.cols["comision"] == "" {
		return d.defaultCommission(), nil
	}
	pct, ok := normalize.ParseCommission(r.Get(c.cols["comision"]))
	if !ok {
		return d.defaultCommission(), nil
	}
	return pct, nil
}

// Authenticate checks an email and password against the credentials sheet.
// Fetch failures are returned as-is so callers can tell them from a bad login.
func (d *Desk) Authenticate(ctx context.Context, email, password string) (UserProfile, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return UserProfile{}, ErrMissingLogin
	}
	c, err := d.credentials(ctx)
	if err != nil {
		return UserProfile{}, fmt.Errorf("load credentials: %w", err)
	}
	if c.cols["email"] == "" {
		return UserProfile{}, ErrUserNotFound
	}

	var (
		user  record.Record
		found bool
	)
	for _, r := range c.recs {
		if strings.EqualFold(c.text(r, "email"), email) {
			user, found = r, true
			break
		}
	}
	if !found {
		return UserProfile{}, ErrUserNotFound
	}
	if !normalize.PasswordsMatch(password, user.Get(c.cols["password"])) {
		return UserProfile{}, ErrWrongPassword
	}
	if normalize.Fold(c.text(user, "estado")) != activeState {
		return UserProfile{}, ErrInactiveUser
	}
	return c.profile(user, d.defaultCommission()), nil
}

func (c credentials) profile(r record.Record, defaultPct float64) UserProfile {
	p := UserProfile{
		Email:    c.text(r, "email"),
		Username: c.text(r, "username"),
		Nombre:   c.text(r, "nombre"),
		Rol:      c.text(r, "rol"),
		Codigo:   c.text(r, "codigo"),
		Posicion: cases.Title(language.Spanish).String(strings.ToLower(c.text(r, "posicion"))),
		Volumen:  normalize.ParseAmount(r.Get(c.cols["volumen"])),
		Ventas:   normalize.ParseInt(r.Get(c.cols["ventas"]), 0),
	}
	if p.Rol == "" {
		p.Rol = defaultRole
	}
	// A zero commission means "not set" in the sheet.
	if pct, ok := normalize.ParseCommission(r.Get(c.cols["comision"])); ok && pct > 0 {
		p.Comision = pct
	} else {
		p.Comision = defaultPct
	}
	return p
}

// Advisors lists every user with a code, sorted by name.
func (d *Desk) Advisors(ctx context.Context) AdvisorList {
	list, err := guard("advisors", func() ([]Advisor, error) {
		return d.advisors(ctx)
	})
	if err != nil {
		d.degraded("advisors", err)
		return AdvisorList{Advisors: []Advisor{}, Degraded: true}
	}
	return AdvisorList{Advisors: list}
}

func (d *Desk) advisors(ctx context.Context) ([]Advisor, error) {
	c, err := d.credentials(ctx)
	if err != nil {
		return nil, err
	}
	out := []Advisor{}
	for _, r := range c.recs {
		code := c.text(r, "codigo")
		if code == "" {
			continue
		}
		a := Advisor{
			Codigo:  code,
			Nombre:  c.text(r, "nombre"),
			Email:   c.text(r, "email"),
			Rol:     c.text(r, "rol"),
			Volumen: c.text(r, "volumen"),
			Ventas:  c.text(r, "ventas"),
		}
		if a.Rol == "" {
			a.Rol = defaultRole
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return normalize.Fold(out[i].Nombre) < normalize.Fold(out[j].Nombre)
	})
	return out, nil
}
