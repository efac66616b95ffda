package sheets

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"

	"salesdesk/pkg/config"
)

// credentialJSON returns the service account document: the configured file
// when it exists, otherwise the inline JSON.
func credentialJSON(c config.Credentials) ([]byte, string, error) {
	if c.File != "" {
		b, err := os.ReadFile(c.File)
		if err == nil {
			return b, c.File, nil
		}
		if !os.IsNotExist(err) {
			log.WithError(err).WithField("file", c.File).Warn("cannot read credentials file")
		}
	}
	if inline := strings.TrimSpace(c.JSON); inline != "" {
		return []byte(inline), "inline json", nil
	}
	return nil, "", fmt.Errorf("%w: no credentials file or inline json", ErrAuth)
}

// tokenSource builds a service account token source and fetches a token
// straight away so bad keys fail here instead of on the first read.
func tokenSource(ctx context.Context, c config.Credentials) (oauth2.TokenSource, error) {
	b, from, err := credentialJSON(c)
	if err != nil {
		return nil, err
	}
	jwt, err := google.JWTConfigFromJSON(b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrAuth, from, err)
	}
	// The token source outlives ctx; refreshes must not fail once the first
	// request is done.
	ts := oauth2.ReuseTokenSource(nil, jwt.TokenSource(context.WithoutCancel(ctx)))
	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("%w: token for %s: %w", ErrAuth, jwt.Email, err)
	}
	log.WithField("account", jwt.Email).Debug("service account token acquired")
	return ts, nil
}
