package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// Value shapes that must never reach a log sink, whatever the field is
// called.
var (
	// Three dot-separated base64url segments starting with an encoded
	// JSON header.
	jwtPattern = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)

	bearerPattern    = regexp.MustCompile(`(?i)^bearer\s+.+$`)
	basicAuthPattern = regexp.MustCompile(`(?i)^basic\s+.+$`)
)

// redactedFieldNames are matched exactly (case-insensitively by masq) against
// attribute and struct field names.
var redactedFieldNames = []string{
	"password",
	"secret",
	"token",
	"apiKey",
	"apikey",
	"api_key",
	"accessToken",
	"access_token",
	"refreshToken",
	"refresh_token",
	"credential",
	"credentials",
	"authorization",
	"auth",
	"bearer",
	"cookie",
	"session",
	"privateKey",
	"private_key",
	"secretKey",
	"secret_key",
}

// DefaultRedactOptions returns the masq options applied to every logger this
// package builds. The API key and basic-auth credentials are the main
// secrets in this codebase; the rest of the list covers the usual suspects
// so a future field does not leak by default.
//
// Callers needing more can append:
//
//	opts := append(logging.DefaultRedactOptions(),
//	    masq.WithFieldName("MySecretField"),
//	    masq.WithType[MySecretType](),
//	)
func DefaultRedactOptions() []masq.Option {
	opts := make([]masq.Option, 0, len(redactedFieldNames)+5)

	for _, name := range redactedFieldNames {
		opts = append(opts, masq.WithFieldName(name))
	}

	opts = append(opts,
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(basicAuthPattern),
	)

	return opts
}

// NewReplaceAttr builds a ReplaceAttr function for slog.HandlerOptions that
// redacts sensitive attributes. Extra masq options are applied on top of
// DefaultRedactOptions.
//
//	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
//	    ReplaceAttr: logging.NewReplaceAttr(),
//	})
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}
