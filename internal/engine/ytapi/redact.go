package ytapi

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// Redacted replaces every scrubbed value.
const Redacted = "[REDACTED]"

var sensitiveParams = map[string]bool{
	"key":          true,
	"api_key":      true,
	"apikey":       true,
	"token":        true,
	"access_token": true,
}

var sensitiveQueryRe = regexp.MustCompile(`(?i)([?&](?:key|api_key|apikey|token|access_token)=)[^&\s"']*`)

// RedactURL replaces sensitive query values in rawURL. Safe for log fields.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "[UNPARSABLE_URL]"
	}
	if u.RawQuery == "" {
		return rawURL
	}
	q := u.Query()
	for k := range q {
		if sensitiveParams[strings.ToLower(k)] {
			q.Set(k, Redacted)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// WithRedaction wraps next so that no returned error text contains any of
// secrets or a sensitive query value. Classification (Kind, Status, Reason)
// and errors.Is/As on the cause keep working.
func WithRedaction(next Client, secrets ...string) Client {
	var keep []string
	for _, s := range secrets {
		if s = strings.TrimSpace(s); s != "" {
			keep = append(keep, s)
		}
	}
	r := &redactor{secrets: keep}
	return callFunc(func(ctx context.Context, op Operation, part string, params Params) (Response, error) {
		resp, err := Invoke(ctx, next, op, part, params)
		if err != nil {
			return nil, r.error(err)
		}
		return resp, nil
	})
}

type redactor struct {
	secrets []string
}

func (r *redactor) scrub(s string) string {
	for _, secret := range r.secrets {
		s = strings.ReplaceAll(s, secret, Redacted)
	}
	return sensitiveQueryRe.ReplaceAllString(s, "${1}"+Redacted)
}

func (r *redactor) error(err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		clean := *apiErr
		clean.Message = r.scrub(apiErr.Message)
		clean.Reason = r.scrub(apiErr.Reason)
		if apiErr.Err != nil {
			clean.Err = r.wrap(apiErr.Err)
		}
		return &clean
	}
	return r.wrap(err)
}

// wrap keeps the chain for errors.Is (context.Canceled etc.) but scrubs the text.
func (r *redactor) wrap(err error) error {
	text := err.Error()
	if clean := r.scrub(text); clean != text {
		return &redactedError{text: clean, cause: err}
	}
	return err
}

type redactedError struct {
	text  string
	cause error
}

func (e *redactedError) Error() string { return e.text }
func (e *redactedError) Unwrap() error { return e.cause }
