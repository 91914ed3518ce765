package crawl

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateURL trims rawURL and checks that it is an absolute http(s) URL.
func ValidateURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)

	if err := validate.Var(trimmed, "required,url"); err != nil {
		return "", &InvalidURLError{URL: trimmed, Message: "enter a valid URL", Cause: err}
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", &InvalidURLError{URL: trimmed, Message: "enter a valid URL", Cause: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", &InvalidURLError{URL: trimmed, Message: "only http and https URLs can be crawled"}
	}
	if parsed.Host == "" {
		return "", &InvalidURLError{URL: trimmed, Message: "URL has no host"}
	}
	return trimmed, nil
}
