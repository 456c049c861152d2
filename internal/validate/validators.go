// validators.go
//
// Field level validators. Each validator takes a raw string (or upload) and
// either returns a normalized value or an *Invalid carrying a human readable
// message to key against the field name.

package validate

import (
	"mime/multipart"
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/thruflo/awraamba/internal/models"
	"github.com/thruflo/awraamba/internal/thumbnail"
	"gorm.io/gorm"
)

var (
	validUsername = regexp.MustCompile(`^[.\w-]{1,32}$`)
	validHash     = regexp.MustCompile(`^[a-z0-9]{32}$`)
	validDigest   = regexp.MustCompile(`^[a-f0-9]{32}$`)
)

const (
	minPasswordLength = 7
	maxPasswordLength = 200
)

// Invalid is a validation failure with a message for the user.
type Invalid struct {
	Message string
}

func (e *Invalid) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &Invalid{Message: message}
}

// Username trims, lowercases and shape-checks a username.
func Username(raw string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if !validUsername.MatchString(value) {
		return "", invalid("No spaces, no funny chars, upto 32 characters long.")
	}
	return value, nil
}

// UniqueUsername additionally checks that no user holds the username yet.
// This is a courtesy check; the unique constraint is the guarantee.
func UniqueUsername(db *gorm.DB, raw string) (string, error) {
	value, err := Username(raw)
	if err != nil {
		return "", err
	}
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", value).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", invalid("Username has already been taken.")
	}
	return value, nil
}

// RawPassword trims, lowercases and length-checks a password.
func RawPassword(raw string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if len(value) < minPasswordLength || len(value) > maxPasswordLength {
		return "", invalid("Invalid password. Must be at least seven characters long.")
	}
	return value, nil
}

// EncryptedPassword validates the raw password and replaces it with a salted
// hash. The shape check happens before hashing since the hash cannot be
// length checked after.
func EncryptedPassword(raw string) (string, error) {
	value, err := RawPassword(raw)
	if err != nil {
		return "", err
	}
	hashed, err := HashPassword(value)
	if err != nil {
		return "", invalid("Invalid password. Must be at least seven characters long.")
	}
	return hashed, nil
}

// Email trims, lowercases and shape-checks an email address. When
// resolveDomain is set the domain must also have an MX or A record.
func Email(raw string, resolveDomain bool) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return "", invalid("An email address must contain a single @.")
	}
	if resolveDomain {
		domain := value[strings.LastIndex(value, "@")+1:]
		if mx, err := net.LookupMX(domain); err != nil || len(mx) == 0 {
			if ips, err := net.LookupIP(domain); err != nil || len(ips) == 0 {
				return "", invalid("The domain of the email address does not exist.")
			}
		}
	}
	return value, nil
}

// UniqueEmail additionally checks that no user registered the address yet.
func UniqueEmail(db *gorm.DB, raw string, resolveDomain bool) (string, error) {
	value, err := Email(raw, resolveDomain)
	if err != nil {
		return "", err
	}
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", value).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", invalid("Email address has already been registered.")
	}
	return value, nil
}

// ConfirmationHash checks a fixed-length lowercase hex token.
func ConfirmationHash(raw string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if !validHash.MatchString(value) {
		return "", invalid("Invalid confirmation hash. Did your email programme mangle the link?")
	}
	return value, nil
}

// RequestPath unescapes and checks a URL path suitable for a login redirect.
// Only bare absolute paths pass, so the value can never send the browser off
// site.
func RequestPath(raw string) (string, error) {
	value, err := url.QueryUnescape(strings.TrimSpace(raw))
	if err != nil {
		return "", invalid("Not a valid URL path.")
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Path != value || !strings.HasPrefix(value, "/") {
		return "", invalid("Not a valid URL path.")
	}
	return value, nil
}

// datetimeLayouts are tried in order when parsing datetime strings.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateTime parses a datetime string from a tolerant set of layouts.
func DateTime(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalid("Not a valid datetime.")
}

// Thumbnail accepts an uploaded file or a remote URL, converts it into a
// stored thumbnail and returns the content digest. Fetch, decode and IO
// errors all surface as validation failures.
func Thumbnail(store *thumbnail.Store, upload *multipart.FileHeader, rawURL string) (string, error) {
	var digest string

	switch {
	case upload != nil:
		f, err := upload.Open()
		if err != nil {
			return "", invalid("Could not save image.")
		}
		defer f.Close()
		digest, err = store.FromReader(f)
		if err != nil {
			return "", invalid("Could not save image.")
		}
	case rawURL != "":
		var err error
		digest, err = store.FromURL(rawURL)
		if err != nil {
			return "", invalid("Could not save image.")
		}
	default:
		return "", nil
	}

	if !validDigest.MatchString(digest) {
		return "", invalid("Not a valid digest.")
	}
	return digest, nil
}
