// schema.go
//
// Composite form schemas. Each schema runs its field validators, gathers
// failures into an Errors map keyed by field name and applies cross-field
// checks.

package validate

import (
	"net/url"
	"strings"

	"gorm.io/gorm"
)

// Errors maps field names to human readable validation messages. It is also
// the JSON body of a 400 response.
type Errors map[string]string

// Any reports whether any field failed.
func (e Errors) Any() bool {
	return len(e) > 0
}

func (e Errors) set(field string, err error) {
	if inv, ok := err.(*Invalid); ok {
		e[field] = inv.Message
		return
	}
	e[field] = err.Error()
}

// SignupForm is the raw signup submission.
type SignupForm struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Confirm  string `json:"confirm" form:"confirm"`
}

// SignupData is a validated signup: username and email normalized, password
// replaced by its salted hash.
type SignupData struct {
	Username     string
	Email        string
	PasswordHash string
}

// Signup validates a signup submission. The confirm field must match the
// password; since the password has already been replaced by a hash when the
// cross-field check runs, the comparison tolerates verifying the raw confirm
// value against the hash.
func Signup(db *gorm.DB, form SignupForm) (*SignupData, Errors) {
	errs := Errors{}
	data := &SignupData{}

	var err error
	if data.Username, err = UniqueUsername(db, form.Username); err != nil {
		errs.set("username", err)
	}
	if data.Email, err = UniqueEmail(db, form.Email, true); err != nil {
		errs.set("email", err)
	}
	if data.PasswordHash, err = EncryptedPassword(form.Password); err != nil {
		errs.set("password", err)
	}

	// Cross-field: passwords match.
	if data.PasswordHash != "" {
		confirm := strings.ToLower(strings.TrimSpace(form.Confirm))
		if confirm != data.PasswordHash && !VerifyPassword(confirm, data.PasswordHash) {
			errs["confirm"] = "Fields do not match."
		}
	}

	if errs.Any() {
		return nil, errs
	}
	return data, nil
}

// LoginForm is the raw login submission.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Next     string `json:"next" form:"next"`
}

// LoginData is a validated login.
type LoginData struct {
	Username string
	Password string
	Next     string
}

// Login validates a login submission. Next is optional; when present it must
// be a bare absolute path.
func Login(form LoginForm) (*LoginData, Errors) {
	errs := Errors{}
	data := &LoginData{}

	var err error
	if data.Username, err = Username(form.Username); err != nil {
		errs.set("username", err)
	}
	if data.Password, err = RawPassword(form.Password); err != nil {
		errs.set("password", err)
	}
	if form.Next != "" {
		if data.Next, err = RequestPath(form.Next); err != nil {
			errs.set("next", err)
		}
	}

	if errs.Any() {
		return nil, errs
	}
	return data, nil
}

// AddReactionForm is the raw reaction submission. The theme slug scopes the
// reaction; either a message or a url must be present.
type AddReactionForm struct {
	ThemeSlug string
	Message   string
	URL       string
	Timecode  float64
	ParentID  uint64
}

// AddReactionData is a validated reaction submission.
type AddReactionData struct {
	ThemeSlug string
	Message   string
	URL       string
	Timecode  float64
	ParentID  *uint64
}

// AddReaction validates a reaction submission. Theme existence is not checked
// here; a missing theme is a 404, not a validation failure.
func AddReaction(form AddReactionForm) (*AddReactionData, Errors) {
	errs := Errors{}
	data := &AddReactionData{
		ThemeSlug: strings.ToLower(strings.TrimSpace(form.ThemeSlug)),
		Message:   strings.TrimSpace(form.Message),
		Timecode:  form.Timecode,
	}

	if data.ThemeSlug == "" {
		errs["theme_slug"] = "Please provide a theme."
	}

	if rawURL := strings.TrimSpace(form.URL); rawURL != "" {
		parsed, err := url.Parse(rawURL)
		if err != nil || !parsed.IsAbs() || parsed.Host == "" {
			errs["url"] = "Not a valid URL."
		} else {
			data.URL = rawURL
		}
	}

	if data.Message == "" && data.URL == "" && errs["url"] == "" {
		errs["message"] = "Please add a comment or a link."
	}

	if form.Timecode < 0 {
		errs["timecode"] = "Not a valid timecode."
	}

	if form.ParentID != 0 {
		parentID := form.ParentID
		data.ParentID = &parentID
	}

	if errs.Any() {
		return nil, errs
	}
	return data, nil
}
