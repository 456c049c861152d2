package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupInvalidFields(t *testing.T) {
	db := setupTestDB(t)

	data, errs := Signup(db, SignupForm{
		Username: "has space",
		Email:    "not-an-email",
		Password: "short",
		Confirm:  "short",
	})
	assert.Nil(t, data)
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestSignupMismatchedConfirm(t *testing.T) {
	db := setupTestDB(t)

	data, errs := Signup(db, SignupForm{
		Username: "thruflo",
		Email:    "not-an-email",
		Password: "letmein7",
		Confirm:  "letmein8",
	})
	assert.Nil(t, data)
	assert.Equal(t, "Fields do not match.", errs["confirm"])
}

func TestSignupConfirmVerifiesAgainstHash(t *testing.T) {
	// The password field is already a hash when the cross-field check runs,
	// so a matching raw confirm value must still pass.
	hash, err := HashPassword("letmein7")
	require.NoError(t, err)
	assert.True(t, hash != "letmein7")
	assert.True(t, VerifyPassword("letmein7", hash))
}

func TestLogin(t *testing.T) {
	data, errs := Login(LoginForm{Username: "Thruflo", Password: "letmein7"})
	require.False(t, errs.Any())
	assert.Equal(t, "thruflo", data.Username)
	assert.Equal(t, "letmein7", data.Password)
	assert.Equal(t, "", data.Next)
}

func TestLoginNext(t *testing.T) {
	data, errs := Login(LoginForm{Username: "thruflo", Password: "letmein7", Next: "/themes/working"})
	require.False(t, errs.Any())
	assert.Equal(t, "/themes/working", data.Next)

	_, errs = Login(LoginForm{Username: "thruflo", Password: "letmein7", Next: "http://evil.example.com/"})
	assert.Contains(t, errs, "next")
}

func TestAddReaction(t *testing.T) {
	data, errs := AddReaction(AddReactionForm{ThemeSlug: "Working", Message: "so true"})
	require.False(t, errs.Any())
	assert.Equal(t, "working", data.ThemeSlug)
	assert.Equal(t, "so true", data.Message)
	assert.Nil(t, data.ParentID)
}

func TestAddReactionRequiresContent(t *testing.T) {
	_, errs := AddReaction(AddReactionForm{ThemeSlug: "working"})
	assert.Equal(t, "Please add a comment or a link.", errs["message"])

	_, errs = AddReaction(AddReactionForm{Message: "hi"})
	assert.Equal(t, "Please provide a theme.", errs["theme_slug"])
}

func TestAddReactionURL(t *testing.T) {
	data, errs := AddReaction(AddReactionForm{
		ThemeSlug: "working",
		URL:       "https://example.com/clip",
	})
	require.False(t, errs.Any())
	assert.Equal(t, "https://example.com/clip", data.URL)

	_, errs = AddReaction(AddReactionForm{ThemeSlug: "working", URL: "not a url"})
	assert.Equal(t, "Not a valid URL.", errs["url"])
}

func TestAddReactionTimecode(t *testing.T) {
	_, errs := AddReaction(AddReactionForm{ThemeSlug: "working", Message: "hi", Timecode: -1})
	assert.Equal(t, "Not a valid timecode.", errs["timecode"])
}

func TestAddReactionParent(t *testing.T) {
	data, errs := AddReaction(AddReactionForm{ThemeSlug: "working", Message: "hi", ParentID: 42})
	require.False(t, errs.Any())
	require.NotNil(t, data.ParentID)
	assert.Equal(t, uint64(42), *data.ParentID)
}
