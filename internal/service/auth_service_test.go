package service

import (
	"regexp"
	"testing"

	"go-market-api/internal/model"
	"go-market-api/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (AuthService, *fakeUserRepo, *fakeMailer) {
	users := newFakeUserRepo()
	mail := &fakeMailer{}
	svc := NewAuthService(users, mail, logger.Get())
	return svc, users, mail
}

func register(t *testing.T, svc AuthService, email string) RegisterInput {
	t.Helper()
	in := RegisterInput{
		FirstName:   "Priya",
		LastName:    "Nair",
		Email:       email,
		Password:    "secret123",
		PhoneNumber: "+61400000000",
	}
	_, err := svc.Register(in)
	require.NoError(t, err)
	return in
}

func TestRegisterIssuesSixDigitOTP(t *testing.T) {
	svc, users, mail := newAuthFixture()
	register(t, svc, "priya@example.com")

	user, err := users.FindByEmail("priya@example.com")
	require.NoError(t, err)
	assert.False(t, user.IsConfirmed)
	require.NotNil(t, user.ConfirmOTP)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), *user.ConfirmOTP)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.Equal(t, []string{"priya@example.com"}, mail.sent)
}

func TestRegisterRejectsDuplicatePhone(t *testing.T) {
	svc, _, _ := newAuthFixture()
	register(t, svc, "priya@example.com")

	_, err := svc.Register(RegisterInput{
		FirstName: "Other", LastName: "Person",
		Email: "other@example.com", Password: "other123", PhoneNumber: "+61400000000",
	})
	assert.ErrorIs(t, err, ErrPhoneTaken)
}

func TestRegisterSamePhoneOnReRegistration(t *testing.T) {
	svc, users, _ := newAuthFixture()
	in := register(t, svc, "priya@example.com")

	// Re-registering the unconfirmed account keeps its own phone number.
	_, err := svc.Register(in)
	require.NoError(t, err)

	user, err := users.FindByEmail("priya@example.com")
	require.NoError(t, err)
	assert.Equal(t, "+61400000000", user.PhoneNumber)
}

func TestRegisterRejectsConfirmedEmail(t *testing.T) {
	svc, users, _ := newAuthFixture()
	register(t, svc, "priya@example.com")

	user, _ := users.FindByEmail("priya@example.com")
	require.NoError(t, users.Confirm(user.ID))

	_, err := svc.Register(RegisterInput{
		FirstName: "Other", LastName: "Person",
		Email: "priya@example.com", Password: "other123", PhoneNumber: "+61400000001",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestConfirmRegistrationWithCorrectOTP(t *testing.T) {
	svc, users, _ := newAuthFixture()
	in := register(t, svc, "priya@example.com")

	user, _ := users.FindByEmail(in.Email)
	otp := *user.ConfirmOTP

	login, err := svc.ConfirmRegistration(in.Email, otp)
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	user, _ = users.FindByEmail(in.Email)
	assert.True(t, user.IsConfirmed)
	assert.Nil(t, user.ConfirmOTP)
}

func TestConfirmRegistrationWrongOTPCountsTries(t *testing.T) {
	svc, users, _ := newAuthFixture()
	in := register(t, svc, "priya@example.com")

	for i := 0; i < maxOTPTries; i++ {
		_, err := svc.ConfirmRegistration(in.Email, "000000")
		assert.ErrorIs(t, err, ErrInvalidOTP)
	}

	// Attempts exhausted: even the right code is refused now.
	user, _ := users.FindByEmail(in.Email)
	_, err := svc.ConfirmRegistration(in.Email, *user.ConfirmOTP)
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestResendOTPReplacesCode(t *testing.T) {
	svc, users, mail := newAuthFixture()
	in := register(t, svc, "priya@example.com")

	user, _ := users.FindByEmail(in.Email)
	user.OTPTries = maxOTPTries - 1

	require.NoError(t, svc.ResendOTP(in.Email))

	user, _ = users.FindByEmail(in.Email)
	assert.Zero(t, user.OTPTries)
	assert.Len(t, mail.sent, 2)

	login, err := svc.ConfirmRegistration(in.Email, *user.ConfirmOTP)
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
}

func TestLoginRequiresConfirmedAccount(t *testing.T) {
	svc, _, _ := newAuthFixture()
	in := register(t, svc, "priya@example.com")

	_, err := svc.Login(in.Email, in.Password)
	assert.ErrorIs(t, err, ErrUserNotConfirmed)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, users, _ := newAuthFixture()
	in := register(t, svc, "priya@example.com")
	user, _ := users.FindByEmail(in.Email)
	require.NoError(t, users.Confirm(user.ID))

	_, err := svc.Login(in.Email, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginSuccessAfterConfirmation(t *testing.T) {
	svc, users, _ := newAuthFixture()
	in := register(t, svc, "priya@example.com")
	user, _ := users.FindByEmail(in.Email)
	require.NoError(t, users.Confirm(user.ID))

	login, err := svc.Login(in.Email, in.Password)
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, in.Email, login.User.Email)
}

func TestChangePassword(t *testing.T) {
	svc, users, _ := newAuthFixture()
	in := register(t, svc, "priya@example.com")
	user, _ := users.FindByEmail(in.Email)
	require.NoError(t, users.Confirm(user.ID))

	err := svc.ChangePassword(in.Email, "wrong", "newsecret1")
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(in.Email, in.Password, "newsecret1"))

	_, err = svc.Login(in.Email, "newsecret1")
	assert.NoError(t, err)
}
