package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"

	"go-market-api/internal/model"
	"go-market-api/internal/notify"
	"go-market-api/internal/repository"
	"go-market-api/pkg/jwt"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrUserNotConfirmed   = errors.New("account is not confirmed")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrPhoneTaken         = errors.New("phone number is already registered")
	ErrInvalidOTP         = errors.New("invalid verification code")
	ErrOTPExpired         = errors.New("verification code attempts exhausted")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// maxOTPTries bounds brute force attempts on the six-digit code. Once
// exhausted the user must request a fresh code.
const maxOTPTries = 5

type RegisterInput struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Email       string `json:"email_id" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type AuthService interface {
	Register(in RegisterInput) (*model.UserResponse, error)
	ConfirmRegistration(email, otp string) (*LoginResponse, error)
	ResendOTP(email string) error
	Login(email, password string) (*LoginResponse, error)
	ChangePassword(email, oldPassword, newPassword string) error
}

type authService struct {
	userRepo repository.UserRepository
	mail     notify.EmailSender
	log      *logrus.Logger
}

func NewAuthService(userRepo repository.UserRepository, mail notify.EmailSender, log *logrus.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		mail:     mail,
		log:      log,
	}
}

// generateOTP draws a uniform six digit code from crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *authService) Register(in RegisterInput) (*model.UserResponse, error) {
	// The phone number is unique across accounts, the same as the email.
	if owner, err := s.userRepo.FindByPhone(in.PhoneNumber); err == nil && owner != nil && owner.Email != in.Email {
		return nil, ErrPhoneTaken
	}

	if existing, err := s.userRepo.FindByEmail(in.Email); err == nil && existing != nil {
		if existing.IsConfirmed {
			return nil, ErrEmailTaken
		}
		// Re-registration before confirmation re-issues the code on the
		// existing row instead of failing.
		otp, err := generateOTP()
		if err != nil {
			return nil, err
		}
		existing.FirstName = in.FirstName
		existing.LastName = in.LastName
		existing.PhoneNumber = in.PhoneNumber
		if err := existing.SetPassword(in.Password); err != nil {
			return nil, err
		}
		if err := s.userRepo.Update(existing); err != nil {
			return nil, err
		}
		if err := s.userRepo.SetOTP(existing.ID, otp); err != nil {
			return nil, err
		}
		s.sendOTPEmail(existing.Email, existing.FirstName, otp)
		resp := existing.ToResponse()
		return &resp, nil
	}

	user := &model.User{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Role:        model.RoleCustomer,
		IsActive:    true,
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, err
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, err
	}
	user.ConfirmOTP = &otp

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.sendOTPEmail(user.Email, user.FirstName, otp)

	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) ConfirmRegistration(email, otp string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.IsConfirmed {
		return s.issueToken(user)
	}
	if user.ConfirmOTP == nil || user.OTPTries >= maxOTPTries {
		return nil, ErrOTPExpired
	}
	if *user.ConfirmOTP != otp {
		user.OTPTries++
		if err := s.userRepo.Update(user); err != nil {
			s.log.WithField("error", err.Error()).Error("failed to record otp attempt")
		}
		return nil, ErrInvalidOTP
	}

	if err := s.userRepo.Confirm(user.ID); err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

func (s *authService) ResendOTP(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}
	if user.IsConfirmed {
		return nil
	}
	otp, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.userRepo.SetOTP(user.ID, otp); err != nil {
		return err
	}
	s.sendOTPEmail(user.Email, user.FirstName, otp)
	return nil
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if !user.IsConfirmed {
		return nil, ErrUserNotConfirmed
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(user)
}

func (s *authService) ChangePassword(email, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}
	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(user.ID, user.Password)
}

func (s *authService) issueToken(user *model.User) (*LoginResponse, error) {
	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName(), user.Role)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}
	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

func (s *authService) sendOTPEmail(to, firstName, otp string) {
	store := os.Getenv("STORE_NAME")
	if store == "" {
		store = "Go Market"
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your %s verification code is <b>%s</b>.</p><p>It expires after %d failed attempts.</p>",
		firstName, store, otp, maxOTPTries,
	)
	if err := s.mail.SendEmail("", to, store+" Email Verification", body); err != nil {
		s.log.WithFields(logrus.Fields{
			"email": to,
			"error": err.Error(),
		}).Error("verification email failed")
	}
}
