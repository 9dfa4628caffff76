package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"aquaBack/internal/models"
	"aquaBack/internal/repositories"
	"aquaBack/utils"
)

type UserService struct {
	Users        *repositories.UserRepository
	TokenManager *utils.Manager
	Storage      *utils.Storage
}

// SignIn authenticates a staff, manager, admin or supplier account and issues
// a token pair. Customers authenticate through CustomerService.
func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.User, models.Tokens, error) {
	user, err := s.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
		}
		return models.User{}, models.Tokens{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user.ID, string(user.Role), user.BusinessID)
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}
	user.Password = ""
	return user, tokens, nil
}

func (s *UserService) issueTokens(ctx context.Context, userID int, role string, businessID int) (models.Tokens, error) {
	access, err := s.TokenManager.NewJWT(userID, role, businessID)
	if err != nil {
		return models.Tokens{}, err
	}
	refresh, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, err
	}
	session := models.Session{
		UserID:       userID,
		Role:         role,
		BusinessID:   businessID,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(s.TokenManager.RefreshTTL()),
	}
	if err := s.Users.SaveSession(ctx, session); err != nil {
		return models.Tokens{}, err
	}
	return models.Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh rotates a refresh token into a new pair. Expired sessions are
// deleted on sight.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (models.Tokens, error) {
	session, err := s.Users.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.Tokens{}, models.ErrInvalidCredentials
		}
		return models.Tokens{}, err
	}
	if session.ExpiresAt.Before(time.Now()) {
		_ = s.Users.DeleteSession(ctx, refreshToken)
		return models.Tokens{}, models.ErrInvalidCredentials
	}
	if err := s.Users.DeleteSession(ctx, refreshToken); err != nil {
		return models.Tokens{}, err
	}
	return s.issueTokens(ctx, session.UserID, session.Role, session.BusinessID)
}

func (s *UserService) SignOut(ctx context.Context, refreshToken string) error {
	return s.Users.DeleteSession(ctx, refreshToken)
}

// CreateStaff registers a staff member under the actor's business. Managers
// and admins only.
func (s *UserService) CreateStaff(ctx context.Context, actor models.Actor, u models.User) (models.User, error) {
	if !actor.Role.CanManageBusiness() {
		return models.User{}, models.ErrForbidden
	}
	if actor.Role == models.RoleManager {
		u.BusinessID = actor.BusinessID
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), 12)
	if err != nil {
		return models.User{}, err
	}
	u.Password = string(hash)
	created, err := s.Users.Create(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	created.Password = ""
	return created, nil
}

func (s *UserService) GetUser(ctx context.Context, actor models.Actor, id int) (models.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if actor.Role != models.RoleAdmin && u.BusinessID != actor.BusinessID && u.ID != actor.ID {
		return models.User{}, models.ErrWrongBusiness
	}
	u.Password = ""
	return u, nil
}

func (s *UserService) ListStaff(ctx context.Context, actor models.Actor) ([]models.User, error) {
	if !actor.Role.CanManageBusiness() {
		return nil, models.ErrForbidden
	}
	users, err := s.Users.ListByBusinessAndRole(ctx, actor.BusinessID, models.RoleStaff)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (s *UserService) UpdateStaff(ctx context.Context, actor models.Actor, u models.User) error {
	if !actor.Role.CanManageBusiness() {
		return models.ErrForbidden
	}
	existing, err := s.Users.GetByID(ctx, u.ID)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin && existing.BusinessID != actor.BusinessID {
		return models.ErrWrongBusiness
	}
	return s.Users.Update(ctx, u)
}

func (s *UserService) DeleteStaff(ctx context.Context, actor models.Actor, id int) error {
	if !actor.Role.CanManageBusiness() {
		return models.ErrForbidden
	}
	existing, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin && existing.BusinessID != actor.BusinessID {
		return models.ErrWrongBusiness
	}
	return s.Users.Delete(ctx, id)
}

func (s *UserService) ChangePassword(ctx context.Context, userID int, req models.ChangePasswordRequest) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.OldPassword)); err != nil {
		return models.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, userID, string(hash))
}

// ResetPassword lets a manager set a new password for a staff member who
// forgot theirs. There is no code delivery; the manager hands it over in
// person.
func (s *UserService) ResetPassword(ctx context.Context, actor models.Actor, userID int, newPassword string) error {
	if !actor.Role.CanManageBusiness() {
		return models.ErrForbidden
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin && u.BusinessID != actor.BusinessID {
		return models.ErrWrongBusiness
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, userID, string(hash))
}

// UploadIDProof stores a staff member's identity document and saves the URL
// on the profile.
func (s *UserService) UploadIDProof(ctx context.Context, actor models.Actor, userID int, file []byte, fileName, contentType string) (string, error) {
	if !actor.Role.CanManageBusiness() && actor.ID != userID {
		return "", models.ErrForbidden
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	url, err := s.Storage.Upload(file, fmt.Sprintf("%d_%s", userID, fileName), "id_proofs", contentType)
	if err != nil {
		return "", err
	}
	u.IDProofURL = url
	if err := s.Users.Update(ctx, u); err != nil {
		return "", err
	}
	return url, nil
}

// ReceiveCash hands a staff member's collected cash over to the manager.
func (s *UserService) ReceiveCash(ctx context.Context, actor models.Actor, staffID int) (models.CashHandover, error) {
	if !actor.Role.CanManageBusiness() {
		return models.CashHandover{}, models.ErrForbidden
	}
	staff, err := s.Users.GetByID(ctx, staffID)
	if err != nil {
		return models.CashHandover{}, err
	}
	if staff.BusinessID != actor.BusinessID {
		return models.CashHandover{}, models.ErrWrongBusiness
	}
	return s.Users.ReceiveCash(ctx, staffID, actor.ID)
}

func (s *UserService) RegisterDeviceToken(ctx context.Context, t models.DeviceToken) error {
	return s.Users.SaveDeviceToken(ctx, t)
}

func (s *UserService) RemoveDeviceToken(ctx context.Context, token string) error {
	return s.Users.DeleteDeviceToken(ctx, token)
}
