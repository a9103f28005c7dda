// Package controllers handles user authentication and session management.
// File: controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"irontrack/logger"
	"irontrack/models"
	"irontrack/services"
	"irontrack/store"
)

// ------------------ authentication utilities ------------------

// checkPasswordHash verifies if the provided plain-text password matches the stored hashed password.
func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AuthController serves /login, /registration and /logout.
type AuthController struct {
	Store store.UserStoreInterface
	Email services.EmailServiceInterface
}

// NewAuthController creates an AuthController with its dependencies injected.
func NewAuthController(userStore store.UserStoreInterface, email services.EmailServiceInterface) *AuthController {
	return &AuthController{Store: userStore, Email: email}
}

// ------------------ login handling ------------------

// Login authenticates a user against their stored bcrypt hash and marks
// the session authenticated. Outcomes:
// - 200 on success, session loggedIn=true with the user's email
// - 404 when the email has no account
// - 400 on a wrong password
// - 500 when the store cannot be read
func (ac *AuthController) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		logger.Warn.Printf("Login: malformed body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Invalid request"})
		return
	}

	user, err := ac.Store.GetUserByEmail(c.Request.Context(), creds.Email)
	if errors.Is(err, store.ErrNotFound) {
		logger.Warn.Printf("Login: unknown email %s", creds.Email)
		c.JSON(http.StatusNotFound, gin.H{"Error": "Invalid user login attempt, user NOT FOUND"})
		return
	}
	if err != nil {
		logger.Error.Printf("Login: failed to fetch user %s: %v", creds.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Internal server error while fetching user's password"})
		return
	}

	if !checkPasswordHash(creds.Password, user.Password) {
		logger.Warn.Printf("Login: invalid password for %s", creds.Email)
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Invalid user password"})
		return
	}

	session := sessions.Default(c)
	session.Set("loggedIn", true)
	session.Set("user", creds.Email)
	if err := session.Save(); err != nil {
		logger.Error.Printf("Login: failed to save session for %s: %v", creds.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Internal server error"})
		return
	}

	logger.Info.Printf("Login: %s is logged in", creds.Email)
	c.JSON(http.StatusOK, gin.H{"Success": "User logged into registered account"})
}

// ------------------ registration handling ------------------

// Register creates a new account. The password is hashed before it ever
// reaches the store, and a confirmation email is dispatched without
// blocking the response; a mail failure is logged and swallowed.
func (ac *AuthController) Register(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		logger.Warn.Printf("Register: malformed body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Invalid request"})
		return
	}
	if creds.Email == "" || creds.Password == "" {
		logger.Warn.Println("Register: missing email or password")
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Invalid request"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error.Printf("Register: failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Internal server error"})
		return
	}

	user, err := ac.Store.CreateUser(c.Request.Context(), creds.Email, string(hashed))
	if errors.Is(err, store.ErrAlreadyExists) {
		logger.Warn.Printf("Register: email %s already registered", creds.Email)
		c.JSON(http.StatusBadRequest, gin.H{"Error": "User already exists"})
		return
	}
	if err != nil {
		logger.Error.Printf("Register: failed to create user %s: %v", creds.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Internal server error"})
		return
	}

	logger.Info.Printf("Register: created account for %s", creds.Email)
	c.JSON(http.StatusCreated, user)

	// fire-and-forget; never affects the response
	go func(email string) {
		if err := ac.Email.SendConfirmationEmail(email); err != nil {
			logger.Error.Printf("Register: confirmation email to %s failed: %v", email, err)
		}
	}(creds.Email)
}

// ------------------ logout handling ------------------

// Logout clears the session. Safe to call without being logged in.
func (ac *AuthController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	user := session.Get("user")

	session.Set("loggedIn", false)
	session.Set("user", "")
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Error.Printf("Logout: error saving session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Internal server error"})
		return
	}

	if user != nil {
		logger.Info.Printf("Logout: %v logged out", user)
	}
	c.JSON(http.StatusOK, gin.H{"Success": "User logged out"})
}
