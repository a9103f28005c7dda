// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"irontrack/logger"
)

// -------------- authentication middleware --------------

// AuthRequired ensures the caller holds an authenticated session.
// How it works:
// - Retrieves the session from the request context.
// - Checks the "loggedIn" flag set at login.
// - If the flag is missing or false, responds 400 and aborts execution.
// - Otherwise, the request proceeds.
// The referenced user is not re-validated against the store per request.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)

	loggedIn, ok := session.Get("loggedIn").(bool)
	if !ok || !loggedIn {
		logger.Warn.Printf("AuthRequired: unauthenticated request to %s", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"Error": "Invalid user session"})
		return
	}

	logger.Debug.Println("[AuthRequired] User authenticated - proceeding with request")
	c.Next()
}
