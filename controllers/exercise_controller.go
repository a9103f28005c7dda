// Package controllers file: controllers/exercise_controller.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"irontrack/logger"
	"irontrack/models"
	"irontrack/services"
	"irontrack/store"
	"irontrack/websocket"
)

// ApplicationURL is the externally reachable base URL, used to build
// share links. Set once from main via SetConfig.
var ApplicationURL string

// SetConfig stores configuration values needed by the controllers.
func SetConfig(applicationURL string) {
	ApplicationURL = applicationURL
}

// ExerciseController serves the /exercises routes.
type ExerciseController struct {
	Store store.UserStoreInterface
}

// NewExerciseController creates an ExerciseController over the given store.
func NewExerciseController(userStore store.UserStoreInterface) *ExerciseController {
	return &ExerciseController{Store: userStore}
}

// sessionEmail returns the session user's email. AuthRequired has
// already run on these routes, so a missing value means a broken session.
func sessionEmail(c *gin.Context) (string, bool) {
	email, ok := sessions.Default(c).Get("user").(string)
	return email, ok && email != ""
}

// ------------------ authenticated entry routes ------------------

// Create validates the body and appends a new entry to the session
// user's log. 201 with the stored entry, 400 on an invalid body, 500 on
// a store failure.
func (ec *ExerciseController) Create(c *gin.Context) {
	email, ok := sessionEmail(c)
	if !ok {
		logger.Warn.Println("Create: session has no user email")
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Invalid user session"})
		return
	}

	var req models.ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn.Printf("Create: malformed body from %s: %v", email, err)
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Invalid request"})
		return
	}
	if err := req.Validate(); err != nil {
		logger.Warn.Printf("Create: invalid body from %s: %v", email, err)
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Invalid request"})
		return
	}

	entry, err := ec.Store.AddExercise(c.Request.Context(), email, req.Entry())
	if err != nil {
		logger.Error.Printf("Create: failed to store entry for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Internal Server Error"})
		return
	}

	logger.Info.Printf("Create: %s logged %s", email, entry.Name)
	c.JSON(http.StatusCreated, entry)

	websocket.NotifyEntryCreated(email, entry)
}

// List returns the session user's entries in insertion order.
func (ec *ExerciseController) List(c *gin.Context) {
	email, ok := sessionEmail(c)
	if !ok {
		logger.Warn.Println("List: session has no user email")
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Invalid user session"})
		return
	}

	entries, err := ec.Store.GetAllExercises(c.Request.Context(), email)
	if err != nil {
		logger.Error.Printf("List: failed to fetch entries for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// Feed upgrades the request to a WebSocket pushing entry-created events
// for the session user.
func (ec *ExerciseController) Feed(c *gin.Context) {
	email, ok := sessionEmail(c)
	if !ok {
		logger.Warn.Println("Feed: session has no user email")
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Invalid user session"})
		return
	}
	websocket.ServeWs(c.Writer, c.Request, email)
}

// ------------------ share-link routes (no session check) ------------------
// Entry ids are unguessable ObjectIDs; anyone holding one can read,
// update or delete the entry. That is what makes share links work, and
// it matches the behaviour the frontend was built against.

// GetByID returns a single entry by its id. A malformed or unknown id is
// a 404; a store failure on this route is also reported as not-found.
func (ec *ExerciseController) GetByID(c *gin.Context) {
	id := c.Param("id")

	entry, err := ec.Store.GetExerciseByID(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Error.Printf("GetByID: store failure for id %s: %v", id, err)
		}
		c.JSON(http.StatusNotFound, gin.H{"Error": "Not found"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Update overwrites an entry's fields by id. 200 with the updated entry,
// 400 on an invalid body, 404 when the id matches nothing, 500 on a
// store failure.
func (ec *ExerciseController) Update(c *gin.Context) {
	var req models.ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn.Printf("Update: malformed body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Invalid request"})
		return
	}
	if err := req.Validate(); err != nil {
		logger.Warn.Printf("Update: invalid body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Invalid request"})
		return
	}

	id := c.Param("id")
	entry, err := ec.Store.UpdateExerciseByID(c.Request.Context(), id, req)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"Error": "Not found"})
		return
	}
	if err != nil {
		logger.Error.Printf("Update: store failure for id %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Delete removes an entry by id. 204 on success, 400 when the id is
// missing, 404 when it matches nothing, 500 on a store failure.
func (ec *ExerciseController) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Bad request"})
		return
	}

	err := ec.Store.DeleteExerciseByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"Error": "Not found"})
		return
	}
	if err != nil {
		logger.Error.Printf("Delete: store failure for id %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ShareQRCode renders a QR code PNG pointing at an entry's share link.
func (ec *ExerciseController) ShareQRCode(c *gin.Context) {
	id := c.Param("id")

	if _, err := ec.Store.GetExerciseByID(c.Request.Context(), id); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Error.Printf("ShareQRCode: store failure for id %s: %v", id, err)
		}
		c.JSON(http.StatusNotFound, gin.H{"Error": "Not found"})
		return
	}

	shareURL := fmt.Sprintf("%s/exercises/%s", ApplicationURL, id)
	png, err := services.GenerateShareQRCode(shareURL, 256)
	if err != nil {
		logger.Error.Printf("ShareQRCode: failed to generate QR for id %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Internal server error"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
