package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitzen/habitzen-engine/internal/adapters/handler/http/middleware"
	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

// handleError writes the status matching a domain error. Anything unknown is
// logged and hidden behind a 500.
func handleError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrHabitTitleEmpty),
		errors.Is(err, domain.ErrHabitTitleTooLong),
		errors.Is(err, domain.ErrHabitDescTooLong),
		errors.Is(err, domain.ErrHabitCategoryTooLong),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrSelfFriendRequest),
		errors.Is(err, domain.ErrCommentEmpty),
		errors.Is(err, domain.ErrCommentTooLong),
		errors.Is(err, domain.ErrNothingToUpdate),
		errors.Is(err, domain.ErrChallengeTitleEmpty),
		errors.Is(err, domain.ErrChallengeTitleTooLong),
		errors.Is(err, domain.ErrChallengeDescriptionEmpty),
		errors.Is(err, domain.ErrChallengeDescTooLong),
		errors.Is(err, domain.ErrInvalidChallengeDuration),
		errors.Is(err, domain.ErrChallengeNoInvitees):
		status = http.StatusBadRequest

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized

	case errors.Is(err, domain.ErrWrongPassword),
		errors.Is(err, domain.ErrNotFriends):
		status = http.StatusForbidden

	case errors.Is(err, domain.ErrDateNotEditable):
		status = http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrHabitNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCompletionNotFound),
		errors.Is(err, domain.ErrFriendRequestNotFound),
		errors.Is(err, domain.ErrFriendNotFound),
		errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrChallengeNotFound):
		status = http.StatusNotFound

	case errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrUsernameAlreadyExists),
		errors.Is(err, domain.ErrFriendRequestExists),
		errors.Is(err, domain.ErrAlreadyFriends),
		errors.Is(err, domain.ErrFriendRequestClosed),
		errors.Is(err, domain.ErrAlreadyParticipant),
		errors.Is(err, domain.ErrChallengeEnded):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.FullPath(), err)
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// currentUser reads the id set by the auth middleware.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return userID, true
}
