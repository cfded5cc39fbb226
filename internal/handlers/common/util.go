package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jeomhps/reservation-planner/internal/db"
)

// Package common holds the small helpers every resource handler shares:
// error bodies, path id parsing and store-error mapping.

// Abort writes the standard error body and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	body := gin.H{"error": code}
	if message != "" {
		body["message"] = message
	}
	c.AbortWithStatusJSON(status, body)
}

// BadRequest answers 400 invalid_request.
func BadRequest(c *gin.Context, message string) {
	Abort(c, http.StatusBadRequest, "invalid_request", message)
}

// ParamUUID parses a path parameter as a UUID, answering 400 when it is not one.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		BadRequest(c, name+" must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// AbortWithStoreError maps a persistence error onto a response:
// unique → 409, foreign key → 422, not null/check → 400, anything else → 500.
func AbortWithStoreError(c *gin.Context, log *zap.Logger, err error) {
	var cv *db.ConstraintViolation
	if errors.As(err, &cv) {
		log.Warn("constraint violation",
			zap.String("op", cv.Op),
			zap.Stringer("kind", cv.Kind),
			zap.Error(cv.Err),
		)
		switch cv.Kind {
		case db.Unique:
			Abort(c, http.StatusConflict, "conflict", "customer already has a reservation at this restaurant")
		case db.ForeignKey:
			Abort(c, http.StatusUnprocessableEntity, "unknown_reference", "customer or restaurant does not exist")
		default:
			BadRequest(c, "request violates a data constraint")
		}
		return
	}

	var se *db.StorageError
	if errors.As(err, &se) {
		log.Error("storage error", zap.String("op", se.Op), zap.Error(se.Err))
	} else {
		log.Error("unexpected error", zap.Error(err))
	}
	Abort(c, http.StatusInternalServerError, "server_error", "")
}
