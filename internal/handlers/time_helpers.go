package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnera-api/internal/httperr"
	"github.com/BruksfildServices01/turnera-api/internal/timezone"
)

var (
	errInvalidID   = httperr.ErrInvalid("invalid_id", "Identificador inválido.")
	errInvalidDate = httperr.ErrInvalid("invalid_date", "Fecha inválida, use YYYY-MM-DD.")
)

func parseUintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, errInvalidID
	}
	return uint(v), nil
}

// queryDate reads a YYYY-MM-DD query value as midnight in the clinic
// timezone.
func queryDate(c *gin.Context, key string, loc *time.Location) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, httperr.ErrInvalid("missing_"+key, "Falta el parámetro "+key+".")
	}
	d, err := timezone.ParseDate(raw, loc)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return d, nil
}
