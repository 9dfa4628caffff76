package handlers

import (
	"errors"
	"net/http"
	"testing"

	"aquaBack/internal/models"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{models.ErrInvalidCredentials, http.StatusUnauthorized},
		{models.ErrWrongBusiness, http.StatusForbidden},
		{models.ErrBookingNotFound, http.StatusNotFound},
		{models.ErrInvalidTransition, http.StatusConflict},
		{models.ErrBookingConflict, http.StatusConflict},
		{models.ErrInsufficientStock, http.StatusConflict},
		{models.ErrEventDateTooEarly, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := statusFor(c.err); got != c.want {
			t.Fatalf("statusFor(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
