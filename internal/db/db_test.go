package db

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/richat-staffing/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestDateConversion(t *testing.T) {
	assert.Nil(t, dateArg(nil))
	assert.Nil(t, scanDate(nil))

	d := types.NewDate(2024, time.March, 15)
	arg := dateArg(&d)
	if assert.NotNil(t, arg) {
		got := scanDate(arg)
		assert.Equal(t, "2024-03-15", got.String())
	}
}

func TestNotFound(t *testing.T) {
	err := notFound("tender", "t1")
	assert.Equal(t, types.CodeNotFound, types.CodeOf(err))
	assert.Contains(t, err.Error(), "tender t1 not found")
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.True(t, isNoRows(errors.Join(errors.New("query"), pgx.ErrNoRows)))
	assert.False(t, isNoRows(errors.New("boom")))
}
