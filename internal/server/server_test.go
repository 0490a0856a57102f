package server

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestRelease(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})

	var closed []string
	jobs := closerFunc(func() error {
		closed = append(closed, "jobs")
		return errors.New("job client already closed")
	})
	db := closerFunc(func() error {
		closed = append(closed, "database")
		return nil
	})

	err := release(jobs, rdb, db)

	assert.ErrorContains(t, err, "job client already closed")
	assert.Equal(t, []string{"jobs", "database"}, closed, "a failing closer must not stop the rest")
	assert.ErrorIs(t, rdb.Ping(context.Background()).Err(), redis.ErrClosed)
}

func TestRelease_Nothing(t *testing.T) {
	assert.NoError(t, release())
}
