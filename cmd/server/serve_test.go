package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJanitorInterval(t *testing.T) {
	assert.Equal(t, time.Second, janitorInterval(time.Nanosecond))
	assert.Equal(t, 15*time.Second, janitorInterval(time.Minute))
	assert.Equal(t, time.Minute, janitorInterval(24*time.Hour))
}

func TestNewApp_CopiesRequestValues(t *testing.T) {
	app := newApp()
	assert.True(t, app.Config().Immutable)
	assert.Equal(t, "cv-generator", app.Config().AppName)
}
