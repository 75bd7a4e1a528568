package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init()
	assert.NotNil(t, log)
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	Init()
	SetOutput(&buf)

	Info("test message")

	assert.Contains(t, buf.String(), "test message")
}

func TestInfof(t *testing.T) {
	var buf bytes.Buffer
	Init()
	SetOutput(&buf)

	Infof("booked room %d", 7)

	assert.Contains(t, buf.String(), "booked room 7")
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	Init()
	SetOutput(&buf)

	Error("test error")

	output := buf.String()
	assert.Contains(t, output, "test error")
	assert.Contains(t, output, "error")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	Init()
	SetOutput(&buf)

	WithFields(map[string]interface{}{
		"room_id": 3,
		"date":    "2025-06-01",
	}).Info("booking created")

	output := buf.String()
	assert.Contains(t, output, "booking created")
	assert.Contains(t, output, "room_id")
	assert.Contains(t, output, "2025-06-01")
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	Init()
	SetOutput(&buf)

	WithError(assert.AnError).Error("operation failed")

	output := buf.String()
	assert.Contains(t, output, "operation failed")
	assert.Contains(t, output, assert.AnError.Error())
}
