package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultEmailBody(t *testing.T) {
	passed := resultEmailBody("Asha", "Go Placement", 9, 10, 90, true)
	assert.Contains(t, passed, "Hi Asha,")
	assert.Contains(t, passed, "<strong>Go Placement</strong> has been graded: you passed.")
	assert.Contains(t, passed, "<strong>9 / 10</strong>")
	assert.Contains(t, passed, "<strong>90%</strong>")

	failed := resultEmailBody("Asha", "Go Placement", 3, 10, 30, false)
	assert.Contains(t, failed, "has been graded: you did not reach the passing score this time.")
}
