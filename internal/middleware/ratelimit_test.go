package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryMessage(t *testing.T) {
	msg := RetryMessage(227 * time.Second)
	assert.Equal(t, "Prea multe încercări eșuate. Te rugăm să încerci din nou în 227 secunde.", msg)
}
