package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoverBranch(t *testing.T) {
	done := make(chan struct{})

	assert.NotPanics(t, func() {
		go func() {
			defer close(done)
			defer RecoverBranch(context.Background(), "Banco A")
			panic("falha no ramo")
		}()
		<-done
	})
}

func TestWithUserID(t *testing.T) {
	ctx := WithUserID(context.Background(), 7)
	ctx, correlationID := WithCorrelationID(ctx)

	assert.NotEmpty(t, correlationID)
	assert.Equal(t, correlationID, GetCorrelationID(ctx))
	assert.Equal(t, 7, ctx.Value(userIDKey))
}
