package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduledSyncRunsImmediately(t *testing.T) {
	mockClient := NewMockClient(nil)
	handler := NewSyncHandler(mockClient, nil, nil, testSettings(t, t.TempDir()), &bytes.Buffer{})
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := runScheduled(ctx, handler, time.Hour)

	require.NoError(t, err)
	mockClient.lock.Lock()
	defer mockClient.lock.Unlock()
	assert.Equal(t, 1, mockClient.ListCalls)
}
