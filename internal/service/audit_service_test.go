package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_Log(t *testing.T) {
	store := &fakeAuditStore{}
	svc := NewAuditService(store)

	svc.Log(context.Background(), AuditEntry{Actor: "admin", Action: "submission.status", Resource: "submission:1"})
	svc.Log(context.Background(), AuditEntry{Action: "auth.login_failed", Resource: "auth"})

	require.Len(t, store.logs, 2)
	require.NotNil(t, store.logs[0].Actor)
	assert.Equal(t, "admin", *store.logs[0].Actor)
	assert.Nil(t, store.logs[1].Actor)
}

func TestAuditService_LogFailureIsSwallowed(t *testing.T) {
	store := &fakeAuditStore{failErr: errDown}
	svc := NewAuditService(store)

	svc.Log(context.Background(), AuditEntry{Action: "x", Resource: "y"})
	assert.ErrorIs(t, svc.LogError(context.Background(), AuditEntry{Action: "x", Resource: "y"}), errDown)
}

func TestAuditService_ListLimit(t *testing.T) {
	store := &fakeAuditStore{}
	svc := NewAuditService(store)

	_, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, store.limit)

	_, err = svc.List(context.Background(), 1000, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, store.limit)

	_, err = svc.List(context.Background(), 25, 0)
	require.NoError(t, err)
	assert.Equal(t, 25, store.limit)
}
