package push_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/push"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/push/mocks"
)

func TestAuthStatusEnabled(t *testing.T) {
	tests := []struct {
		status  push.AuthStatus
		enabled bool
	}{
		{push.NotDetermined, false},
		{push.Denied, false},
		{push.Authorized, true},
		{push.Provisional, true},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.enabled, tt.status.Enabled())
		})
	}
}

func TestRegisterSuccess(t *testing.T) {
	r := mocks.NewMockRegistrar(t)
	r.EXPECT().RequestPermission(mock.Anything).Return(push.Authorized, nil)
	r.EXPECT().RegisterDevice(mock.Anything).Return(nil)
	r.EXPECT().Token(mock.Anything).Return("tok-1", nil)

	reg, err := push.Register(context.Background(), r, nil)
	require.NoError(t, err)
	assert.Equal(t, push.Authorized, reg.Status)
	assert.Equal(t, "tok-1", reg.Token)
}

func TestRegisterNotAuthorizedSkipsRegistration(t *testing.T) {
	r := mocks.NewMockRegistrar(t)
	r.EXPECT().RequestPermission(mock.Anything).Return(push.Denied, nil)

	reg, err := push.Register(context.Background(), r, nil)
	assert.ErrorIs(t, err, push.ErrNotAuthorized)
	assert.Equal(t, push.Denied, reg.Status)
	assert.Empty(t, reg.Token)
}

func TestRegisterPropagatesFailures(t *testing.T) {
	boom := errors.New("boom")

	t.Run("permission", func(t *testing.T) {
		r := mocks.NewMockRegistrar(t)
		r.EXPECT().RequestPermission(mock.Anything).Return(push.NotDetermined, boom)

		_, err := push.Register(context.Background(), r, nil)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("register", func(t *testing.T) {
		r := mocks.NewMockRegistrar(t)
		r.EXPECT().RequestPermission(mock.Anything).Return(push.Provisional, nil)
		r.EXPECT().RegisterDevice(mock.Anything).Return(boom)

		_, err := push.Register(context.Background(), r, nil)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("token", func(t *testing.T) {
		r := mocks.NewMockRegistrar(t)
		r.EXPECT().RequestPermission(mock.Anything).Return(push.Authorized, nil)
		r.EXPECT().RegisterDevice(mock.Anything).Return(nil)
		r.EXPECT().Token(mock.Anything).Return("", boom)

		_, err := push.Register(context.Background(), r, nil)
		assert.ErrorIs(t, err, boom)
	})
}

func TestLocalRegistrar(t *testing.T) {
	ctx := context.Background()
	l := push.NewLocal(push.Authorized)

	_, err := l.Token(ctx)
	assert.ErrorIs(t, err, push.ErrNotRegistered)

	reg, err := push.Register(ctx, l, nil)
	require.NoError(t, err)
	_, err = uuid.Parse(reg.Token)
	assert.NoError(t, err)

	require.NoError(t, l.RegisterDevice(ctx))
	again, err := l.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, reg.Token, again)
}

func TestLocalRegistrarDenied(t *testing.T) {
	l := push.NewLocal(push.Denied)
	assert.ErrorIs(t, l.RegisterDevice(context.Background()), push.ErrNotAuthorized)

	_, err := push.Register(context.Background(), l, nil)
	assert.ErrorIs(t, err, push.ErrNotAuthorized)
}
