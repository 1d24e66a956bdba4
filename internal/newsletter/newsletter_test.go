package newsletter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/good-yellow-bee/mcp-showcase/internal/logging"
	"github.com/good-yellow-bee/mcp-showcase/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, store.Open())
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate())
	return NewService(store.Subscribers(), logging.Discard())
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "  Dev@Example.COM ", want: "dev@example.com"},
		{in: "a.b+tag@mail.example.org", want: "a.b+tag@mail.example.org"},
		{in: "", wantErr: true},
		{in: "not-an-email", wantErr: true},
		{in: "Dev <dev@example.com>", wantErr: true},
		{in: "dev@localhost", wantErr: true},
		{in: "@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeEmail(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEmail)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubscribe(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, "Reader@Example.com", SourceAPI)
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", sub.Email)
	assert.Equal(t, SourceAPI, sub.Source)
	assert.NotEmpty(t, sub.ID)

	_, err = svc.Subscribe(ctx, "reader@example.com", SourceWeb)
	assert.ErrorIs(t, err, ErrAlreadySubscribed)

	_, err = svc.Subscribe(ctx, "nope", SourceWeb)
	assert.ErrorIs(t, err, ErrInvalidEmail)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSubscribe_DefaultSource(t *testing.T) {
	svc := newTestService(t)
	sub, err := svc.Subscribe(context.Background(), "x@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, SourceWeb, sub.Source)
}

func TestUnsubscribe(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, "gone@example.com", SourceCLI)
	require.NoError(t, err)

	require.NoError(t, svc.Unsubscribe(ctx, "GONE@example.com"))
	require.NoError(t, svc.Unsubscribe(ctx, "never@example.com"))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
