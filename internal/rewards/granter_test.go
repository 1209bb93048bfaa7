package rewards

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/familyhub/internal/store"
)

func openLedger(t *testing.T) store.LedgerRepo {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.LedgerRepo()
}

func TestLedgerGranter(t *testing.T) {
	ctx := context.Background()
	ledger := openLedger(t)
	g := NewLedgerGranter(ledger, zap.NewNop())

	err := g.Grant(ctx, Grant{
		UserID:      "kid",
		Cash:        50,
		XP:          500,
		Icon:        "lightning_brain",
		Description: "Mission reward: Multiplication Master",
	})
	require.NoError(t, err)

	acct, err := ledger.Account(ctx, "kid")
	require.NoError(t, err)
	assert.Equal(t, 50, acct.Cash)
	assert.Equal(t, 500, acct.XP)
	assert.Equal(t, 3, acct.Level)
	assert.Equal(t, "Helper", acct.Title)
	assert.Equal(t, "lightning_brain", acct.Icon)

	txs, err := ledger.Transactions(ctx, "kid", 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Mission reward: Multiplication Master", txs[0].Description)
}

func TestLedgerGranterNoCashNoTransaction(t *testing.T) {
	ctx := context.Background()
	ledger := openLedger(t)
	g := NewLedgerGranter(ledger, nil)

	require.NoError(t, g.Grant(ctx, Grant{UserID: "kid", XP: 100}))

	txs, err := ledger.Transactions(ctx, "kid", 0)
	require.NoError(t, err)
	assert.Empty(t, txs)

	acct, err := ledger.Account(ctx, "kid")
	require.NoError(t, err)
	assert.Equal(t, 100, acct.XP)
	assert.Empty(t, acct.Icon)
}

type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
	err       error
	closed    bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPGranterPublishes(t *testing.T) {
	ch := &fakeChannel{}
	g := newAMQPGranterWithChannel(ch, DefaultExchange, zap.NewNop())

	grant := Grant{UserID: "kid", Cash: 50, XP: 500, Icon: "golden_music_note", Description: "piano"}
	require.NoError(t, g.Grant(context.Background(), grant))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, RoutingKey, ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "kid", msg.Headers["user_id"])

	var ev Event
	require.NoError(t, json.Unmarshal(msg.Body, &ev))
	assert.Equal(t, grant, ev.Grant)
	assert.Equal(t, msg.MessageId, ev.ID)

	require.NoError(t, g.Close())
	assert.True(t, ch.closed)
}

func TestAMQPGranterPublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	g := newAMQPGranterWithChannel(ch, DefaultExchange, zap.NewNop())

	err := g.Grant(context.Background(), Grant{UserID: "kid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}

func TestAMQPGranterDisabled(t *testing.T) {
	g, err := NewAMQPGranter("", "", nil)
	require.NoError(t, err)
	assert.False(t, g.Enabled())
	assert.NoError(t, g.Grant(context.Background(), Grant{UserID: "kid", Cash: 5}))
	assert.NoError(t, g.Close())
}

type countingGranter struct {
	calls int
	err   error
}

func (c *countingGranter) Grant(context.Context, Grant) error {
	c.calls++
	return c.err
}

func TestMultiContinuesAfterFailure(t *testing.T) {
	first := &countingGranter{err: errors.New("ledger down")}
	second := &countingGranter{}

	err := Multi{first, second}.Grant(context.Background(), Grant{UserID: "kid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger down")
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)

	assert.NoError(t, Multi{second}.Grant(context.Background(), Grant{}))
}
