package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeMessage_Wants(t *testing.T) {
	var none *SubscribeMessage
	assert.True(t, none.Wants(EventCardMoved), "nil subscription wants everything")
	assert.True(t, (&SubscribeMessage{}).Wants(EventNotification))

	only := &SubscribeMessage{Types: []EventType{EventNotification}}
	assert.True(t, only.Wants(EventNotification))
	assert.False(t, only.Wants(EventCardMoved))
}

func TestMessage_WireShape(t *testing.T) {
	msg := Message{
		Version: ProtocolVersion,
		Type:    "event",
		Event:   &Event{Type: EventCardMoved, CardID: "42", Column: "venda_concluida", SequenceID: 7},
	}
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.EqualValues(t, 1, raw["version"])
	assert.NotContains(t, raw, "subscribe")

	ev := raw["event"].(map[string]any)
	assert.Equal(t, "card_moved", ev["type"])
	assert.Equal(t, "42", ev["card_id"])
	assert.Equal(t, "venda_concluida", ev["column"])
	assert.EqualValues(t, 7, ev["sequence_id"])
	assert.NotContains(t, ev, "message")
}

func TestEvent_UnknownColumnStillDecodes(t *testing.T) {
	var ev Event
	err := json.Unmarshal([]byte(`{"type":"card_moved","card_id":"1","column":"arquivado"}`), &ev)
	require.NoError(t, err)
	assert.Equal(t, "arquivado", ev.Column)
}
