package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"healthdash/internal/config"
	"healthdash/internal/insight"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp() *app {
	return newApp(&config.Config{
		WindowDays: 30,
		Seed:       42,
		LogLevel:   "DEBUG",
		LogBuffer:  100,
	}, false)
}

func TestNewAppGeneratesWindow(t *testing.T) {
	a := testApp()

	assert.Equal(t, 30, a.store.Len())
	assert.Equal(t, 30, a.store.Window())
}

func TestChatLoop(t *testing.T) {
	a := testApp()
	chat := &localChat{manager: a.assistant}

	in := strings.NewReader("how did I sleep?\n\nexit\nnever asked\n")
	var out bytes.Buffer

	require.NoError(t, chatLoop(context.Background(), chat, in, &out))

	text := out.String()
	assert.Contains(t, text, "assistant> "+insight.Greeting)
	assert.Contains(t, text, "You slept for")
	assert.NotContains(t, text, "never asked")

	s, err := a.assistant.Get(chat.session)
	require.NoError(t, err)
	assert.Len(t, s.Messages, 3, "greeting, question and reply")
}

func TestChatLoopEOF(t *testing.T) {
	chat := &localChat{manager: testApp().assistant}

	var out bytes.Buffer
	assert.NoError(t, chatLoop(context.Background(), chat, strings.NewReader(""), &out))
}
