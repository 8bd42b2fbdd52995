package spinner

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_DrawsAndClears(t *testing.T) {
	var out syncBuffer
	s := Start(&out, "judging awareness")

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "judging awareness")
	}, time.Second, 5*time.Millisecond)

	s.Update("judging 文化")
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "judging 文化")
	}, time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()

	text := out.String()
	assert.True(t, strings.HasSuffix(text, "\r"), "line should be cleared on stop")
}

func TestSpinner_StopBeforeFirstFrame(t *testing.T) {
	var out syncBuffer
	s := Start(&out, "x")
	s.Stop()
	assert.Equal(t, "\r\r", out.String())
}
