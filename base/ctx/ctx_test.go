package ctx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithValue(t *testing.T) {
	req := require.New(t)

	c := WithValue(Background(), "requestID", "abc123")
	req.Equal("abc123", c.Value("requestID"))

	c = WithValues(c, map[string]interface{}{"chainId": 1, "token": "0x0"})
	req.Equal(1, c.Value("chainId"))
	req.Equal("0x0", c.Value("token"))
	req.Equal("abc123", c.Value("requestID"))
}

func TestWithTimeout(t *testing.T) {
	req := require.New(t)

	c, cancel := WithTimeout(Background(), time.Millisecond)
	defer cancel()

	deadline, ok := c.Deadline()
	req.True(ok)
	req.False(deadline.IsZero())

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("context did not expire")
	}
}

func TestWithCancel(t *testing.T) {
	req := require.New(t)

	c, cancel := WithCancel(Background())
	cancel()
	req.Error(c.Err())
}
