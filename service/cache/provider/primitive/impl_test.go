package primitive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/usdoracle/goapi/base/ctx"
	"github.com/usdoracle/goapi/service/cache/provider"
)

func TestPrimitive(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	subject := NewPrimitive("test", 1)

	_, _, err := subject.Get(c, "missing")
	req.Equal(provider.ErrNotFound, err)

	req.NoError(subject.Set(c, "key", []byte("value"), time.Minute))

	val, ttl, err := subject.Get(c, "key")
	req.NoError(err)
	req.Equal([]byte("value"), val)
	req.True(ttl > 0)

	req.NoError(subject.Del(c, "key"))
	_, _, err = subject.Get(c, "key")
	req.Equal(provider.ErrNotFound, err)
}
