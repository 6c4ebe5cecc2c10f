package types

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("fill: %w", NewRangeError(5, 10, 0, 10))

	require.ErrorIs(t, err, ErrRange)
	assert.NotErrorIs(t, err, ErrSinkIO)

	var rerr *RangeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, int64(5), rerr.Pos)
	assert.Equal(t, int64(10), rerr.Length)
	assert.Equal(t, int64(10), rerr.High)
	assert.Contains(t, err.Error(), "(5 + 10 = 15) is out of range (0:10)")

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindRange, kind)
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrKind
		ok   bool
	}{
		{name: "sentinel", err: ErrNoSource, want: ErrKindNoSource, ok: true},
		{name: "invalid number", err: InvalidNumber("12a", nil), want: ErrKindInvalidNumber, ok: true},
		{name: "args", err: InvalidArgs(0, 1), want: ErrKindArgs, ok: true},
		{name: "sink", err: SinkIO("create", os.ErrPermission), want: ErrKindSinkIO, ok: true},
		{name: "plain", err: errors.New("boom"), want: ErrKindIO, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, ok := KindOf(tc.err)
			assert.Equal(t, tc.want, kind)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestSinkIODoesNotDoubleWrap(t *testing.T) {
	inner := SinkIO("append", os.ErrClosed)
	outer := SinkIO("scan", inner)
	assert.Same(t, inner, outer)
	require.ErrorIs(t, outer, os.ErrClosed)
	assert.Nil(t, SinkIO("noop", nil))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "string (-x) could not be converted to an integer", InvalidNumber("-x", nil).Error())
	assert.Equal(t, "expected 1 args, got 3", InvalidArgs(3, 1).Error())
	assert.Equal(t, "read: boom", IO("read", errors.New("boom")).Error())
	assert.Equal(t, "overwrite-declined", ErrKindOverwriteDeclined.String())
}

func TestConfirmers(t *testing.T) {
	assert.True(t, AlwaysOverwrite.ConfirmOverwrite("x"))
	assert.False(t, NeverOverwrite.ConfirmOverwrite("x"))
	var asked string
	c := ConfirmFunc(func(p string) bool { asked = p; return true })
	assert.True(t, c.ConfirmOverwrite("report.txt"))
	assert.Equal(t, "report.txt", asked)
}
