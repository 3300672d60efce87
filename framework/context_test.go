package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCollectsResults(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("passes", func(c *Context) {})
		c.Run("fails", func(c *Context) {
			c.Errorf("something went wrong")
		})
		c.Run("fails and exits", func(c *Context) {
			c.Errorf("fatal problem")
			c.FailNow()
			c.Errorf("never reached")
		})
	})

	assert.False(t, results.OK())
	require.Len(t, results.Failures, 2)
	assert.Equal(t, "fails", results.Failures[0].TestID.String())
	require.Len(t, results.Failures[1].Errors, 1)
	assert.Equal(t, "fatal problem", results.Failures[1].Errors[0].Error())
}

func TestRunRecoversFromPanic(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("panics", func(c *Context) {
			panic(errors.New("boom"))
		})
		c.Run("still runs", func(c *Context) {})
	})

	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "boom")
}

func TestRunSkip(t *testing.T) {
	var skippedReason string
	logger := &recordingTestLogger{onSkip: func(id TestID, reason string) {
		skippedReason = reason
	}}
	results := Run(nil, logger, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("not applicable")
			c.Errorf("never reached")
		})
	})

	assert.True(t, results.OK())
	assert.Equal(t, "not applicable", skippedReason)
}

func TestRunFilter(t *testing.T) {
	var ran []string
	filter := func(id TestID) bool { return id.String() != "excluded" }
	results := Run(filter, nil, func(c *Context) {
		c.Run("included", func(c *Context) { ran = append(ran, c.ID().String()) })
		c.Run("excluded", func(c *Context) { ran = append(ran, c.ID().String()) })
	})

	assert.True(t, results.OK())
	assert.Equal(t, []string{"included"}, ran)
}

func TestSubtestIDsAreNested(t *testing.T) {
	var ids []string
	Run(nil, nil, func(c *Context) {
		c.Run("outer", func(c *Context) {
			c.Run("inner", func(c *Context) {
				ids = append(ids, c.ID().String())
			})
		})
	})
	assert.Equal(t, []string{"outer/inner"}, ids)
}

func TestDebugOutputIsCaptured(t *testing.T) {
	var captured CapturedOutput
	logger := &recordingTestLogger{onFinish: func(id TestID, failed bool, debugOutput CapturedOutput) {
		captured = debugOutput
	}}
	Run(nil, logger, func(c *Context) {
		c.Run("logs", func(c *Context) {
			c.Debug("value is %d", 42)
		})
	})

	require.Len(t, captured, 1)
	assert.Equal(t, "value is 42", captured[0].Message)
}

type recordingTestLogger struct {
	onSkip   func(TestID, string)
	onFinish func(TestID, bool, CapturedOutput)
}

func (l *recordingTestLogger) TestStarted(TestID)      {}
func (l *recordingTestLogger) TestError(TestID, error) {}

func (l *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	if l.onFinish != nil {
		l.onFinish(id, failed, debugOutput)
	}
}

func (l *recordingTestLogger) TestSkipped(id TestID, reason string) {
	if l.onSkip != nil {
		l.onSkip(id, reason)
	}
}
