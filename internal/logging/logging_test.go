package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetVerbose(false) })

	t.Run("should suppress info messages by default", func(t *testing.T) {
		buf.Reset()
		SetVerbose(false)

		Infof("refresh loaded %d tasks", 3)

		assert.Empty(t, buf.String())
	})

	t.Run("should emit info messages when verbose", func(t *testing.T) {
		buf.Reset()
		SetVerbose(true)

		Infof("refresh loaded %d tasks", 3)

		assert.Contains(t, buf.String(), "refresh loaded 3 tasks")
	})

	t.Run("should always emit warnings", func(t *testing.T) {
		buf.Reset()
		SetVerbose(false)

		Warnf("skipping course %d", 42)

		assert.Contains(t, buf.String(), "skipping course 42")
	})
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	t.Cleanup(func() { SetVerbose(false) })

	WithField("course_id", 7).Info("fetched assignments")

	assert.Contains(t, buf.String(), "course_id=7")
	assert.Contains(t, buf.String(), "fetched assignments")
}
