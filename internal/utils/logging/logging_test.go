package logging

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	SetLevel(logrus.DebugLevel)
	defer SetLevel(logrus.WarnLevel)

	WithField("did", "did:example:1").WithError(errors.New("boom")).Debug("resolving")

	assert.Contains(t, buf.String(), "did:example:1")
	assert.Contains(t, buf.String(), "boom")
}
