package design

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectRecordsFailuresAndContinues(t *testing.T) {
	var c Collector

	title := Collect(&c, "title", func() (string, error) { return "Home", nil })
	fonts := Collect(&c, "fonts", func() ([]string, error) { return nil, errors.New("eval failed") })
	colors := Collect(&c, "colors", func() ([]string, error) { panic("selector threw") })
	links := Collect(&c, "links", func() (int, error) { return 3, nil })

	assert.Equal(t, "Home", title)
	assert.Nil(t, fonts)
	assert.Nil(t, colors)
	assert.Equal(t, 3, links)

	failures := c.Failures()
	assert.Equal(t, []StepFailure{
		{Step: "fonts", Message: "eval failed"},
		{Step: "colors", Message: "panic: selector threw"},
	}, failures)
	assert.Equal(t, "fonts: eval failed", failures[0].Error())
}

func TestCollectorEmpty(t *testing.T) {
	var c Collector
	assert.Nil(t, c.Failures())

	c.Merge([]StepFailure{{Step: "a", Message: "b"}})
	assert.Len(t, c.Failures(), 1)
}
