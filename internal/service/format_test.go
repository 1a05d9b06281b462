package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompactCount(t *testing.T) {
	cases := map[int64]string{
		0:          "0",
		999:        "999",
		1000:       "1.0K",
		45_600:     "45.6K",
		100_000:    "1.0L",
		2_345_678:  "23.5L",
		10_000_000: "1.0Cr",
		96_880_000: "9.7Cr",
	}
	for in, want := range cases {
		assert.Equal(t, want, CompactCount(in), in)
	}
}

func TestShortStateName(t *testing.T) {
	assert.Equal(t, "Kerala", ShortStateName("Kerala"))
	assert.Equal(t, "Andhra Pradesh", ShortStateName("Andhra Pradesh"))
	assert.Equal(t, "Jammu and Ka...", ShortStateName("Jammu and Kashmir"))
	assert.Equal(t, "Dadra and Na...", ShortStateName("Dadra and Nagar Haveli"))
}
