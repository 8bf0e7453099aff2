package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{19.99, 1999},
		{39.98, 3998},
		{34.98, 3498},
		{129.00, 12900},
		// 19.995 的 float64 表示略大于 19.995，确定性地进位到 2000
		{19.995, 2000},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, MinorUnits(c.amount), "amount=%v", c.amount)
	}
}
